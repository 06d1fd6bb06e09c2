package database

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/billbuddy-api/internal/config"
	"github.com/sangkips/billbuddy-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMigrateIsIdempotentAndSeedsOnce(t *testing.T) {
	db, err := OpenSQLite("file:"+uuid.NewString()+"?mode=memory&cache=shared", quietLogger())
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	ctx := context.Background()
	require.NoError(t, SeedCatalog(ctx, db))
	require.NoError(t, SeedCatalog(ctx, db))

	var items []entity.Item
	require.NoError(t, db.Order("id").Find(&items).Error)
	require.Len(t, items, 3)
	assert.Equal(t, "chapati", items[0].ID)
	assert.Equal(t, "15", items[0].Price.String())

	var tables int64
	require.NoError(t, db.Model(&entity.DiningTable{}).Count(&tables).Error)
	assert.EqualValues(t, 3, tables)

	for _, name := range []string{"tables", "items", "orders", "order_items", "bills", "dues"} {
		assert.True(t, db.Migrator().HasTable(name), name)
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "billbuddy.db?_journal_mode=WAL&_busy_timeout=5000", sqliteDSN("billbuddy.db"))
	assert.Equal(t, "file:x?mode=memory&cache=shared", sqliteDSN("file:x?mode=memory&cache=shared"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"}, quietLogger())
	assert.Error(t, err)
}
