package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LEDGER_DEFAULT_TAX_PCT", "")
	cfg := Load()

	assert.Equal(t, "billbuddy-api", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "billbuddy.db", cfg.Database.DSN())
	assert.Equal(t, "5", cfg.Ledger.DefaultTaxPct.String())
	assert.Equal(t, "none", cfg.Printer.Type)
}

func TestPostgresDSN(t *testing.T) {
	c := DatabaseConfig{
		Driver: "postgres", Host: "db", User: "u", Password: "p",
		Name: "billbuddy", Port: "5432", SSLMode: "disable", Timezone: "UTC",
	}
	assert.Equal(t, "host=db user=u password=p dbname=billbuddy port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
