package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorUnique(t *testing.T) {
	gen, err := NewIDGenerator(1)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := gen.NewOrderID("T1")
		require.True(t, strings.HasPrefix(id, "T1-"))
		_, dup := seen[id]
		require.False(t, dup, id)
		seen[id] = struct{}{}
	}

	assert.True(t, strings.HasPrefix(gen.NewBillID(), "b-"))
	assert.True(t, strings.HasPrefix(gen.NewDueID(), "d-"))
	assert.Equal(t, "oi-T1-9-paneer", OrderItemID("T1-9", "paneer"))

	_, err = NewIDGenerator(5000)
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "butter-naan", Slugify("  Butter Naan! "))
	assert.Equal(t, "dal-tadka", Slugify("Dal -- Tadka"))
	assert.Empty(t, Slugify("पनीर"))
}

func TestWaiterToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.GenerateWaiterToken("w-7", "Asha")
	require.NoError(t, err)

	claims, err := m.ValidateWaiterToken(token)
	require.NoError(t, err)
	assert.Equal(t, "w-7", claims.WaiterID)

	_, err = NewJWTManager("other", time.Hour).ValidateWaiterToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("secret", -time.Minute)
	old, err := expired.GenerateWaiterToken("w-7", "")
	require.NoError(t, err)
	_, err = m.ValidateWaiterToken(old)
	assert.Error(t, err)
}
