package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "json", &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("bill_id", "b-1").Info("Bill committed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "b-1", entry["bill_id"])
	assert.Equal(t, "Bill committed", entry["msg"])
}

func TestNewUnknownLevel(t *testing.T) {
	log := New("loud", "text", nil)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
