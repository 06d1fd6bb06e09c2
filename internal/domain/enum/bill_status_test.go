package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillStatusScan(t *testing.T) {
	var s BillStatus
	require.NoError(t, s.Scan([]byte("due")))
	assert.Equal(t, BillStatusDue, s)

	require.NoError(t, s.Scan("paid"))
	assert.Equal(t, BillStatusPaid, s)

	assert.Error(t, s.Scan(42))
}

func TestBillStatusUnmarshalRejectsUnknown(t *testing.T) {
	var s BillStatus
	assert.Error(t, json.Unmarshal([]byte(`"pending"`), &s))
	require.NoError(t, json.Unmarshal([]byte(`"due"`), &s))
	assert.True(t, s.Valid())
}
