package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderList_ValueScan(t *testing.T) {
	headers := HeaderList{"Date", "Price, KSH", `Qty "pcs"`}

	value, err := headers.Value()
	require.NoError(t, err)

	var scanned HeaderList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, headers, scanned)

	require.NoError(t, scanned.Scan([]byte("{a,b}")))
	assert.Equal(t, HeaderList{"a", "b"}, scanned)
}

func TestRecordList_Scan(t *testing.T) {
	var records RecordList

	require.NoError(t, records.Scan(`[{"date":"2024-01-05","product":"Widget","quantity":2,"price":4.5,"total":9}]`))
	require.Len(t, records, 1)
	assert.Equal(t, "Widget", records[0].Product)
	require.NotNil(t, records[0].Price)
	assert.Equal(t, 4.5, *records[0].Price)

	require.NoError(t, records.Scan(nil))
	assert.Empty(t, records)

	assert.Error(t, records.Scan(42))
}

func TestRecordList_NilValue(t *testing.T) {
	var records RecordList

	value, err := records.Value()

	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}
