package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := TokenRecord{
		Mint:         "Mint111",
		MarketCap:    60000.5,
		CreateTimeMs: 1700000000000,
		Name:         "PEPE",
		Symbol:       "PEPE",
		URI:          "ipfs://xyz",
		Creator:      "Creator111",
		BondingCurve: "Curve111",
		Pool:         "",
	}
	got, ok := DecodeRecord(rec.Encode())
	require.True(t, ok)
	require.Equal(t, rec, got)
}

func TestDecodeRecordWrongFieldCountFails(t *testing.T) {
	// Pre-seeded 8-field record, per spec scenario 6.
	_, ok := DecodeRecord("a|b|c|d|e|f|g|h")
	require.False(t, ok)
}

func TestEncodeAlwaysNineFields(t *testing.T) {
	rec := TokenRecord{Mint: "M"}
	fields := len(splitPipe(rec.Encode()))
	require.Equal(t, recordFieldCount, fields)
}

func splitPipe(s string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	fields = append(fields, s[start:])
	return fields
}
