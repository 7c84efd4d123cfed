// Package store persists per-mint TokenRecords and alert_sent markers in a
// shared key-value server, and resolves pump AMM pool addresses back to the
// mint they belong to.
package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pumpwatch/monitor/internal/pricing"
)

// recordFieldCount is the fixed, version-free shape of a stored record
// (spec P5): splitting on "|" must always yield exactly this many fields.
const recordFieldCount = 9

// TokenRecord is the durable per-mint state tracked from creation through
// GC or alert dispatch.
type TokenRecord struct {
	Mint         string
	MarketCap    float64
	CreateTimeMs int64
	Name         string
	Symbol       string
	URI          string
	Creator      string
	BondingCurve string
	Pool         string
}

// Encode renders a TokenRecord as the fixed nine-field pipe-delimited
// string the store persists, in the order:
// mint|market_cap|create_time|name|symbol|uri|creator|bonding_curve|pool
func (r TokenRecord) Encode() string {
	fields := []string{
		r.Mint,
		pricing.FormatMarketCap(r.MarketCap),
		strconv.FormatInt(r.CreateTimeMs, 10),
		r.Name,
		r.Symbol,
		r.URI,
		r.Creator,
		r.BondingCurve,
		r.Pool,
	}
	return strings.Join(fields, "|")
}

// DecodeRecord parses the pipe-delimited value. A malformed record (any
// field count other than nine) is a schema violation: per spec §7 it must
// be skipped, never deleted, so callers receive ok=false rather than an
// error that might trigger cleanup.
func DecodeRecord(raw string) (rec TokenRecord, ok bool) {
	fields := strings.Split(raw, "|")
	if len(fields) != recordFieldCount {
		return TokenRecord{}, false
	}
	marketCap, err := pricing.ParseMarketCap(fields[1])
	if err != nil {
		return TokenRecord{}, false
	}
	createTime, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return TokenRecord{}, false
	}
	return TokenRecord{
		Mint:         fields[0],
		MarketCap:    marketCap,
		CreateTimeMs: createTime,
		Name:         fields[3],
		Symbol:       fields[4],
		URI:          fields[5],
		Creator:      fields[6],
		BondingCurve: fields[7],
		Pool:         fields[8],
	}, true
}

func alertSentKey(mint string) string {
	return fmt.Sprintf("alert_sent:%s", mint)
}
