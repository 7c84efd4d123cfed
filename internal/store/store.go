package store

import "context"

// TokenInfoSetKey is the hash key holding every tracked mint's record,
// matching the reference's token_info_set.
const TokenInfoSetKey = "token_info_set"

// BlockhashKey is the flat key the Ingestion Loop stashes the latest
// observed blockhash under.
const BlockhashKey = "blockhash"

// Store is the State Store contract (spec §4.C): a mint -> TokenRecord
// mapping plus a flat alert_sent key space. Implementations need no
// transactional guarantees beyond per-operation atomicity.
type Store interface {
	// AddRecord writes the record for mint, overwriting any existing one.
	// Create events are not expected to repeat, but the operation is
	// idempotent regardless.
	AddRecord(ctx context.Context, rec TokenRecord) error

	// UpdateMarketCap rewrites market_cap and pool for mint, preserving
	// every other field. It is a no-op if mint has no record.
	UpdateMarketCap(ctx context.Context, mint string, marketCap float64, pool string) error

	// Query returns the record for mint, or ok=false if absent.
	Query(ctx context.Context, mint string) (rec TokenRecord, ok bool, err error)

	// Enumerate returns every tracked mint's raw stored value, keyed by
	// mint. Values are handed back raw (undecoded) so callers can apply
	// P5's schema-violation handling themselves.
	Enumerate(ctx context.Context) (map[string]string, error)

	// Delete removes mint's record. The alert_sent marker, if any, is
	// untouched.
	Delete(ctx context.Context, mint string) error

	// MarkAlertSent sets the at-most-once dispatch marker for mint.
	MarkAlertSent(ctx context.Context, mint string) error

	// IsAlertSent reports whether mint's marker is present.
	IsAlertSent(ctx context.Context, mint string) (bool, error)

	// SetBlockhash stashes the latest observed blockhash.
	SetBlockhash(ctx context.Context, hash string) error

	// GetBlockhash returns the most recently stashed blockhash, or "" if
	// none has been observed yet.
	GetBlockhash(ctx context.Context) (string, error)
}
