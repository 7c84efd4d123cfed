package store

import (
	"context"
	"sync"
)

// PoolIndex resolves a pump AMM pool address back to the mint that owns it
// (spec §4.D). It keeps an in-process pool->mint cache as an optimization
// over the Store's O(N) enumeration, but the primary record's Pool field is
// always authoritative: any divergence between the cache and a freshly
// enumerated record is resolved in the record's favor.
type PoolIndex struct {
	store Store

	mu    sync.Mutex
	cache map[string]string // pool -> mint
}

// NewPoolIndex wraps s with a pool->mint cache.
func NewPoolIndex(s Store) *PoolIndex {
	return &PoolIndex{store: s, cache: make(map[string]string)}
}

// Observe records that pool belongs to mint, typically called whenever the
// Ingestion Loop sees a record's Pool field get set or reaffirmed.
func (p *PoolIndex) Observe(pool, mint string) {
	if pool == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[pool] = mint
}

// Resolve returns the mint owning pool, or ok=false if none is tracked. A
// cache hit is still verified against the primary record before being
// trusted; a cache miss falls back to a full enumeration scan.
func (p *PoolIndex) Resolve(ctx context.Context, pool string) (mint string, ok bool, err error) {
	p.mu.Lock()
	cached, hit := p.cache[pool]
	p.mu.Unlock()

	if hit {
		rec, exists, qerr := p.store.Query(ctx, cached)
		if qerr != nil {
			return "", false, qerr
		}
		if exists && rec.Pool == pool {
			return cached, true, nil
		}
		// Cache diverged from the primary record; fall through to a scan
		// and correct the cache below.
	}

	all, err := p.store.Enumerate(ctx)
	if err != nil {
		return "", false, err
	}
	for m, raw := range all {
		rec, decodeOK := DecodeRecord(raw)
		if !decodeOK {
			continue
		}
		if rec.Pool == pool {
			p.Observe(pool, m)
			return m, true, nil
		}
	}
	return "", false, nil
}
