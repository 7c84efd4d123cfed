// Package evaluator implements the periodic GC + alert-eligibility scan
// invoked every 100 block-meta frames (spec §4.F).
package evaluator

import (
	"context"
	"time"

	"github.com/pumpwatch/monitor/internal/store"
)

// Config holds the age-window and market-cap thresholds. Defaults match
// spec §4.F / §6: 10/15 minute window, 50,000 market-cap floor.
type Config struct {
	MinAge         time.Duration
	MaxAge         time.Duration
	MarketCapFloor float64
}

// DefaultConfig returns the reference defaults.
func DefaultConfig() Config {
	return Config{
		MinAge:         10 * time.Minute,
		MaxAge:         15 * time.Minute,
		MarketCapFloor: 50000,
	}
}

// inMidAgeWindow reports whether age falls in [MinAge, MaxAge).
func (c Config) inMidAgeWindow(age time.Duration) bool {
	return age >= c.MinAge && age < c.MaxAge
}

func (c Config) eligible(marketCap float64) bool {
	return marketCap >= c.MarketCapFloor
}

// Dispatch is a (mint, record) pair whose alert_sent marker has just been
// set and that the caller must hand to the Alert Fan-out.
type Dispatch struct {
	Mint   string
	Record store.TokenRecord
}

// Run performs one Evaluator pass: GC first, then eligibility + marker
// set. now is injected so tests can drive exact ages (spec §8 scenarios).
func Run(ctx context.Context, s store.Store, cfg Config, now time.Time) ([]Dispatch, error) {
	raw, err := s.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	nowMs := now.UnixMilli()

	// survivor pairs a record with whether it was in the mid-age window at
	// the instant of this pass, so pass 2 can require that alongside
	// eligibility (spec P6: the marker may only be set while age is in
	// [MinAge, MaxAge)).
	type survivor struct {
		rec      store.TokenRecord
		inWindow bool
	}

	// Pass 1: GC records that are in the mid-age window but under the cap.
	survivors := make(map[string]survivor, len(raw))
	for mint, value := range raw {
		rec, ok := store.DecodeRecord(value)
		if !ok {
			// Schema violation: skip, never delete (spec §7, scenario 6).
			continue
		}
		age := time.Duration(nowMs-rec.CreateTimeMs) * time.Millisecond
		inWindow := cfg.inMidAgeWindow(age)
		if inWindow && !cfg.eligible(rec.MarketCap) {
			if err := s.Delete(ctx, mint); err != nil {
				return nil, err
			}
			continue
		}
		survivors[mint] = survivor{rec: rec, inWindow: inWindow}
	}

	// Pass 2: eligible, in-window, unalerted survivors get the marker set
	// and are queued for dispatch.
	var dispatch []Dispatch
	for mint, sv := range survivors {
		rec := sv.rec
		if !sv.inWindow || !cfg.eligible(rec.MarketCap) {
			continue
		}
		sent, err := s.IsAlertSent(ctx, mint)
		if err != nil {
			return nil, err
		}
		if sent {
			continue
		}
		// Marker is set before the batch is handed off, guaranteeing
		// at-most-once delivery even across overlapping evaluator runs.
		if err := s.MarkAlertSent(ctx, mint); err != nil {
			return nil, err
		}
		dispatch = append(dispatch, Dispatch{Mint: mint, Record: rec})
	}

	return dispatch, nil
}
