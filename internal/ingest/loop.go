// Package ingest implements the Ingestion Loop: the single consumer of the
// upstream frame stream that decodes events and mutates the State Store
// (spec §4.E).
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pumpwatch/monitor/internal/chain"
	"github.com/pumpwatch/monitor/internal/events"
	"github.com/pumpwatch/monitor/internal/pricing"
	"github.com/pumpwatch/monitor/internal/store"
	"github.com/pumpwatch/monitor/internal/stream"
)

// evaluatorPeriod is how many block-meta frames elapse between Evaluator
// invocations (spec §4.E).
const evaluatorPeriod = 100

// priceUpdate is a pending market_cap/pool write for one mint, accumulated
// across a single transaction frame's inner instructions. Only the last
// update per mint within a transaction is kept — "last writer wins within a
// single transaction batch" (spec §3 invariant 3, grounded on
// original_source/src/engine.rs's check_instruction temp_price map).
type priceUpdate struct {
	marketCap float64
	pool      string
}

// Loop is the Ingestion Loop. It owns the upstream Subscriber exclusively.
type Loop struct {
	sub       stream.Subscriber
	store     store.Store
	poolIndex *store.PoolIndex
	logger    *zap.Logger

	// OnEvaluatorDue is invoked every evaluatorPeriod block-meta frames, as
	// a detached task, never blocking the loop (spec §4.E, §5).
	OnEvaluatorDue func()

	// OnCreate, if set, is invoked as a detached task after a Create
	// event's record lands in the store, for optional enrichment such as
	// the frontend social-link probe (spec §5: "never abort on failure").
	// It must not mutate core state; it is a side channel for logging
	// and future alert-quality hints only.
	OnCreate func(mint string)

	blockMetaCount int
}

// New builds a Loop over sub, persisting to s.
func New(sub stream.Subscriber, s store.Store, poolIndex *store.PoolIndex, logger *zap.Logger) *Loop {
	return &Loop{sub: sub, store: s, poolIndex: poolIndex, logger: logger}
}

// Run consumes frames until ctx is canceled or the subscriber returns a
// fatal error, which is propagated to the caller per spec §7's
// Store-transient/stream-fatal policy — the loop itself does not retry.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := l.sub.Next(ctx)
		if err != nil {
			return fmt.Errorf("read upstream frame: %w", err)
		}
		switch frame.Kind {
		case stream.FrameTransaction:
			l.handleTransaction(ctx, frame.Transaction)
		case stream.FrameBlockMeta:
			l.handleBlockMeta(ctx, frame.BlockMeta)
		}
	}
}

func (l *Loop) handleTransaction(ctx context.Context, tx *stream.TransactionFrame) {
	pending := make(map[string]priceUpdate)

	for _, ix := range tx.InnerInstructions {
		ev := events.DecodeBase58(ix.Data)
		if ev.Kind == events.KindNone {
			continue
		}
		l.applyEvent(ctx, ev, pending)
	}

	for mint, upd := range pending {
		if err := l.store.UpdateMarketCap(ctx, mint, upd.marketCap, upd.pool); err != nil {
			l.logger.Warn("update market cap failed", zap.String("mint", mint), zap.Error(err))
			continue
		}
		if upd.pool != "" {
			l.poolIndex.Observe(upd.pool, mint)
		}
	}
}

func (l *Loop) applyEvent(ctx context.Context, ev events.Event, pending map[string]priceUpdate) {
	switch ev.Kind {
	case events.KindCreate:
		l.handleCreate(ctx, ev.Create)

	case events.KindTrade:
		tr := ev.Trade
		mint := tr.Mint.String()
		cap := pricing.LaunchpadMarketCap(tr.VirtualSolReserves, tr.VirtualTokenReserves)
		pending[mint] = priceUpdate{marketCap: cap, pool: ""}

	case events.KindComplete:
		// No-op: bonding-curve completion is implied by later AMM
		// activity (spec §9 open question, reference behavior kept).

	case events.KindAMMCreatePool:
		cp := ev.AMMCreatePool
		mint := cp.BaseMint.String()
		if _, exists, err := l.store.Query(ctx, mint); err != nil {
			l.logger.Warn("query base_mint failed", zap.String("mint", mint), zap.Error(err))
		} else if exists {
			cap := pricing.AMMMarketCap(cp.PoolBaseAmount, cp.PoolQuoteAmount)
			pending[mint] = priceUpdate{marketCap: cap, pool: cp.Pool.String()}
		}

	case events.KindAMMBuy:
		l.applyAMMUpdate(ctx, ev.AMMBuy.Pool.String(), ev.AMMBuy.PoolBaseTokenReserves, ev.AMMBuy.PoolQuoteTokenReserves, pending)
	case events.KindAMMSell:
		l.applyAMMUpdate(ctx, ev.AMMSell.Pool.String(), ev.AMMSell.PoolBaseTokenReserves, ev.AMMSell.PoolQuoteTokenReserves, pending)
	case events.KindAMMDeposit:
		l.applyAMMUpdate(ctx, ev.AMMDeposit.Pool.String(), ev.AMMDeposit.PoolBaseTokenReserves, ev.AMMDeposit.PoolQuoteTokenReserves, pending)
	case events.KindAMMWithdraw:
		l.applyAMMUpdate(ctx, ev.AMMWithdraw.Pool.String(), ev.AMMWithdraw.PoolBaseTokenReserves, ev.AMMWithdraw.PoolQuoteTokenReserves, pending)
	}
}

func (l *Loop) applyAMMUpdate(ctx context.Context, pool string, baseReserves, quoteReserves uint64, pending map[string]priceUpdate) {
	mint, ok, err := l.poolIndex.Resolve(ctx, pool)
	if err != nil {
		l.logger.Warn("pool index resolve failed", zap.String("pool", pool), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	cap := pricing.AMMMarketCap(baseReserves, quoteReserves)
	pending[mint] = priceUpdate{marketCap: cap, pool: pool}
}

func (l *Loop) handleCreate(ctx context.Context, ev *events.CreateEvent) {
	mint := ev.Mint.String()
	rec := store.TokenRecord{
		Mint:         mint,
		MarketCap:    0,
		CreateTimeMs: nowMillis(),
		Name:         ev.Name,
		Symbol:       ev.Symbol,
		URI:          ev.Uri,
		Creator:      ev.User.String(),
		BondingCurve: ev.BondingCurve.String(),
		Pool:         "",
	}
	if err := l.store.AddRecord(ctx, rec); err != nil {
		l.logger.Warn("add record failed", zap.String("mint", mint), zap.Error(err))
		return
	}
	crossCheckBondingCurve(l.logger, ev)
	if l.OnCreate != nil {
		go l.OnCreate(mint)
	}
}

// crossCheckBondingCurve re-derives the bonding-curve PDA from the mint and
// logs a mismatch against what the Create event decoded, never treating a
// mismatch as fatal: the decoded field stays authoritative (spec §9 open
// question on bonding-curve trust).
func crossCheckBondingCurve(logger *zap.Logger, ev *events.CreateEvent) {
	derived, err := chain.FindBondingCurve(ev.Mint)
	if err != nil {
		return
	}
	if !derived.Equals(ev.BondingCurve) {
		logger.Warn("bonding curve PDA mismatch",
			zap.String("mint", ev.Mint.String()),
			zap.String("decoded", ev.BondingCurve.String()),
			zap.String("derived", derived.String()),
		)
	}
}

func (l *Loop) handleBlockMeta(ctx context.Context, bm *stream.BlockMetaFrame) {
	if err := l.store.SetBlockhash(ctx, bm.Blockhash); err != nil {
		l.logger.Warn("set blockhash failed", zap.Error(err))
	}
	l.blockMetaCount++
	if l.blockMetaCount >= evaluatorPeriod {
		l.blockMetaCount = 0
		if l.OnEvaluatorDue != nil {
			go l.OnEvaluatorDue()
		}
	}
}
