package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pumpwatch/monitor/internal/store"
)

func seed(t *testing.T, s *store.MemoryStore, mint string, createdAt time.Time, marketCap float64) {
	t.Helper()
	rec := store.TokenRecord{
		Mint:         mint,
		MarketCap:    marketCap,
		CreateTimeMs: createdAt.UnixMilli(),
		Name:         "PEPE",
		Symbol:       "PEPE",
		URI:          "ipfs://x",
		Creator:      "Creator1",
		BondingCurve: "Curve1",
	}
	require.NoError(t, s.AddRecord(context.Background(), rec))
}

func TestScenario1CreateThenAlert(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	t0 := time.Unix(0, 0)
	seed(t, s, "M", t0, 0)
	require.NoError(t, s.UpdateMarketCap(ctx, "M", 60000, ""))

	dispatch, err := Run(ctx, s, DefaultConfig(), t0.Add(11*time.Minute))
	require.NoError(t, err)
	require.Len(t, dispatch, 1)
	require.Equal(t, "M", dispatch[0].Mint)

	sent, err := s.IsAlertSent(ctx, "M")
	require.NoError(t, err)
	require.True(t, sent)
}

func TestScenario2BelowThresholdInWindowIsGCed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	t0 := time.Unix(0, 0)
	seed(t, s, "M", t0, 0)
	require.NoError(t, s.UpdateMarketCap(ctx, "M", 10000, ""))

	dispatch, err := Run(ctx, s, DefaultConfig(), t0.Add(12*time.Minute))
	require.NoError(t, err)
	require.Empty(t, dispatch)

	_, exists, err := s.Query(ctx, "M")
	require.NoError(t, err)
	require.False(t, exists)

	sent, err := s.IsAlertSent(ctx, "M")
	require.NoError(t, err)
	require.False(t, sent)
}

func TestScenario3ThresholdCrossedTooLate(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	t0 := time.Unix(0, 0)
	seed(t, s, "M", t0, 0)
	require.NoError(t, s.UpdateMarketCap(ctx, "M", 100000, ""))

	dispatch, err := Run(ctx, s, DefaultConfig(), t0.Add(20*time.Minute))
	require.NoError(t, err)
	require.Empty(t, dispatch)

	_, exists, err := s.Query(ctx, "M")
	require.NoError(t, err)
	require.True(t, exists, "outside the GC window the record is neither deleted nor alerted")
}

func TestScenario4ReplaySafety(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	t0 := time.Unix(0, 0)
	seed(t, s, "M", t0, 0)
	require.NoError(t, s.UpdateMarketCap(ctx, "M", 60000, ""))

	first, err := Run(ctx, s, DefaultConfig(), t0.Add(11*time.Minute))
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := Run(ctx, s, DefaultConfig(), t0.Add(11*time.Minute))
	require.NoError(t, err)
	require.Empty(t, second)
}

func TestScenario5AMMGraduation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	t0 := time.Unix(0, 0)
	seed(t, s, "M", t0, 0)
	// From pricing_test's AMM scenario: cap = 10_000, under the 50_000 floor.
	require.NoError(t, s.UpdateMarketCap(ctx, "M", 10000, "Pool1"))

	dispatch, err := Run(ctx, s, DefaultConfig(), t0.Add(11*time.Minute))
	require.NoError(t, err)
	require.Empty(t, dispatch)

	_, exists, err := s.Query(ctx, "M")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestScenario6MalformedRecordSurvives(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	s.PutRaw("X", "a|b|c|d|e|f|g|h")

	require.NotPanics(t, func() {
		dispatch, err := Run(ctx, s, DefaultConfig(), time.Unix(0, 0).Add(12*time.Minute))
		require.NoError(t, err)
		require.Empty(t, dispatch)
	})
}
