package ingest

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pumpwatch/monitor/internal/anchor"
	"github.com/pumpwatch/monitor/internal/events"
	"github.com/pumpwatch/monitor/internal/store"
	"github.com/pumpwatch/monitor/internal/stream"
)

func encodeCreateBase58(t *testing.T, ev events.CreateEvent) string {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, bin.NewBorshEncoder(&body).Encode(ev))

	tag := anchor.EventDiscriminator("CreateEvent")
	var out bytes.Buffer
	out.Write(make([]byte, 8))
	out.Write(tag[:])
	out.Write(body.Bytes())
	return base58.Encode(out.Bytes())
}

// fakeSubscriber replays a fixed sequence of frames, then blocks until ctx
// is canceled.
type fakeSubscriber struct {
	mu     sync.Mutex
	frames []stream.Frame
}

func (f *fakeSubscriber) Next(ctx context.Context) (stream.Frame, error) {
	f.mu.Lock()
	if len(f.frames) > 0 {
		fr := f.frames[0]
		f.frames = f.frames[1:]
		f.mu.Unlock()
		return fr, nil
	}
	f.mu.Unlock()

	<-ctx.Done()
	return stream.Frame{}, errors.New("subscriber closed")
}

func (f *fakeSubscriber) Close() error { return nil }

func TestLoopDecodesCreateEventAndStoresRecord(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	payload := encodeCreateBase58(t, events.CreateEvent{
		Name:         "PEPE",
		Symbol:       "PEPE",
		Uri:          "ipfs://example",
		Mint:         mint,
		BondingCurve: solana.NewWallet().PublicKey(),
		User:         solana.NewWallet().PublicKey(),
	})

	sub := &fakeSubscriber{frames: []stream.Frame{
		{
			Kind: stream.FrameTransaction,
			Transaction: &stream.TransactionFrame{
				InnerInstructions: []stream.InnerInstruction{{Data: payload}},
			},
		},
	}}

	s := store.NewMemoryStore()
	poolIndex := store.NewPoolIndex(s)
	loop := New(sub, s, poolIndex, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		rec, ok, err := waitForRecord(ctx, s, mint.String())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "PEPE", rec.Name)
		cancel()
	}()

	err := loop.Run(ctx)
	require.Error(t, err)
}

// waitForRecord polls the store until mint's record appears or ctx is done.
func waitForRecord(ctx context.Context, s store.Store, mint string) (store.TokenRecord, bool, error) {
	for {
		rec, ok, err := s.Query(ctx, mint)
		if err != nil || ok {
			return rec, ok, err
		}
		select {
		case <-ctx.Done():
			return store.TokenRecord{}, false, nil
		default:
		}
	}
}

func TestLoopFiresOnCreateAfterRecordIsStored(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	payload := encodeCreateBase58(t, events.CreateEvent{
		Name: "PEPE", Symbol: "PEPE", Uri: "ipfs://example",
		Mint: mint, BondingCurve: solana.NewWallet().PublicKey(), User: solana.NewWallet().PublicKey(),
	})

	sub := &fakeSubscriber{frames: []stream.Frame{
		{
			Kind: stream.FrameTransaction,
			Transaction: &stream.TransactionFrame{
				InnerInstructions: []stream.InnerInstruction{{Data: payload}},
			},
		},
	}}

	s := store.NewMemoryStore()
	poolIndex := store.NewPoolIndex(s)
	loop := New(sub, s, poolIndex, zap.NewNop())

	seen := make(chan string, 1)
	loop.OnCreate = func(mint string) { seen <- mint }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		got := <-seen
		require.Equal(t, mint.String(), got)
		cancel()
	}()

	err := loop.Run(ctx)
	require.Error(t, err)
}

func TestLoopTriggersEvaluatorEvery100BlockMetas(t *testing.T) {
	frames := make([]stream.Frame, 0, 100)
	for i := 0; i < 100; i++ {
		frames = append(frames, stream.Frame{
			Kind:      stream.FrameBlockMeta,
			BlockMeta: &stream.BlockMetaFrame{Slot: uint64(i), Blockhash: "hash"},
		})
	}
	sub := &fakeSubscriber{frames: frames}

	s := store.NewMemoryStore()
	poolIndex := store.NewPoolIndex(s)
	loop := New(sub, s, poolIndex, zap.NewNop())

	fired := make(chan struct{}, 1)
	loop.OnEvaluatorDue = func() { fired <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-fired
		cancel()
	}()

	err := loop.Run(ctx)
	require.Error(t, err)
}
