package events

import (
	"bytes"
	"math/rand"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/pumpwatch/monitor/internal/anchor"
)

func encodeCreatePayload(t *testing.T, ev CreateEvent) []byte {
	t.Helper()
	var body bytes.Buffer
	enc := bin.NewBorshEncoder(&body)
	require.NoError(t, enc.Encode(ev))

	tag := anchor.EventDiscriminator("CreateEvent")
	var out bytes.Buffer
	out.Write(make([]byte, 8)) // leading 8-byte account discriminator, unused by the decoder
	out.Write(tag[:])
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestDecodeCreateRoundTrip(t *testing.T) {
	want := CreateEvent{
		Name:         "PEPE",
		Symbol:       "PEPE",
		Uri:          "ipfs://example",
		Mint:         solana.NewWallet().PublicKey(),
		BondingCurve: solana.NewWallet().PublicKey(),
		User:         solana.NewWallet().PublicKey(),
	}
	raw := encodeCreatePayload(t, want)

	got := Decode(raw)
	require.Equal(t, KindCreate, got.Kind)
	require.Equal(t, want, *got.Create)
}

func TestDecodeShortPayloadIsNotAnEvent(t *testing.T) {
	got := Decode([]byte{1, 2, 3})
	require.Equal(t, KindNone, got.Kind)
}

func TestDecodeUnknownTagIsNotAnEvent(t *testing.T) {
	raw := make([]byte, 32)
	got := Decode(raw)
	require.Equal(t, KindNone, got.Kind)
}

func TestDecodeNeverPanicsOnRandomInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		n := rnd.Intn(4096)
		buf := make([]byte, n)
		rnd.Read(buf)
		require.NotPanics(t, func() {
			_ = Decode(buf)
		})
	}
}
