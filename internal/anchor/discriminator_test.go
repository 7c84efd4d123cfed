package anchor

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventDiscriminatorMatchesKnownTags(t *testing.T) {
	cases := map[string]string{
		"CreateEvent":     "1b72a94ddeeb6376",
		"CompleteEvent":   "5f72619cd42e9808",
		"TradeEvent":      "bddb7fd34ee661ee",
		"BuyEvent":        "67f4521f2cf57777",
		"SellEvent":       "3e2f370aa503dc2a",
		"DepositEvent":    "78f83d531f8e6b90",
		"WithdrawEvent":   "1609851aa02c47c0",
		"CreatePoolEvent": "b1310cd2a076a774",
	}
	for name, wantHex := range cases {
		want, err := hex.DecodeString(wantHex)
		require.NoError(t, err)
		got := EventDiscriminator(name)
		require.Equal(t, want, got[:], "discriminator mismatch for %s", name)
	}
}
