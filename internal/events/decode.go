package events

import (
	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"

	"github.com/pumpwatch/monitor/internal/anchor"
)

var tagTable = map[Kind][8]byte{
	KindCreate:        anchor.EventDiscriminator("CreateEvent"),
	KindComplete:      anchor.EventDiscriminator("CompleteEvent"),
	KindTrade:         anchor.EventDiscriminator("TradeEvent"),
	KindAMMBuy:        anchor.EventDiscriminator("BuyEvent"),
	KindAMMSell:       anchor.EventDiscriminator("SellEvent"),
	KindAMMDeposit:    anchor.EventDiscriminator("DepositEvent"),
	KindAMMWithdraw:   anchor.EventDiscriminator("WithdrawEvent"),
	KindAMMCreatePool: anchor.EventDiscriminator("CreatePoolEvent"),
}

func kindForTag(tag []byte) Kind {
	for kind, want := range tagTable {
		if len(tag) == 8 && bytesEqual(tag, want[:]) {
			return kind
		}
	}
	return KindNone
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DecodeBase58 base58-decodes the inner-instruction payload and dispatches
// to Decode. A decode failure is not-an-event, never an error: the decoder
// is total (P1).
func DecodeBase58(encoded string) Event {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return Event{Kind: KindNone}
	}
	return Decode(raw)
}

// Decode inspects the 16-byte header of raw and dispatches to the matching
// typed event. It never panics and always returns a value, satisfying P1;
// any malformed payload — too short, wrong tag, or a body that fails to
// decode — yields Event{Kind: KindNone}.
func Decode(raw []byte) (out Event) {
	defer func() {
		if recover() != nil {
			out = Event{Kind: KindNone}
		}
	}()

	if len(raw) < 16 {
		return Event{Kind: KindNone}
	}
	tag := raw[8:16]
	body := raw[16:]
	kind := kindForTag(tag)

	switch kind {
	case KindCreate:
		var ev CreateEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			if manual, ok := tryManualParseCreate(raw); ok {
				return Event{Kind: KindCreate, Create: manual}
			}
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindCreate, Create: &ev}
	case KindComplete:
		var ev CompleteEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindComplete, Complete: &ev}
	case KindTrade:
		var ev TradeEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindTrade, Trade: &ev}
	case KindAMMBuy:
		var ev AMMBuyEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindAMMBuy, AMMBuy: &ev}
	case KindAMMSell:
		var ev AMMSellEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindAMMSell, AMMSell: &ev}
	case KindAMMDeposit:
		var ev AMMDepositEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindAMMDeposit, AMMDeposit: &ev}
	case KindAMMWithdraw:
		var ev AMMWithdrawEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindAMMWithdraw, AMMWithdraw: &ev}
	case KindAMMCreatePool:
		var ev AMMCreatePoolEvent
		if err := bin.NewBorshDecoder(body).Decode(&ev); err != nil {
			return Event{Kind: KindNone}
		}
		return Event{Kind: KindAMMCreatePool, AMMCreatePool: &ev}
	default:
		return Event{Kind: KindNone}
	}
}
