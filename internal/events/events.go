// Package events decodes pump.fun launchpad and pump AMM program events from
// the base58-encoded payload of a single inner instruction.
package events

import (
	"github.com/gagliardetto/solana-go"
)

// Kind identifies which of the closed set of event types a payload decoded
// to, or KindNone if the payload is not an event of interest.
type Kind int

const (
	KindNone Kind = iota
	KindCreate
	KindComplete
	KindTrade
	KindAMMBuy
	KindAMMSell
	KindAMMDeposit
	KindAMMWithdraw
	KindAMMCreatePool
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "Create"
	case KindComplete:
		return "Complete"
	case KindTrade:
		return "Trade"
	case KindAMMBuy:
		return "AMMBuy"
	case KindAMMSell:
		return "AMMSell"
	case KindAMMDeposit:
		return "AMMDeposit"
	case KindAMMWithdraw:
		return "AMMWithdraw"
	case KindAMMCreatePool:
		return "AMMCreatePool"
	default:
		return "None"
	}
}

// CreateEvent is emitted when a new launchpad token is created.
type CreateEvent struct {
	Name         string
	Symbol       string
	Uri          string
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	User         solana.PublicKey
}

// CompleteEvent marks a bonding curve as graduated. The monitor treats it as
// a no-op (see design notes); AMM activity is what actually drives pricing
// once a token graduates.
type CompleteEvent struct {
	User         solana.PublicKey
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	Timestamp    int64
}

// TradeEvent is a launchpad buy or sell against the bonding curve. IsBuy
// distinguishes the two; the decoder never emits a separate buy/sell struct
// the way it does for AMM events, because the bonding curve shares one wire
// shape for both directions.
type TradeEvent struct {
	Mint                 solana.PublicKey
	SolAmount            uint64
	TokenAmount          uint64
	IsBuy                bool
	User                 solana.PublicKey
	Timestamp            int64
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64
}

// AMMBuyEvent is a pump AMM pool buy.
type AMMBuyEvent struct {
	Timestamp                     int64
	BaseAmountOut                 uint64
	MaxQuoteAmountIn              uint64
	UserBaseTokenReserves         uint64
	UserQuoteTokenReserves        uint64
	PoolBaseTokenReserves         uint64
	PoolQuoteTokenReserves        uint64
	QuoteAmountIn                 uint64
	LpFeeBasisPoints              uint64
	LpFee                         uint64
	ProtocolFeeBasisPoints        uint64
	ProtocolFee                   uint64
	QuoteAmountInWithLpFee        uint64
	UserQuoteAmountIn             uint64
	Pool                          solana.PublicKey
	User                          solana.PublicKey
	UserBaseTokenAccount          solana.PublicKey
	UserQuoteTokenAccount         solana.PublicKey
	ProtocolFeeRecipient          solana.PublicKey
	ProtocolFeeRecipientTokenAcct solana.PublicKey
}

// AMMSellEvent is a pump AMM pool sell, field-symmetric with AMMBuyEvent.
type AMMSellEvent struct {
	Timestamp                     int64
	BaseAmountIn                  uint64
	MinQuoteAmountOut             uint64
	UserBaseTokenReserves         uint64
	UserQuoteTokenReserves        uint64
	PoolBaseTokenReserves         uint64
	PoolQuoteTokenReserves        uint64
	QuoteAmountOut                uint64
	LpFeeBasisPoints              uint64
	LpFee                         uint64
	ProtocolFeeBasisPoints        uint64
	ProtocolFee                   uint64
	QuoteAmountOutWithoutLpFee    uint64
	UserQuoteAmountOut            uint64
	Pool                          solana.PublicKey
	User                          solana.PublicKey
	UserBaseTokenAccount          solana.PublicKey
	UserQuoteTokenAccount         solana.PublicKey
	ProtocolFeeRecipient          solana.PublicKey
	ProtocolFeeRecipientTokenAcct solana.PublicKey
}

// AMMDepositEvent is a pump AMM liquidity deposit.
type AMMDepositEvent struct {
	Timestamp              int64
	LpTokenAmountOut       uint64
	MaxBaseAmountIn        uint64
	MaxQuoteAmountIn       uint64
	UserBaseTokenReserves  uint64
	UserQuoteTokenReserves uint64
	PoolBaseTokenReserves  uint64
	PoolQuoteTokenReserves uint64
	BaseAmountIn           uint64
	QuoteAmountIn          uint64
	LpMintSupply           uint64
	Pool                   solana.PublicKey
	User                   solana.PublicKey
	UserBaseTokenAccount   solana.PublicKey
	UserQuoteTokenAccount  solana.PublicKey
	UserPoolTokenAccount   solana.PublicKey
}

// AMMWithdrawEvent is a pump AMM liquidity withdrawal.
type AMMWithdrawEvent struct {
	Timestamp              int64
	LpTokenAmountIn        uint64
	MinBaseAmountOut       uint64
	MinQuoteAmountOut      uint64
	UserBaseTokenReserves  uint64
	UserQuoteTokenReserves uint64
	PoolBaseTokenReserves  uint64
	PoolQuoteTokenReserves uint64
	BaseAmountOut          uint64
	QuoteAmountOut         uint64
	LpMintSupply           uint64
	Pool                   solana.PublicKey
	User                   solana.PublicKey
	UserBaseTokenAccount   solana.PublicKey
	UserQuoteTokenAccount  solana.PublicKey
	UserPoolTokenAccount   solana.PublicKey
}

// AMMCreatePoolEvent marks a token's graduation from the launchpad into a
// pump AMM pool.
type AMMCreatePoolEvent struct {
	Timestamp             int64
	Index                 uint16
	Creator               solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	BaseMintDecimals      uint8
	QuoteMintDecimals     uint8
	BaseAmountIn          uint64
	QuoteAmountIn         uint64
	PoolBaseAmount        uint64
	PoolQuoteAmount       uint64
	MinimumLiquidity      uint64
	InitialLiquidity      uint64
	LpTokenAmountOut      uint64
	PoolBump              uint8
	Pool                  solana.PublicKey
	LpMint                solana.PublicKey
	UserBaseTokenAccount  solana.PublicKey
	UserQuoteTokenAccount solana.PublicKey
}

// Event is the exhaustive tagged-variant result of Decode. Exactly one of
// the typed fields is non-nil when Kind matches it; all are nil when Kind
// is KindNone.
type Event struct {
	Kind Kind

	Create         *CreateEvent
	Complete       *CompleteEvent
	Trade          *TradeEvent
	AMMBuy         *AMMBuyEvent
	AMMSell        *AMMSellEvent
	AMMDeposit     *AMMDepositEvent
	AMMWithdraw    *AMMWithdrawEvent
	AMMCreatePool  *AMMCreatePoolEvent
}
