// Package chain wraps the Solana RPC surface the monitor needs: nothing
// beyond read-only account lookups, rate limited the same way the teacher
// repo rate limits its trading client.
package chain

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// Client is a thin, rate-limited read-only wrapper around solana-go's RPC
// client. The monitor never signs or submits transactions.
type Client struct {
	rpc         *rpc.Client
	rateLimiter *RateLimiter
}

// NewClient dials an RPC endpoint with the given requests-per-second cap.
func NewClient(endpoint string, reqLimitPerSecond int) *Client {
	return &Client{
		rpc:         rpc.New(endpoint),
		rateLimiter: NewRateLimiter(reqLimitPerSecond),
	}
}
