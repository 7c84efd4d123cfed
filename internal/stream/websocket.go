package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const (
	connectTimeout = 10 * time.Second
	readTimeout    = 60 * time.Second
)

// subscribeEnvelope is the message sent once a connection opens, naming the
// programs to watch and the commitment level (spec §6).
type subscribeEnvelope struct {
	AccountInclude []string `json:"account_include"`
	Commitment     string   `json:"commitment"`
	BlocksMeta     bool     `json:"blocks_meta"`
}

// wireFrame is the superset of fields either frame kind may carry. Only one
// branch is populated per message.
type wireFrame struct {
	Transaction *struct {
		Signature string `json:"signature"`
		Meta      struct {
			InnerInstructions []struct {
				Data string `json:"data"`
			} `json:"inner_instructions"`
		} `json:"meta"`
	} `json:"transaction,omitempty"`
	BlockMeta *struct {
		Slot      uint64 `json:"slot"`
		Blockhash string `json:"blockhash"`
	} `json:"block_meta,omitempty"`
}

// WSSubscriber is a Subscriber backed by a TLS WebSocket connection to the
// upstream feed.
type WSSubscriber struct {
	conn *websocket.Conn
}

// Dial connects to url, subscribing to launchpad/AMM account activity and
// block-meta frames at "confirmed" commitment.
func Dial(ctx context.Context, url string, accountInclude []string) (*WSSubscriber, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial upstream stream: %w", err)
	}

	sub := subscribeEnvelope{
		AccountInclude: accountInclude,
		Commitment:     "confirmed",
		BlocksMeta:     true,
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send subscription: %w", err)
	}

	return &WSSubscriber{conn: conn}, nil
}

// Next blocks for the next frame, subject to the 60s per-frame read
// deadline named in spec §5.
func (s *WSSubscriber) Next(ctx context.Context) (Frame, error) {
	deadline := time.Now().Add(readTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return Frame{}, fmt.Errorf("set read deadline: %w", err)
	}

	_, raw, err := s.conn.ReadMessage()
	if err != nil {
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}

	var wf wireFrame
	if err := json.Unmarshal(raw, &wf); err != nil {
		return Frame{}, fmt.Errorf("unmarshal frame: %w", err)
	}

	switch {
	case wf.Transaction != nil:
		inner := make([]InnerInstruction, 0, len(wf.Transaction.Meta.InnerInstructions))
		for _, ix := range wf.Transaction.Meta.InnerInstructions {
			inner = append(inner, InnerInstruction{Data: ix.Data})
		}
		return Frame{
			Kind: FrameTransaction,
			Transaction: &TransactionFrame{
				Signature:         wf.Transaction.Signature,
				InnerInstructions: inner,
			},
		}, nil
	case wf.BlockMeta != nil:
		return Frame{
			Kind: FrameBlockMeta,
			BlockMeta: &BlockMetaFrame{
				Slot:      wf.BlockMeta.Slot,
				Blockhash: wf.BlockMeta.Blockhash,
			},
		}, nil
	default:
		return Frame{Kind: FrameUnknown}, nil
	}
}

// Close closes the underlying connection.
func (s *WSSubscriber) Close() error {
	return s.conn.Close()
}
