package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ClockAccountDataSize is the byte length of the SysVarClock account.
const ClockAccountDataSize = 40

// Clock mirrors the Solana runtime's clock sysvar.
type Clock struct {
	Slot                uint64
	EpochStartTime      uint64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       uint64
}

// GetClock reads the current on-chain clock. The monitor treats this as an
// optional secondary time source; wall-clock time remains authoritative for
// age calculations (spec requires only "current_millis", not a specific
// source), but some deployments prefer the validator's view of time.
func (c *Client) GetClock(ctx context.Context) (*Clock, error) {
	resp, err := c.GetAccountInfo(ctx, solana.SysVarClockPubkey)
	if err != nil {
		return nil, fmt.Errorf("fetch clock account: %w", err)
	}
	if resp.Value == nil {
		return nil, errors.New("clock account not found")
	}
	data := resp.Value.Data.GetBinary()
	if len(data) != ClockAccountDataSize {
		return nil, fmt.Errorf("invalid clock account length: expected %d, got %d", ClockAccountDataSize, len(data))
	}
	return &Clock{
		Slot:                binary.LittleEndian.Uint64(data[0:8]),
		EpochStartTime:      binary.LittleEndian.Uint64(data[8:16]),
		Epoch:               binary.LittleEndian.Uint64(data[16:24]),
		LeaderScheduleEpoch: binary.LittleEndian.Uint64(data[24:32]),
		UnixTimestamp:       binary.LittleEndian.Uint64(data[32:40]),
	}, nil
}
