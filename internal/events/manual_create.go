package events

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// tryManualParseCreate re-reads a Create event body field by field instead
// of trusting a single Borsh decode call. It exists for a historical schema
// change where the standard decode can fail on an otherwise well-formed
// payload; it never trusts more than the bytes actually present.
func tryManualParseCreate(raw []byte) (*CreateEvent, bool) {
	if len(raw) < 100 {
		return nil, false
	}
	offset := 16

	name, offset, ok := parseString(raw, offset)
	if !ok {
		return nil, false
	}
	symbol, offset, ok := parseString(raw, offset)
	if !ok {
		return nil, false
	}
	uri, offset, ok := parseString(raw, offset)
	if !ok {
		return nil, false
	}

	if offset+32*3 > len(raw) {
		return nil, false
	}
	mint := solana.PublicKeyFromBytes(raw[offset : offset+32])
	offset += 32
	bondingCurve := solana.PublicKeyFromBytes(raw[offset : offset+32])
	offset += 32
	user := solana.PublicKeyFromBytes(raw[offset : offset+32])

	return &CreateEvent{
		Name:         name,
		Symbol:       symbol,
		Uri:          uri,
		Mint:         mint,
		BondingCurve: bondingCurve,
		User:         user,
	}, true
}

// parseString reads a u32-LE length-prefixed UTF-8 string at offset,
// returning the decoded string and the offset of the next field.
func parseString(data []byte, offset int) (string, int, bool) {
	if offset+4 > len(data) {
		return "", offset, false
	}
	length := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	if length < 0 || offset+4+length > len(data) {
		return "", offset, false
	}
	return string(data[offset+4 : offset+4+length]), offset + 4 + length, true
}
