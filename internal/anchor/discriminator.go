// Package anchor computes Anchor-style account/event discriminators.
package anchor

import (
	"crypto/sha256"
	"fmt"
)

// Discriminator returns the first 8 bytes of sha256("namespace:name"), the
// convention Anchor programs use to tag serialized accounts, instructions
// and events.
func Discriminator(namespace, name string) [8]byte {
	preimage := fmt.Sprintf("%s:%s", namespace, name)
	hash := sha256.Sum256([]byte(preimage))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

// EventDiscriminator is Discriminator("event", name) — the tag pump.fun and
// pump AMM programs emit as the second 8 bytes of every logged event
// payload.
func EventDiscriminator(name string) [8]byte {
	return Discriminator("event", name)
}
