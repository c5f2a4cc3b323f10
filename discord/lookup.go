package discord

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/WelcomerTeam/Discord/internal/jsonx"
)

// fromCode returns the entry of known equal to code, or unknown when none match.
func fromCode[E comparable](known []E, code E, unknown E) E {
	for _, k := range known {
		if k == code {
			return k
		}
	}

	return unknown
}

// unmarshalCode decodes a raw wire code and resolves it through lookup.
// null leaves dst untouched.
func unmarshalCode[C any, E any](b []byte, dst *E, lookup func(C) E) error {
	if bytes.Equal(b, null) {
		return nil
	}

	var code C

	if err := jsonx.Unmarshal(b, &code); err != nil {
		return fmt.Errorf("failed to unmarshal json: %w", err)
	}

	*dst = lookup(code)

	return nil
}

type bitFlag interface {
	~uint16 | ~uint32 | ~uint64
}

// decodeFlags returns every flag in known whose bit is set in raw, in table order.
// Bits not present in known are ignored.
func decodeFlags[F bitFlag](raw uint64, known []F) []F {
	flags := make([]F, 0, bits.OnesCount64(raw))

	if raw == 0 {
		return flags
	}

	for _, flag := range known {
		if flag != 0 && raw&uint64(flag) == uint64(flag) {
			flags = append(flags, flag)
		}
	}

	return flags
}

func encodeFlags[F bitFlag](flags []F) uint64 {
	var raw uint64

	for _, flag := range flags {
		raw |= uint64(flag)
	}

	return raw
}

// flagOffset returns the bit position of a single-bit flag.
func flagOffset[F bitFlag](flag F) int {
	return bits.TrailingZeros64(uint64(flag))
}
