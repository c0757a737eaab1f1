package color

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSpec parses an X11-style color specification as used by OSC 4,
// OSC 10 and OSC 11. Two forms are accepted:
//
//	rgb:RR/GG/BB   with 1-4 hex digits per channel
//	#RRGGBB        with exactly 2 hex digits per channel
//
// Anything else is a malformed (but untrusted) input and yields an
// error the dispatcher turns into a logged no-op.
func ParseSpec(spec string) (RGB, error) {
	switch {
	case strings.HasPrefix(spec, "rgb:"):
		parts := strings.Split(spec[len("rgb:"):], "/")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("color: malformed rgb spec %q", spec)
		}
		var out [3]uint8
		for i, part := range parts {
			v, err := parseChannel(part)
			if err != nil {
				return RGB{}, fmt.Errorf("color: malformed rgb spec %q: %w", spec, err)
			}
			out[i] = v
		}
		return RGB{out[0], out[1], out[2]}, nil

	case strings.HasPrefix(spec, "#") && len(spec) == 7:
		v, err := strconv.ParseUint(spec[1:], 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("color: malformed hex spec %q: %w", spec, err)
		}
		return RGB{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		}, nil

	default:
		return RGB{}, fmt.Errorf("color: unknown color spec %q", spec)
	}
}

// parseChannel scales a 1-4 hex digit channel to 8 bits. X11 treats
// the digits as the most significant bits of a 16-bit value.
func parseChannel(s string) (uint8, error) {
	if len(s) == 0 || len(s) > 4 {
		return 0, fmt.Errorf("bad channel %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	shift := 4 * (len(s) - 1)
	scaled := uint64(0)
	if shift > 0 {
		// Scale to 16 bits, keep the top byte.
		scaled = v << (16 - 4*len(s))
		scaled |= scaled >> (4 * len(s))
		return uint8(scaled >> 8), nil
	}
	// Single digit: repeat it, 0xA -> 0xAA.
	return uint8(v<<4 | v), nil
}
