package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()

	// Base colors come from the named defaults.
	require.Equal(t, NameRed.defaultRGB(), p[1])
	require.Equal(t, RGB{0xFF, 0xFF, 0xFF}, p[15])

	// Cube corners.
	require.Equal(t, RGB{0, 0, 0}, p[16])
	require.Equal(t, RGB{0xFF, 0xFF, 0xFF}, p[231])

	// Grayscale ramp runs 8..238 in steps of 10.
	require.Equal(t, RGB{8, 8, 8}, p[232])
	require.Equal(t, RGB{238, 238, 238}, p[255])
}

func TestResolve(t *testing.T) {
	p := DefaultPalette()
	def := RGB{1, 2, 3}

	require.Equal(t, def, None().Resolve(&p, def))
	require.Equal(t, p[NameGreen], Named(NameGreen).Resolve(&p, def))
	require.Equal(t, p[123], Indexed(123).Resolve(&p, def))
	require.Equal(t, RGB{9, 8, 7}, FromRGB(9, 8, 7).Resolve(&p, def))

	// Palette overrides show through already-resolved named colors.
	p[uint8(NameGreen)] = RGB{0, 0xFF, 0}
	require.Equal(t, RGB{0, 0xFF, 0}, Named(NameGreen).Resolve(&p, def))
}

func TestEqual(t *testing.T) {
	p := DefaultPalette()
	require.True(t, Named(NameRed).Equal(Indexed(uint8(NameRed)), &p))
	require.False(t, Named(NameRed).Equal(Named(NameBlue), &p))

	direct := FromRGB(p[3].R, p[3].G, p[3].B)
	require.True(t, direct.Equal(Indexed(3), &p))
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec string
		want RGB
	}{
		{"rgb:ff/00/80", RGB{0xFF, 0x00, 0x80}},
		{"rgb:f/0/8", RGB{0xFF, 0x00, 0x88}},
		{"rgb:ffff/0000/8080", RGB{0xFF, 0x00, 0x80}},
		{"#ff0080", RGB{0xFF, 0x00, 0x80}},
		{"#000000", RGB{0, 0, 0}},
	}
	for _, tc := range tests {
		got, err := ParseSpec(tc.spec)
		require.NoError(t, err, tc.spec)
		require.Equal(t, tc.want, got, tc.spec)
	}

	for _, spec := range []string{"", "red", "#ff00", "#ff00801", "rgb:ff/00", "rgb:gg/00/00", "rgb:12345/0/0"} {
		_, err := ParseSpec(spec)
		require.Error(t, err, spec)
	}
}

func TestNearestIndex(t *testing.T) {
	p := DefaultPalette()

	// Exact cube entries map to themselves.
	require.Equal(t, uint8(16), NearestIndex(&p, RGB{0, 0, 0}))
	require.Equal(t, uint8(231), NearestIndex(&p, RGB{0xFF, 0xFF, 0xFF}))

	// A mid gray lands on the grayscale ramp.
	got := NearestIndex(&p, RGB{0x80, 0x80, 0x80})
	c := p[got]
	require.Equal(t, c.R, c.G)
	require.Equal(t, c.G, c.B)
}
