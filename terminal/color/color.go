package color

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a fully resolved 24-bit color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Tag discriminates the Color union below.
type Tag uint8

const (
	// TagNone means no color is set (use the terminal default).
	TagNone Tag = iota
	// TagNamed is one of the 16 base ANSI colors.
	TagNamed
	// TagIndexed is an entry of the 256-color palette.
	TagIndexed
	// TagRGB is a direct 24-bit color.
	TagRGB
)

// Color is a tagged union over the three ways a color reaches the
// terminal: a named base color (SGR 30-37/90-97), a 256-palette index
// (SGR 38;5) or a direct RGB triple (SGR 38;2). We keep the source form
// rather than resolving eagerly so palette changes (OSC 4) take effect
// on already-written cells.
type Color struct {
	Tag   Tag
	Name  Name
	Index uint8
	RGB   RGB
}

func None() Color                 { return Color{Tag: TagNone} }
func Named(n Name) Color          { return Color{Tag: TagNamed, Name: n} }
func Indexed(i uint8) Color       { return Color{Tag: TagIndexed, Index: i} }
func FromRGB(r, g, b uint8) Color { return Color{Tag: TagRGB, RGB: RGB{r, g, b}} }

// Resolve returns the concrete RGB value of c under the given palette.
// A none color resolves to def.
func (c Color) Resolve(p *Palette, def RGB) RGB {
	switch c.Tag {
	case TagNamed:
		return p[c.Name]
	case TagIndexed:
		return p[c.Index]
	case TagRGB:
		return c.RGB
	default:
		return def
	}
}

// Equal reports whether two colors resolve to the same RGB triple under
// the palette. Equality is defined on resolved values: Named(1) and the
// palette entry it points at compare equal.
func (c Color) Equal(other Color, p *Palette) bool {
	var def RGB
	return c.Resolve(p, def) == other.Resolve(p, def)
}

func (c Color) String() string {
	switch c.Tag {
	case TagNone:
		return "none"
	case TagNamed:
		return fmt.Sprintf("named(%d)", c.Name)
	case TagIndexed:
		return fmt.Sprintf("indexed(%d)", c.Index)
	case TagRGB:
		return c.RGB.String()
	default:
		return "unknown"
	}
}

// Name identifies one of the 16 base ANSI colors.
type Name uint8

const (
	NameBlack Name = iota
	NameRed
	NameGreen
	NameYellow
	NameBlue
	NameMagenta
	NameCyan
	NameWhite
	NameBrightBlack
	NameBrightRed
	NameBrightGreen
	NameBrightYellow
	NameBrightBlue
	NameBrightMagenta
	NameBrightCyan
	NameBrightWhite
)

func (n Name) defaultRGB() RGB {
	switch n {
	case NameBlack:
		return RGB{0x1D, 0x1F, 0x21}
	case NameRed:
		return RGB{0xCC, 0x66, 0x66}
	case NameGreen:
		return RGB{0xB5, 0xBD, 0x68}
	case NameYellow:
		return RGB{0xF0, 0xC6, 0x74}
	case NameBlue:
		return RGB{0x81, 0xA2, 0xBE}
	case NameMagenta:
		return RGB{0xB2, 0x94, 0xC7}
	case NameCyan:
		return RGB{0x8C, 0xC3, 0xE9}
	case NameWhite:
		return RGB{0xC5, 0xC8, 0xC6}
	case NameBrightBlack:
		return RGB{0x7C, 0x7C, 0x7C}
	case NameBrightRed:
		return RGB{0xFF, 0x8F, 0x8F}
	case NameBrightGreen:
		return RGB{0xB5, 0xBD, 0x68}
	case NameBrightYellow:
		return RGB{0xF0, 0xC6, 0x74}
	case NameBrightBlue:
		return RGB{0x81, 0xA2, 0xBE}
	case NameBrightMagenta:
		return RGB{0xB2, 0x94, 0xC7}
	case NameBrightCyan:
		return RGB{0x8C, 0xC3, 0xE9}
	case NameBrightWhite:
		return RGB{0xFF, 0xFF, 0xFF}
	default:
		return RGB{0, 0, 0}
	}
}

// Palette is the 256-color palette: 16 base colors, the 6x6x6 color
// cube, and the 24-step grayscale ramp. OSC 4 may override entries at
// runtime.
type Palette [256]RGB

// DefaultPalette builds the standard xterm-style palette.
func DefaultPalette() Palette {
	var result Palette

	// Named values.
	var i int
	for ; i < 16; i++ {
		result[i] = Name(i).defaultRGB()
	}

	// 6x6x6 color cube.
	var r, g, b uint8
	for r = 0; r < 6; r++ {
		for g = 0; g < 6; g++ {
			for b = 0; b < 6; b++ {
				result[i] = RGB{cubeStep(r), cubeStep(g), cubeStep(b)}
				i++
			}
		}
	}

	// Grayscale ramp.
	for ; i < 256; i++ {
		value := uint8(i-232)*10 + 8
		result[i] = RGB{value, value, value}
	}

	return result
}

func cubeStep(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return v*40 + 55
}

// NearestIndex returns the 256-palette index closest to the given RGB
// value, searching the color cube and grayscale ramp (indexes 16-255).
// The 16 base colors are skipped since they are user-themable and make
// poor approximation targets.
func NearestIndex(p *Palette, c RGB) uint8 {
	want := toColorful(c)
	best := 16
	bestDist := want.DistanceRgb(toColorful(p[16]))
	for i := 17; i < 256; i++ {
		d := want.DistanceRgb(toColorful(p[i]))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return uint8(best)
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
