// SGR (Select Graphic Rendition) attribute parsing and types.
//
// This is implemented based on: https://vt100.net/docs/vt510-rm/SGR.html
package sgr

import "github.com/hnimtadd/termcore/terminal/color"

type AttributeType uint16

const (
	AttributeTypeUnset AttributeType = iota

	// Bold the text.
	AttributeTypeBold
	AttributeTypeResetBold

	// Faint/dim text.
	AttributeTypeFaint

	// Italic the text.
	AttributeTypeItalic
	AttributeTypeResetItalic

	// Underline the text.
	AttributeTypeUnderline
	AttributeTypeResetUnderline
	AttributeTypeUnderlineColor
	AttributeType256UnderlineColor
	AttributeTypeResetUnderlineColor

	// Overline the text.
	AttributeTypeOverline
	AttributeTypeResetOverline

	// Blink the text.
	AttributeTypeBlink
	AttributeTypeResetBlink

	// Invert fg/bg colors.
	AttributeTypeInverse
	AttributeTypeResetInverse

	// Invisible text.
	AttributeTypeInvisible
	AttributeTypeResetInvisible

	// Strikethrough the text.
	AttributeTypeStrikethrough
	AttributeTypeResetStrikethrough

	// The 8/16 base colors (SGR 30-37, 90-97 and bg variants).
	AttributeType8BitFg
	AttributeType8BitBg

	// Indexed 256-palette colors (SGR 38;5 / 48;5).
	AttributeType256Fg
	AttributeType256Bg

	// Direct colors (SGR 38;2 / 48;2).
	AttributeTypeDirectColorFg
	AttributeTypeDirectColorBg

	// Reset fg/bg to default (SGR 39 / 49).
	AttributeTypeResetFg
	AttributeTypeResetBg

	// Unknown
	AttributeTypeUnknown
)

type UnderlineType uint8

const (
	UnderlineTypeNone UnderlineType = iota
	UnderlineTypeSingle
	UnderlineTypeDouble
	UnderlineTypeCurly
	UnderlineTypeDotted
	UnderlineTypeDashed
)

type unknown struct {
	Full    []uint16
	Partial []uint16
}

type Attribute struct {
	Type      AttributeType
	Underline UnderlineType

	// Named base color for the 8-bit attribute types.
	Name color.Name

	// Palette index for the 256 attribute types.
	Index uint8

	// Direct color payloads.
	UnderlineColor color.RGB
	DirectColorFg  color.RGB
	DirectColorBg  color.RGB

	Unknown unknown
}
