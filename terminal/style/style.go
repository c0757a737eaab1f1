// Package style holds the graphic rendition state applied to printed
// cells. Styles are interned in a refcounted set so a cell only carries
// a small integer id.
package style

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/hnimtadd/termcore/terminal/color"
	"github.com/hnimtadd/termcore/terminal/set"
	"github.com/hnimtadd/termcore/terminal/sgr"
)

// DefaultID is the id of the zero Style. Cells carrying it render with
// the terminal defaults and hold no reference in the style set.
const DefaultID set.ID = 0

type Style struct {
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color

	Bold          bool
	Faint         bool
	Italic        bool
	Blink         bool
	Inverse       bool
	Invisible     bool
	Strikethrough bool
	Overline      bool

	Underline sgr.UnderlineType
}

// Default returns the zero style.
func Default() Style { return Style{} }

// IsDefault reports whether s renders identically to an unstyled cell.
func (s Style) IsDefault() bool { return s == Style{} }

// Hash implements set.Hashable.
func (s Style) Hash() uint64 {
	hash, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		// Style contains only plain value fields, hashstructure cannot
		// fail on it.
		panic(err)
	}
	return hash
}

// Equals implements set.Hashable.
func (s Style) Equals(other set.Hashable) bool {
	o, ok := other.(Style)
	if !ok {
		return false
	}
	return s == o
}

// Apply mutates the style according to a single SGR attribute and
// reports whether the attribute was recognized.
func (s *Style) Apply(attr *sgr.Attribute) bool {
	switch attr.Type {
	case sgr.AttributeTypeUnset:
		*s = Style{}
	case sgr.AttributeTypeBold:
		s.Bold = true
	case sgr.AttributeTypeResetBold:
		// SGR 22 clears both bold and faint.
		s.Bold = false
		s.Faint = false
	case sgr.AttributeTypeFaint:
		s.Faint = true
	case sgr.AttributeTypeItalic:
		s.Italic = true
	case sgr.AttributeTypeResetItalic:
		s.Italic = false
	case sgr.AttributeTypeUnderline:
		s.Underline = attr.Underline
	case sgr.AttributeTypeResetUnderline:
		s.Underline = sgr.UnderlineTypeNone
	case sgr.AttributeTypeUnderlineColor:
		c := attr.UnderlineColor
		s.UnderlineColor = color.FromRGB(c.R, c.G, c.B)
	case sgr.AttributeType256UnderlineColor:
		s.UnderlineColor = color.Indexed(attr.Index)
	case sgr.AttributeTypeResetUnderlineColor:
		s.UnderlineColor = color.None()
	case sgr.AttributeTypeOverline:
		s.Overline = true
	case sgr.AttributeTypeResetOverline:
		s.Overline = false
	case sgr.AttributeTypeBlink:
		s.Blink = true
	case sgr.AttributeTypeResetBlink:
		s.Blink = false
	case sgr.AttributeTypeInverse:
		s.Inverse = true
	case sgr.AttributeTypeResetInverse:
		s.Inverse = false
	case sgr.AttributeTypeInvisible:
		s.Invisible = true
	case sgr.AttributeTypeResetInvisible:
		s.Invisible = false
	case sgr.AttributeTypeStrikethrough:
		s.Strikethrough = true
	case sgr.AttributeTypeResetStrikethrough:
		s.Strikethrough = false
	case sgr.AttributeType8BitFg:
		s.Fg = color.Named(attr.Name)
	case sgr.AttributeType8BitBg:
		s.Bg = color.Named(attr.Name)
	case sgr.AttributeType256Fg:
		s.Fg = color.Indexed(attr.Index)
	case sgr.AttributeType256Bg:
		s.Bg = color.Indexed(attr.Index)
	case sgr.AttributeTypeDirectColorFg:
		c := attr.DirectColorFg
		s.Fg = color.FromRGB(c.R, c.G, c.B)
	case sgr.AttributeTypeDirectColorBg:
		c := attr.DirectColorBg
		s.Bg = color.FromRGB(c.R, c.G, c.B)
	case sgr.AttributeTypeResetFg:
		s.Fg = color.None()
	case sgr.AttributeTypeResetBg:
		s.Bg = color.None()
	default:
		return false
	}
	return true
}
