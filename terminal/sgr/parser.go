package sgr

import (
	"github.com/hnimtadd/termcore/terminal/color"
	"github.com/hnimtadd/termcore/terminal/utils"
)

// Parser pulls SGR attributes out of a CSI m parameter list one at a time.
// Colon-separated sub-parameters are tracked in ParamsSep so that
// "38:2:r:g:b" and "38;2;r;g;b" both parse, while mixed separators in a
// single color spec are rejected as unknown.
type Parser struct {
	Params    []uint16
	ParamsSep *utils.StaticBitSet

	idx int
}

func NewParser(params []uint16, sep *utils.StaticBitSet) *Parser {
	if sep == nil {
		sep = utils.NewStaticBitSet(max(len(params), 1))
	}
	return &Parser{Params: params, ParamsSep: sep}
}

// Next returns the next attribute, or nil when the parameter list is
// exhausted. An empty parameter list yields a single reset (SGR 0).
func (p *Parser) Next() *Attribute {
	if p.idx > len(p.Params) {
		return nil
	}

	// Implicit reset, e.g. ESC[m
	if p.idx == len(p.Params) {
		p.idx++
		if len(p.Params) == 0 {
			return &Attribute{Type: AttributeTypeUnset}
		}
		return nil
	}

	slice := p.Params[p.idx:]
	colon := p.ParamsSep.IsSet(p.idx)
	p.idx++

	switch slice[0] {
	case 0:
		return &Attribute{Type: AttributeTypeUnset}
	case 1:
		return &Attribute{Type: AttributeTypeBold}
	case 2:
		return &Attribute{Type: AttributeTypeFaint}
	case 3:
		return &Attribute{Type: AttributeTypeItalic}
	case 4:
		if colon {
			// "4:" with nothing after the colon reaches us as a
			// one-element slice. Treat it as plain underline.
			if len(slice) < 2 {
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeSingle}
			}
			p.idx++
			switch slice[1] {
			case 0:
				return &Attribute{Type: AttributeTypeResetUnderline}
			case 1:
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeSingle}
			case 2:
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeDouble}
			case 3:
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeCurly}
			case 4:
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeDotted}
			case 5:
				return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeDashed}
			default:
				return p.unknown(slice)
			}
		}
		return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeSingle}
	case 5:
		return &Attribute{Type: AttributeTypeBlink}
	case 6:
		// Rapid blink, treated the same as slow blink.
		return &Attribute{Type: AttributeTypeBlink}
	case 7:
		return &Attribute{Type: AttributeTypeInverse}
	case 8:
		return &Attribute{Type: AttributeTypeInvisible}
	case 9:
		return &Attribute{Type: AttributeTypeStrikethrough}
	case 21:
		return &Attribute{Type: AttributeTypeUnderline, Underline: UnderlineTypeDouble}
	case 22:
		return &Attribute{Type: AttributeTypeResetBold}
	case 23:
		return &Attribute{Type: AttributeTypeResetItalic}
	case 24:
		return &Attribute{Type: AttributeTypeResetUnderline}
	case 25:
		return &Attribute{Type: AttributeTypeResetBlink}
	case 27:
		return &Attribute{Type: AttributeTypeResetInverse}
	case 28:
		return &Attribute{Type: AttributeTypeResetInvisible}
	case 29:
		return &Attribute{Type: AttributeTypeResetStrikethrough}
	case 30, 31, 32, 33, 34, 35, 36, 37:
		return &Attribute{
			Type: AttributeType8BitFg,
			Name: color.Name(slice[0] - 30),
		}
	case 38:
		return p.parseExtendedColor(slice, colon,
			AttributeTypeDirectColorFg, AttributeType256Fg)
	case 39:
		return &Attribute{Type: AttributeTypeResetFg}
	case 40, 41, 42, 43, 44, 45, 46, 47:
		return &Attribute{
			Type: AttributeType8BitBg,
			Name: color.Name(slice[0] - 40),
		}
	case 48:
		return p.parseExtendedColor(slice, colon,
			AttributeTypeDirectColorBg, AttributeType256Bg)
	case 49:
		return &Attribute{Type: AttributeTypeResetBg}
	case 53:
		return &Attribute{Type: AttributeTypeOverline}
	case 55:
		return &Attribute{Type: AttributeTypeResetOverline}
	case 58:
		return p.parseExtendedColor(slice, colon,
			AttributeTypeUnderlineColor, AttributeType256UnderlineColor)
	case 59:
		return &Attribute{Type: AttributeTypeResetUnderlineColor}
	case 90, 91, 92, 93, 94, 95, 96, 97:
		return &Attribute{
			Type: AttributeType8BitFg,
			Name: color.Name(slice[0] - 90 + 8),
		}
	case 100, 101, 102, 103, 104, 105, 106, 107:
		return &Attribute{
			Type: AttributeType8BitBg,
			Name: color.Name(slice[0] - 100 + 8),
		}
	}

	return p.unknown(slice)
}

// parseExtendedColor handles the 38/48/58 families: ";2;r;g;b" direct
// color and ";5;idx" indexed color. The separator style must be
// consistent across the whole spec.
func (p *Parser) parseExtendedColor(slice []uint16, colon bool, direct, indexed AttributeType) *Attribute {
	if len(slice) < 2 {
		return p.unknown(slice)
	}

	switch slice[1] {
	case 2:
		if len(slice) < 5 {
			return p.unknown(slice)
		}
		if !p.sepConsistent(colon, 4) {
			return p.unknown(slice)
		}
		p.idx += 4
		rgb := color.RGB{
			R: uint8(min16(slice[2], 255)),
			G: uint8(min16(slice[3], 255)),
			B: uint8(min16(slice[4], 255)),
		}
		attr := &Attribute{Type: direct}
		switch direct {
		case AttributeTypeDirectColorFg:
			attr.DirectColorFg = rgb
		case AttributeTypeDirectColorBg:
			attr.DirectColorBg = rgb
		case AttributeTypeUnderlineColor:
			attr.UnderlineColor = rgb
		}
		return attr
	case 5:
		if len(slice) < 3 {
			return p.unknown(slice)
		}
		if !p.sepConsistent(colon, 2) {
			return p.unknown(slice)
		}
		p.idx += 2
		return &Attribute{
			Type:  indexed,
			Index: uint8(min16(slice[2], 255)),
		}
	}
	return p.unknown(slice)
}

// sepConsistent reports whether the next n-1 separators after the
// current parameter all match the leading separator style.
func (p *Parser) sepConsistent(colon bool, n int) bool {
	for i := 0; i < n-1; i++ {
		if p.ParamsSep.IsSet(p.idx+i) != colon {
			return false
		}
	}
	return true
}

func (p *Parser) unknown(slice []uint16) *Attribute {
	// Consume any colon-joined sub-parameters so an unrecognized spec
	// does not bleed into the next attribute.
	for p.idx < len(p.Params) && p.ParamsSep.IsSet(p.idx-1) {
		p.idx++
	}
	return &Attribute{
		Type: AttributeTypeUnknown,
		Unknown: unknown{
			Full:    p.Params,
			Partial: slice,
		},
	}
}

func min16(v uint16, cap uint16) uint16 {
	if v > cap {
		return cap
	}
	return v
}
