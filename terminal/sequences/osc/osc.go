// Package osc parses operating system command strings: the bytes
// between an OSC introducer and its terminator (BEL or ST).
package osc

import (
	"fmt"
	"strconv"
	"strings"
)

// maxLen bounds the accumulated payload. Anything longer marks the
// command invalid while the state machine still consumes to the
// terminator, so a hostile stream cannot grow memory without bound.
const maxLen = 8192

type CommandType int

const (
	CommandTypeInvalid CommandType = iota

	// OSC 0 and OSC 2
	CommandTypeChangeWindowTitle
	// OSC 1
	CommandTypeChangeIconName
	// OSC 4
	CommandTypeSetPaletteColor
	// OSC 104
	CommandTypeResetPaletteColor
	// OSC 7
	CommandTypeReportPwd
	// OSC 8
	CommandTypeHyperlink
	// OSC 10
	CommandTypeSetForegroundColor
	// OSC 11
	CommandTypeSetBackgroundColor
	// OSC 52
	CommandTypeClipboard
)

// PaletteEntry is one index/spec pair from an OSC 4 command.
type PaletteEntry struct {
	Index uint8
	Spec  string
}

type Command struct {
	Type CommandType

	// Title or icon name for types 0/1/2.
	Title string

	// Working directory URL for type 7.
	Pwd string

	// Hyperlink target and optional explicit id for type 8. An empty
	// URI closes the active hyperlink.
	URI    string
	LinkID string

	// Palette entries for type 4.
	Palette []PaletteEntry

	// Palette indexes for type 104. Empty means reset the whole
	// palette.
	ResetIndexes []uint8

	// Color spec for types 10/11, or a query when Query is set.
	ColorSpec string
	Query     bool

	// Clipboard selection name and base64 payload for type 52.
	ClipboardSelection byte
	ClipboardData      string
}

func (c *Command) String() string {
	return fmt.Sprintf("OSC type=%d", c.Type)
}

// Parser accumulates an OSC payload byte by byte and interprets it when
// the terminator arrives.
type Parser struct {
	buf      []byte
	overflow bool
}

func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 128)}
}

// Reset prepares the parser for a new OSC string.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.overflow = false
}

// Next feeds one payload byte.
func (p *Parser) Next(c byte) {
	if len(p.buf) >= maxLen {
		p.overflow = true
		return
	}
	p.buf = append(p.buf, c)
}

// End interprets the accumulated payload. It returns nil for payloads
// we cannot parse; the caller drops those without side effects.
func (p *Parser) End() *Command {
	if p.overflow || len(p.buf) == 0 {
		return nil
	}

	s := string(p.buf)
	num, rest, hasRest := strings.Cut(s, ";")
	code, err := strconv.Atoi(num)
	if err != nil {
		return nil
	}

	switch code {
	case 0, 2:
		return &Command{Type: CommandTypeChangeWindowTitle, Title: rest}
	case 1:
		return &Command{Type: CommandTypeChangeIconName, Title: rest}
	case 4:
		return parsePalette(rest)
	case 104:
		return parsePaletteReset(rest, hasRest)
	case 7:
		return &Command{Type: CommandTypeReportPwd, Pwd: rest}
	case 8:
		return parseHyperlink(rest)
	case 10:
		return parseDynamicColor(CommandTypeSetForegroundColor, rest, hasRest)
	case 11:
		return parseDynamicColor(CommandTypeSetBackgroundColor, rest, hasRest)
	case 52:
		return parseClipboard(rest, hasRest)
	}
	return nil
}

// parsePalette handles "idx;spec" pairs, repeated: OSC 4;1;red;2;#00ff00
func parsePalette(rest string) *Command {
	fields := strings.Split(rest, ";")
	if len(fields) < 2 || len(fields)%2 != 0 {
		return nil
	}
	cmd := &Command{Type: CommandTypeSetPaletteColor}
	for i := 0; i < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		cmd.Palette = append(cmd.Palette, PaletteEntry{
			Index: uint8(idx),
			Spec:  fields[i+1],
		})
	}
	if len(cmd.Palette) == 0 {
		return nil
	}
	return cmd
}

func parsePaletteReset(rest string, hasRest bool) *Command {
	cmd := &Command{Type: CommandTypeResetPaletteColor}
	if !hasRest {
		return cmd
	}
	for _, f := range strings.Split(rest, ";") {
		idx, err := strconv.Atoi(f)
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		cmd.ResetIndexes = append(cmd.ResetIndexes, uint8(idx))
	}
	return cmd
}

// parseHyperlink handles "params;uri" where params are colon-separated
// key=value pairs. Only the id key is understood.
func parseHyperlink(rest string) *Command {
	params, uri, ok := strings.Cut(rest, ";")
	if !ok {
		return nil
	}
	cmd := &Command{Type: CommandTypeHyperlink, URI: uri}
	for _, kv := range strings.Split(params, ":") {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "id" {
			cmd.LinkID = v
		}
	}
	return cmd
}

func parseDynamicColor(t CommandType, rest string, hasRest bool) *Command {
	if !hasRest || rest == "" {
		return nil
	}
	cmd := &Command{Type: t}
	if rest == "?" {
		cmd.Query = true
		return cmd
	}
	cmd.ColorSpec = rest
	return cmd
}

// parseClipboard handles "selection;base64data". The data is kept
// as-is, decoding is up to the handler.
func parseClipboard(rest string, hasRest bool) *Command {
	if !hasRest {
		return nil
	}
	sel, data, ok := strings.Cut(rest, ";")
	if !ok {
		return nil
	}
	cmd := &Command{Type: CommandTypeClipboard, ClipboardData: data}
	cmd.ClipboardSelection = 'c'
	if sel != "" {
		cmd.ClipboardSelection = sel[0]
	}
	if data == "?" {
		cmd.Query = true
		cmd.ClipboardData = ""
	}
	return cmd
}
