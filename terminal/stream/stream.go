package stream

import (
	"slices"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/ansi"
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/handler"
	"github.com/hnimtadd/termcore/terminal/parser"
	"github.com/hnimtadd/termcore/terminal/sequences/csi"
	"github.com/hnimtadd/termcore/terminal/sequences/dcs"
	"github.com/hnimtadd/termcore/terminal/sequences/esc"
	"github.com/hnimtadd/termcore/terminal/sequences/osc"
	"github.com/hnimtadd/termcore/terminal/sgr"
	"github.com/hnimtadd/termcore/terminal/utils"
)

// This is the maximum number of codepoints we can decode at one time
// for a single chunk. This is somewhat arbitrary so if someone can
// demonstrate a better number then we can switch.
const MaxCodePoints = 4096

// Stream processes a stream of tty control characters.
//
// It calls various callback functions on the handler. The handler only
// has to implement the callbacks it cares about (see the handler
// package); any unimplemented callback is logged at runtime.
type Stream struct {
	handler     any
	parser      *parser.Parser
	utf8Decoder *UTF8Decoder

	logger logger.Logger
}

func NewStream(h any, l logger.Logger) *Stream {
	if l == nil {
		l = logger.Nop
	}
	s := &Stream{
		handler:     h,
		parser:      parser.NewParser(),
		utf8Decoder: NewUTF8Decoder(),
		logger:      l,
	}
	s.parser.SetLogger(l)
	return s
}

// NextSlice processes a slice of bytes.
func (s *Stream) NextSlice(input []uint8) {
	// A rejected UTF-8 byte can emit up to two codepoints, so size the
	// chunk at half the codepoint buffer.
	cpBuf := make([]uint32, MaxCodePoints)
	chunk := MaxCodePoints / 2

	for i := 0; i < len(input); {
		n := min(chunk, len(input)-i)
		s.nextSliceCapped(input[i:i+n], cpBuf)
		i += n
	}
}

func (s *Stream) nextSliceCapped(input []uint8, cpBuf []uint32) {
	utils.Assert(len(input)*2 <= len(cpBuf))
	offset := 0

	// Finish an in-flight UTF-8 sequence from the previous chunk.
	for s.utf8Decoder.state != stateUTF8Accept {
		if offset >= len(input) {
			return
		}
		s.nextUtf8(input[offset])
		offset += 1
	}

	// If we're not in the ground state then we process until we are.
	// This can happen if the last chunk of input put us in the middle
	// of a control sequence.
	offset += s.consumeUntilGround(input[offset:])
	if offset >= len(input) {
		return
	}
	offset += s.consumeAllEscapes(input[offset:])

	// In the ground state we can decode UTF-8 until we see an ESC.
	for s.parser.State == parser.StateGround && offset < len(input) {
		decoded, consumed := s.utf8Decoder.DecodeUntilControlSeq(input[offset:], cpBuf)
		for _, cp := range cpBuf[:decoded] {
			s.handleCodepoint(cp)
		}
		offset += consumed
		if offset >= len(input) {
			return
		}

		// If the next byte is not an escape then we must have a
		// partial UTF-8 sequence at the end of the input. Hand it to
		// the scalar path.
		if input[offset] != ansi.C0.ESC {
			for _, c := range input[offset:] {
				s.nextUtf8(c)
			}
			return
		}

		// Process control sequences until we run out.
		offset += s.consumeAllEscapes(input[offset:])
	}
}

// Next processes a single byte. Prefer NextSlice when multiple bytes
// are available.
func (s *Stream) Next(c uint8) {
	switch s.parser.State {
	case parser.StateGround:
		s.nextUtf8(c)
	default:
		s.nextNonUtf8(c)
	}
}

// nextUtf8 processes a single byte of UTF-8 text and prints as
// necessary.
//
// This assumes we're in the UTF-8 decoding state. If we may not be,
// call NextSlice or Next.
func (s *Stream) nextUtf8(c uint8) {
	utils.Assert(s.parser.State == parser.StateGround)

	cp, generated, consumed := s.utf8Decoder.Next(c)
	if generated {
		s.handleCodepoint(cp)
	}

	if !consumed {
		cp, generated, consumed := s.utf8Decoder.Next(c)

		// It should be impossible for the decoder to not consume the
		// byte twice in a row.
		utils.Assert(consumed)
		if generated {
			s.handleCodepoint(cp)
		}
	}
}

// handleCodepoint is called whenever the utf-8 decoder produces a
// codepoint.
//
// This is abstracted this way to handle the case where the decoder
// emits an 0x1B after rejecting an ill-formed sequence.
func (s *Stream) handleCodepoint(cp uint32) {
	if cp < 0x20 {
		if cp == uint32(ansi.C0.ESC) {
			s.nextNonUtf8(uint8(cp))
			return
		}
		s.execute(uint8(cp))
		return
	}
	s.print(cp)
}

// nextNonUtf8 processes the next byte and calls any callbacks if
// necessary.
//
// This assumes that we're not in the UTF-8 decoding state. If we may
// be, call NextSlice or Next.
func (s *Stream) nextNonUtf8(c uint8) {
	utils.Assert(s.parser.State != parser.StateGround || c == ansi.C0.ESC)

	actions := s.parser.Next(c)
	for _, action := range actions[:] {
		if action == nil {
			continue
		}
		switch action.Type {
		case parser.ActionPrint:
			s.print(uint32(action.PrintData))

		case parser.ActionExecute:
			s.execute(action.ExecuteData)

		case parser.ActionCSIDispatch:
			s.csiDispatch(action.CSIDispatchData)

		case parser.ActionESCDispatch:
			s.escDispatch(action.ESCDispatchData)

		case parser.ActionOSCEnd:
			if action.OSCDispatchData != nil {
				s.oscDispatch(action.OSCDispatchData)
			}

		case parser.ActionDCSHook:
			if h, ok := s.handler.(dcs.HookHandler); ok {
				h.DCSHook(action.DCSHookData)
			} else {
				s.logger.Debug("ignoring DCS hook", "dcs", action.DCSHookData)
			}

		case parser.ActionDCSPut:
			if h, ok := s.handler.(dcs.PutHandler); ok {
				h.DCSPut(action.DCSPutData)
			}

		case parser.ActionDCSUnHook:
			if h, ok := s.handler.(dcs.UnhookHandler); ok {
				h.DCSUnhook()
			}
		}
	}
}

func (s *Stream) execute(c uint8) {
	if s.handler == nil {
		s.logger.Warn("handler is nil, ignoring")
		return
	}
	c0 := ansi.C0
	switch c {
	case c0.BS:
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.Backspace()
		}

	case c0.HT:
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorTabRight(1)
		}

	case c0.LF, c0.VT, c0.FF:
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.LineFeed()
		}

	case c0.CR:
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.CarriageReturn()
		}

	case c0.SO:
		if h, ok := s.handler.(handler.CharsetHandler); ok {
			h.InvokeCharset(charset.G1)
		}

	case c0.SI:
		if h, ok := s.handler.(handler.CharsetHandler); ok {
			h.InvokeCharset(charset.G0)
		}

	case c0.BEL:
		if h, ok := s.handler.(handler.BellHandler); ok {
			h.Bell()
		}

	case c0.NUL, c0.ENQ, c0.CAN, c0.SUB:
		// no-op

	default:
		s.logger.Debug("ignoring c0 character", "char", ansi.String(c))
	}
}

func (s *Stream) print(cp uint32) {
	if h, ok := s.handler.(handler.PrintHandler); ok {
		h.Print(cp)
	} else {
		s.logger.Warn("unimplemented print", "codepoint", cp)
	}
}

// csiDispatch implements the VT100/xterm control sequences, in
// alphabetical order of final character.
func (s *Stream) csiDispatch(c *csi.Command) {
	// The private marker, when present, is the first intermediate.
	private := len(c.Intermediates) > 0 && c.Intermediates[0] == '?'

	switch c.Final {
	case 'A', 'k':
		// CUU - Cursor Up
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorUp(c.Param(0, 1), false)
		}

	case 'B':
		// CUD - Cursor Down
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorDown(c.Param(0, 1), false)
		}

	case 'C':
		// CUF - Cursor Forward
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorRight(c.Param(0, 1))
		}

	case 'D', 'j':
		// CUB - Cursor Backward
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorLeft(c.Param(0, 1))
		}

	case 'E':
		// CNL - Cursor Next Line
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorDown(c.Param(0, 1), true)
		}

	case 'F':
		// CPL - Cursor Preceding Line
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorUp(c.Param(0, 1), true)
		}

	case 'G', '`':
		// CHA / HPA - Cursor Horizontal Position Absolute
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorCol(c.Param(0, 1))
		}

	case 'H', 'f':
		// CUP - Cursor Position / HVP - Horizontal Vertical Position
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorPosition(c.ParamOrZero(0), c.ParamOrZero(1))
		}

	case 'I':
		// CHT - Cursor Horizontal Tabulation
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorTabRight(c.Param(0, 1))
		}

	case 'J':
		// ED - Erase in Display (DECSED with ? treated the same)
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.EraseInDisplay(csi.EDMode(c.ParamOrZero(0)))
		}

	case 'K':
		// EL - Erase in Line (DECSEL with ? treated the same)
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.EraseInLine(csi.ELMode(c.ParamOrZero(0)))
		}

	case 'L':
		// IL - Insert Lines
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.InsertLines(c.Param(0, 1))
		}

	case 'M':
		// DL - Delete Lines
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.DeleteLines(c.Param(0, 1))
		}

	case 'P':
		// DCH - Delete Characters
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.DeleteChars(c.Param(0, 1))
		}

	case 'S':
		// SU - Scroll Up
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.ScrollUp(c.Param(0, 1))
		}

	case 'T':
		// SD - Scroll Down
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.ScrollDown(c.Param(0, 1))
		}

	case 'X':
		// ECH - Erase Characters
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.EraseChars(c.Param(0, 1))
		}

	case 'Z':
		// CBT - Cursor Backward Tabulation
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorTabLeft(c.Param(0, 1))
		}

	case '@':
		// ICH - Insert Blanks
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.InsertBlanks(c.Param(0, 1))
		}

	case 'b':
		// REP - Repeat previous character
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.RepeatLastChar(c.Param(0, 1))
		}

	case 'd':
		// VPA - Vertical Position Absolute
		if h, ok := s.handler.(handler.EditorHandler); ok {
			h.SetCursorRow(c.Param(0, 1))
		}

	case 'g':
		// TBC - Tab Clear
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
			h.TabClear(c.ParamOrZero(0))
		}

	case 'h':
		// SM - Set Mode
		s.setModes(c, true)

	case 'l':
		// RM - Reset Mode
		s.setModes(c, false)

	case 'm':
		// SGR - Select Graphic Rendition
		if len(c.Intermediates) > 0 {
			s.logger.Debug("ignoring SGR with intermediates", "csi", c)
			return
		}
		h, ok := s.handler.(handler.SGRHandler)
		if !ok {
			s.logger.Warn("unimplemented SGR command", "csi", c)
			return
		}
		p := sgr.NewParser(c.Params, c.ParamsSet)
		for attr := p.Next(); attr != nil; attr = p.Next() {
			h.SetGraphicsRendition(attr)
		}

	case 'n':
		// DSR - Device Status Report
		if h, ok := s.handler.(handler.VT100Handler); ok {
			h.DeviceStatusReport(c.ParamOrZero(0))
		}

	case 'c':
		// DA - Device Attributes. Secondary (>) and tertiary (=)
		// requests are not answered.
		if len(c.Intermediates) > 0 {
			s.logger.Debug("ignoring secondary DA", "csi", c)
			return
		}
		if h, ok := s.handler.(handler.VT100Handler); ok {
			h.DeviceAttributes()
		}

	case 'p':
		switch {
		case slices.Equal(c.Intermediates, []uint8{'?', '$'}):
			// DECRQM - Request Mode (DEC private)
			if h, ok := s.handler.(handler.VT100Handler); ok {
				h.RequestMode(int(c.ParamOrZero(0)), false)
			}
		case slices.Equal(c.Intermediates, []uint8{'$'}):
			// DECRQM - Request Mode (ANSI)
			if h, ok := s.handler.(handler.VT100Handler); ok {
				h.RequestMode(int(c.ParamOrZero(0)), true)
			}
		case slices.Equal(c.Intermediates, []uint8{'!'}):
			// DECSTR - Soft Terminal Reset
			if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
				h.SoftReset()
			}
		default:
			s.logger.Debug("ignoring CSI p", "csi", c)
		}

	case 'q':
		// DECSCUSR - Set Cursor Style
		if slices.Equal(c.Intermediates, []uint8{' '}) {
			if h, ok := s.handler.(handler.VT100Handler); ok {
				h.SetCursorStyle(c.ParamOrZero(0))
			}
			return
		}
		s.logger.Debug("ignoring CSI q", "csi", c)

	case 'r':
		// DECSTBM - Set Top and Bottom Margins
		if private || len(c.Intermediates) > 0 {
			s.logger.Debug("ignoring CSI r with intermediates", "csi", c)
			return
		}
		if h, ok := s.handler.(handler.VT100Handler); ok {
			h.SetTopAndBottomMargin(c.ParamOrZero(0), c.ParamOrZero(1))
		}

	case 's':
		// SCOSC - Save Cursor (ANSI.SYS)
		if len(c.Intermediates) == 0 && len(c.Params) == 0 {
			if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
				h.SaveCursor()
			}
		}

	case 'u':
		// SCORC - Restore Cursor (ANSI.SYS)
		if len(c.Intermediates) == 0 {
			if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
				h.RestoreCursor()
			}
		}

	case 't':
		// XTWINOPS - only the title stack operations are supported.
		h, ok := s.handler.(handler.VT100Handler)
		if !ok {
			return
		}
		switch c.ParamOrZero(0) {
		case 22:
			h.PushTitle()
		case 23:
			h.PopTitle()
		default:
			s.logger.Debug("ignoring XTWINOPS", "csi", c)
		}

	default:
		s.logger.Debug("unimplemented CSI", "csi", c)
	}
}

// setModes handles SM/RM for both ANSI and DEC private modes. Unknown
// mode numbers are still forwarded so their value can be reported
// back.
func (s *Stream) setModes(c *csi.Command, value bool) {
	h, ok := s.handler.(handler.VT100Handler)
	if !ok {
		s.logger.Warn("unimplemented SM/RM command", "csi", c)
		return
	}

	var ansiMode bool
	switch {
	case len(c.Intermediates) == 0:
		ansiMode = true
	case len(c.Intermediates) == 1 && c.Intermediates[0] == '?':
		ansiMode = false
	default:
		s.logger.Debug("invalid set mode command", "csi", c)
		return
	}

	for _, p := range c.Params {
		if mode := core.ModeFromInt(int(p), ansiMode); mode != nil {
			h.SetMode(*mode, value)
		} else {
			h.SetUnknownMode(int(p), ansiMode, value)
		}
	}
}

// escDispatch implements the VT100 escape sequences.
func (s *Stream) escDispatch(c *esc.Command) {
	// Charset designation: ESC ( ) * + final
	if len(c.Intermediates) == 1 {
		if slot, ok := charset.SlotFromIntermediate(c.Intermediates[0]); ok {
			cs, known := charset.FromFinal(c.Final)
			if !known {
				s.logger.Debug("unknown charset designator", "esc", c)
				return
			}
			if h, implemented := s.handler.(handler.CharsetHandler); implemented {
				h.DesignateCharset(slot, cs)
			}
			return
		}
	}

	switch c.Final {
	case 'D':
		// IND - Index
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.Index()
		}

	case 'E':
		// NEL - Next Line
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.NextLine()
		}

	case 'H':
		// HTS - Tab Set
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.TabSet()
		}

	case 'M':
		// RI - Reverse Index
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.ReverseIndex()
		}

	case 'c':
		// RIS - Full Reset
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.FullReset()
		}

	case '7':
		// DECSC - Save Cursor
		if h, ok := s.handler.(handler.FormatEffectorHandler); ok && len(c.Intermediates) == 0 {
			h.SaveCursor()
		}

	case '8':
		switch {
		case len(c.Intermediates) == 0:
			// DECRC - Restore Cursor
			if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
				h.RestoreCursor()
			}
		case slices.Equal(c.Intermediates, []uint8{'#'}):
			// DECALN - Screen Alignment Test
			if h, ok := s.handler.(handler.FormatEffectorHandler); ok {
				h.ScreenAlignmentTest()
			}
		}

	case '=', '>':
		// DECKPAM / DECKPNM - keypad modes, not tracked.
		s.logger.Debug("ignoring keypad mode", "esc", c)

	case '\\':
		// ST - String terminator. Nothing to do.

	default:
		s.logger.Debug("unimplemented ESC", "esc", c)
	}
}

func (s *Stream) oscDispatch(cmd *osc.Command) {
	if h, ok := s.handler.(handler.OSCHandler); ok {
		h.OSCDispatch(cmd)
		return
	}
	s.logger.Debug("unimplemented osc dispatch", "command", cmd)
}

// consumeUntilGround reads the stream until we reach the ground state,
// returning the number of bytes consumed.
func (s *Stream) consumeUntilGround(input []uint8) int {
	offset := 0
	for s.parser.State != parser.StateGround {
		if offset >= len(input) {
			return len(input)
		}
		s.nextNonUtf8(input[offset])
		offset += 1
	}
	return offset
}

// consumeAllEscapes parses escape sequences back-to-back until none are
// left, returning the number of bytes consumed from the provided
// input.
//
// Expects input to start with ESC; use consumeUntilGround first if the
// stream is in the middle of an escape sequence.
func (s *Stream) consumeAllEscapes(input []uint8) int {
	offset := 0
	for offset < len(input) && input[offset] == ansi.C0.ESC {
		s.nextNonUtf8(input[offset])
		offset += 1
		offset += s.consumeUntilGround(input[offset:])
	}
	return offset
}
