package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/sequences/csi"
	"github.com/hnimtadd/termcore/terminal/sequences/osc"
	"github.com/hnimtadd/termcore/terminal/sgr"
)

// recorder implements every handler interface and records calls as
// readable strings.
type recorder struct {
	calls []string
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Print(cp uint32)          { r.log("print(%c)", rune(cp)) }
func (r *recorder) Bell()                    { r.log("bell") }
func (r *recorder) Backspace()               { r.log("backspace") }
func (r *recorder) LineFeed()                { r.log("linefeed") }
func (r *recorder) CarriageReturn()          { r.log("cr") }
func (r *recorder) DeleteChars(n uint16)     { r.log("dch(%d)", n) }
func (r *recorder) DeleteLines(n uint16)     { r.log("dl(%d)", n) }
func (r *recorder) InsertLines(n uint16)     { r.log("il(%d)", n) }
func (r *recorder) InsertBlanks(n uint16)    { r.log("ich(%d)", n) }
func (r *recorder) EraseChars(n uint16)      { r.log("ech(%d)", n) }
func (r *recorder) RepeatLastChar(n uint16)  { r.log("rep(%d)", n) }
func (r *recorder) ScrollUp(n uint16)        { r.log("su(%d)", n) }
func (r *recorder) ScrollDown(n uint16)      { r.log("sd(%d)", n) }
func (r *recorder) SetCursorRow(n uint16)    { r.log("row(%d)", n) }
func (r *recorder) SetCursorCol(n uint16)    { r.log("col(%d)", n) }
func (r *recorder) SetCursorLeft(n uint16)   { r.log("left(%d)", n) }
func (r *recorder) SetCursorRight(n uint16)  { r.log("right(%d)", n) }
func (r *recorder) EraseInLine(m csi.ELMode) { r.log("el(%d)", m) }

func (r *recorder) EraseInDisplay(m csi.EDMode) { r.log("ed(%d)", m) }

func (r *recorder) SetCursorPosition(row, col uint16) { r.log("cup(%d,%d)", row, col) }

func (r *recorder) SetCursorUp(n uint16, carriage bool) { r.log("up(%d,%v)", n, carriage) }

func (r *recorder) SetCursorDown(n uint16, carriage bool) { r.log("down(%d,%v)", n, carriage) }

func (r *recorder) SetCursorTabRight(n uint16) { r.log("tabright(%d)", n) }
func (r *recorder) SetCursorTabLeft(n uint16)  { r.log("tableft(%d)", n) }

func (r *recorder) NextLine()            { r.log("nel") }
func (r *recorder) Index()               { r.log("ind") }
func (r *recorder) ReverseIndex()        { r.log("ri") }
func (r *recorder) TabSet()              { r.log("hts") }
func (r *recorder) TabClear(mode uint16) { r.log("tbc(%d)", mode) }
func (r *recorder) FullReset()           { r.log("ris") }
func (r *recorder) SoftReset()           { r.log("decstr") }
func (r *recorder) SaveCursor()          { r.log("decsc") }
func (r *recorder) RestoreCursor()       { r.log("decrc") }
func (r *recorder) ScreenAlignmentTest() { r.log("decaln") }

func (r *recorder) SetGraphicsRendition(attr *sgr.Attribute) { r.log("sgr(%d)", attr.Type) }

func (r *recorder) SetMode(m core.Mode, v bool) { r.log("mode(%s,%v)", m.Name, v) }

func (r *recorder) SetUnknownMode(value int, ansi bool, set bool) {
	r.log("unknownmode(%d,%v,%v)", value, ansi, set)
}

func (r *recorder) RequestMode(value int, ansi bool) { r.log("rqm(%d,%v)", value, ansi) }

func (r *recorder) SetTopAndBottomMargin(top, bottom uint16) { r.log("stbm(%d,%d)", top, bottom) }

func (r *recorder) DeviceAttributes()             { r.log("da") }
func (r *recorder) DeviceStatusReport(req uint16) { r.log("dsr(%d)", req) }
func (r *recorder) SetCursorStyle(style uint16)   { r.log("decscusr(%d)", style) }
func (r *recorder) PushTitle()                    { r.log("pushtitle") }
func (r *recorder) PopTitle()                     { r.log("poptitle") }

func (r *recorder) DesignateCharset(slot charset.Slot, cs charset.Charset) {
	r.log("designate(%d,%d)", slot, cs)
}

func (r *recorder) InvokeCharset(slot charset.Slot) { r.log("invoke(%d)", slot) }

func (r *recorder) OSCDispatch(cmd *osc.Command) { r.log("osc(%d)", cmd.Type) }

func feed(t *testing.T, input string) *recorder {
	t.Helper()
	r := &recorder{}
	s := NewStream(r, nil)
	s.NextSlice([]uint8(input))
	return r
}

func TestStreamPlainText(t *testing.T) {
	r := feed(t, "hi")
	assert.Equal(t, []string{"print(h)", "print(i)"}, r.calls)
}

func TestStreamUTF8(t *testing.T) {
	r := feed(t, "é漢")
	assert.Equal(t, []string{"print(é)", "print(漢)"}, r.calls)
}

func TestStreamInvalidUTF8(t *testing.T) {
	// A continuation byte with no lead emits a replacement char.
	r := feed(t, "a\x80b")
	assert.Equal(t, []string{"print(a)", "print(�)", "print(b)"}, r.calls)

	// Truncated sequence followed by ASCII: replacement, then the
	// ASCII byte survives.
	r = feed(t, "\xE2\x28")
	assert.Equal(t, []string{"print(�)", "print(()"}, r.calls)
}

func TestStreamSplitUTF8(t *testing.T) {
	r := &recorder{}
	s := NewStream(r, nil)
	s.NextSlice([]uint8{0xE6})
	s.NextSlice([]uint8{0xBC})
	s.NextSlice([]uint8{0xA2})
	assert.Equal(t, []string{"print(漢)"}, r.calls)
}

func TestStreamControls(t *testing.T) {
	r := feed(t, "a\b\t\n\va\r\x07")
	assert.Equal(t, []string{
		"print(a)", "backspace", "tabright(1)", "linefeed", "linefeed",
		"print(a)", "cr", "bell",
	}, r.calls)
}

func TestStreamShiftInOut(t *testing.T) {
	r := feed(t, "\x0e\x0f")
	assert.Equal(t, []string{"invoke(1)", "invoke(0)"}, r.calls)
}

func TestStreamCursorCSI(t *testing.T) {
	r := feed(t, "\x1b[A\x1b[3B\x1b[2C\x1b[D\x1b[5;7H\x1b[H")
	assert.Equal(t, []string{
		"up(1,false)", "down(3,false)", "right(2)", "left(1)",
		"cup(5,7)", "cup(0,0)",
	}, r.calls)
}

func TestStreamEditingCSI(t *testing.T) {
	r := feed(t, "\x1b[2J\x1b[K\x1b[1K\x1b[3L\x1b[M\x1b[4P\x1b[6X\x1b[2@\x1b[3b")
	assert.Equal(t, []string{
		"ed(2)", "el(0)", "el(1)", "il(3)", "dl(1)", "dch(4)",
		"ech(6)", "ich(2)", "rep(3)",
	}, r.calls)
}

func TestStreamScrollRegion(t *testing.T) {
	r := feed(t, "\x1b[2;10r\x1b[r\x1b[2S\x1b[T")
	assert.Equal(t, []string{
		"stbm(2,10)", "stbm(0,0)", "su(2)", "sd(1)",
	}, r.calls)
}

func TestStreamModes(t *testing.T) {
	r := feed(t, "\x1b[4h\x1b[?25l\x1b[?1049h\x1b[?31337h")
	assert.Equal(t, []string{
		"mode(insert,true)",
		"mode(cursor_visible,false)",
		"mode(alt_screen_and_clear,true)",
		"unknownmode(31337,false,true)",
	}, r.calls)
}

func TestStreamModeReports(t *testing.T) {
	r := feed(t, "\x1b[?25$p\x1b[4$p\x1b[6n\x1b[5n\x1b[c")
	assert.Equal(t, []string{
		"rqm(25,false)", "rqm(4,true)", "dsr(6)", "dsr(5)", "da",
	}, r.calls)
}

func TestStreamResets(t *testing.T) {
	// RIS and DECSTR dispatch to different handlers.
	r := feed(t, "\x1b[!p\x1bc")
	assert.Equal(t, []string{"decstr", "ris"}, r.calls)
}

func TestStreamSGRDispatch(t *testing.T) {
	r := feed(t, "\x1b[1;31m\x1b[m")
	require.Len(t, r.calls, 3)
	assert.Equal(t, fmt.Sprintf("sgr(%d)", sgr.AttributeTypeBold), r.calls[0])
	assert.Equal(t, fmt.Sprintf("sgr(%d)", sgr.AttributeType8BitFg), r.calls[1])
	assert.Equal(t, fmt.Sprintf("sgr(%d)", sgr.AttributeTypeUnset), r.calls[2])
}

func TestStreamESC(t *testing.T) {
	r := feed(t, "\x1bD\x1bE\x1bM\x1bH\x1b7\x1b8\x1b#8\x1bc")
	assert.Equal(t, []string{
		"ind", "nel", "ri", "hts", "decsc", "decrc", "decaln", "ris",
	}, r.calls)
}

func TestStreamCharsetDesignation(t *testing.T) {
	r := feed(t, "\x1b(0\x1b)B")
	assert.Equal(t, []string{
		fmt.Sprintf("designate(%d,%d)", charset.G0, charset.DECSpecial),
		fmt.Sprintf("designate(%d,%d)", charset.G1, charset.ASCII),
	}, r.calls)
}

func TestStreamOSC(t *testing.T) {
	r := feed(t, "\x1b]2;my title\x07")
	assert.Equal(t, []string{fmt.Sprintf("osc(%d)", osc.CommandTypeChangeWindowTitle)}, r.calls)
}

func TestStreamTitleStack(t *testing.T) {
	r := feed(t, "\x1b[22;0t\x1b[23;0t")
	assert.Equal(t, []string{"pushtitle", "poptitle"}, r.calls)
}

func TestStreamCursorStyle(t *testing.T) {
	r := feed(t, "\x1b[4 q")
	assert.Equal(t, []string{"decscusr(4)"}, r.calls)
}

func TestStreamSplitSequence(t *testing.T) {
	// A CSI split across feeds still dispatches once.
	r := &recorder{}
	s := NewStream(r, nil)
	s.NextSlice([]uint8("\x1b[5"))
	s.NextSlice([]uint8(";7H"))
	assert.Equal(t, []string{"cup(5,7)"}, r.calls)
}

func TestStreamGarbageRecovers(t *testing.T) {
	r := feed(t, "\x1b[999;999;999;zXok")
	// Whatever the sequence did, the trailing text must print.
	n := len(r.calls)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "print(o)", r.calls[n-2])
	assert.Equal(t, "print(k)", r.calls[n-1])
}

func TestStreamByteAtATime(t *testing.T) {
	r := &recorder{}
	s := NewStream(r, nil)
	for _, c := range []uint8("A\x1b[31mB") {
		s.Next(c)
	}
	require.Len(t, r.calls, 3)
	assert.Equal(t, "print(A)", r.calls[0])
	assert.Equal(t, "print(B)", r.calls[2])
}
