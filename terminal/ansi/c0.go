package ansi

// we ignore SOH/STX: https://github.com/microsoft/terminal/issues/10786
// and XTERM control sequence doesn't support them too:
// https://www.x.org/docs/xterm/ctlseqs.pdf
type c0 struct {
	NUL uint8 // NUL is the null character (Caret: ^@, Char: \0).
	ENQ uint8 // ENQ is the enquiry character (Caret: ^E).
	BEL uint8 // BEL is the bell character (Caret: ^G, Char: \a).
	BS  uint8 // BS is the backspace character (Caret: ^H, Char: \b).
	HT  uint8 // HT is the horizontal tab character (Caret: ^I, Char: \t).
	LF  uint8 // LF is the line feed character (Caret: ^J, Char: \n).
	VT  uint8 // VT is the vertical tab character (Caret: ^K, Char: \v).
	FF  uint8 // FF is the form feed character (Caret: ^L, Char: \f).
	CR  uint8 // CR is the carriage return character (Caret: ^M, Char: \r).
	SO  uint8 // SO is the shift out character (Caret: ^N).
	SI  uint8 // SI is the shift in character (Caret: ^O).
	CAN uint8 // CAN cancels an in-progress escape sequence (Caret: ^X).
	SUB uint8 // SUB cancels an in-progress escape sequence (Caret: ^Z).
	ESC uint8 // ESC is the Escape character (Caret: ^[).
	DEL uint8 // DEL is ignored inside most sequence states.
}

// C0 (7-bit) control characters from ANSI.
//
// This is not complete, control characters are only added to this
// as the terminal emulator handles them.
//
// See chapter 3 for detailed information about the control characters
// supported by VT100-compatible terminals:
// https://vt100.net/docs/vt100-ug/chapter3.html#S3.2
var C0 = c0{
	NUL: 0x00,
	ENQ: 0x05,
	BEL: 0x07,
	BS:  0x08,
	HT:  0x09,
	LF:  0x0A,
	VT:  0x0B,
	FF:  0x0C,
	CR:  0x0D,
	SO:  0x0E,
	SI:  0x0F,
	CAN: 0x18,
	SUB: 0x1A,
	ESC: 0x1B,
	DEL: 0x7F,
}
