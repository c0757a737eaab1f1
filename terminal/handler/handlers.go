package handler

import (
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/sequences/csi"
	"github.com/hnimtadd/termcore/terminal/sequences/osc"
	"github.com/hnimtadd/termcore/terminal/sgr"
)

type (
	PrintHandler interface {
		Print(cp uint32)
	}

	FormatEffectorHandler interface {
		// NextLine moves the cursor to the first position of the next
		// line. If the cursor is at the bottom of the scroll region, a
		// scroll up is performed.
		NextLine()
		// Index moves the cursor downward one line without changing
		// the column position. If the active position is at the bottom
		// of the scroll region, a scroll up is performed.
		Index()
		// ReverseIndex moves the cursor upward one line without
		// changing the column position. If the active position is at
		// the top of the scroll region, a scroll down is performed.
		ReverseIndex()
		// TabSet sets one horizontal stop at the active position.
		TabSet()
		// TabClear clears stops: the one at the active position for
		// mode 0, all of them for mode 3.
		TabClear(mode uint16)
		// FullReset resets all attributes to their defaults.
		FullReset()
		// SoftReset resets modes, margins, rendition and the saved
		// cursor while keeping the display content, for DECSTR.
		SoftReset()
		// SaveCursor stores the cursor position, style, charset state
		// and pending wrap.
		SaveCursor()
		// RestoreCursor restores the state stored by SaveCursor.
		RestoreCursor()
		// ScreenAlignmentTest fills the screen with 'E' and resets the
		// margins, for DECALN.
		ScreenAlignmentTest()
	}

	SGRHandler interface {
		SetGraphicsRendition(attr *sgr.Attribute)
	}

	VT100Handler interface {
		// SetMode sets the mode to the given value.
		SetMode(mode core.Mode, value bool)
		// SetUnknownMode records a mode number this implementation
		// does not recognize.
		SetUnknownMode(value int, ansi bool, setTo bool)
		// RequestMode reports a mode value back to the host (DECRPM).
		RequestMode(value int, ansi bool)
		// SetTopAndBottomMargin sets the scroll region. Zero values
		// mean the respective screen edge.
		SetTopAndBottomMargin(top, bottom uint16)
		// DeviceAttributes answers a primary DA request.
		DeviceAttributes()
		// DeviceStatusReport answers DSR 5 (status) and DSR 6 (cursor
		// position).
		DeviceStatusReport(req uint16)
		// SetCursorStyle applies DECSCUSR.
		SetCursorStyle(style uint16)
		// PushTitle and PopTitle implement the XTWINOPS title stack.
		PushTitle()
		PopTitle()
	}

	// EditorHandler includes all cursor movement and content related
	// methods.
	EditorHandler interface {
		// DeleteChars deletes repeated chars starting at the current
		// cursor position rightward.
		DeleteChars(repeated uint16)
		// DeleteLines deletes repeated lines starting at the current
		// cursor position downward.
		DeleteLines(repeated uint16)
		// InsertLines inserts repeated lines starting at the current
		// cursor position downward.
		InsertLines(repeated uint16)
		// InsertBlanks inserts repeated blanks at the current cursor
		// position rightward.
		InsertBlanks(repeated uint16)
		// EraseChars erases repeated chars rightward without shifting
		// the rest of the line.
		EraseChars(repeated uint16)
		// RepeatLastChar prints the last printed character repeated
		// times.
		RepeatLastChar(repeated uint16)
		// EraseInLine erases chars in the line depending on mode.
		EraseInLine(mode csi.ELMode)
		// EraseInDisplay erases chars in the display depending on
		// mode.
		EraseInDisplay(mode csi.EDMode)
		// ScrollUp scrolls the scroll region up without moving the
		// cursor.
		ScrollUp(repeated uint16)
		// ScrollDown scrolls the scroll region down without moving the
		// cursor.
		ScrollDown(repeated uint16)
		// LineFeed moves the cursor to the next line.
		LineFeed()
		// Backspace moves the cursor left one position unless it is at
		// the left margin.
		Backspace()
		// SetCursorRow moves the cursor to a 1-based row.
		SetCursorRow(row uint16)
		// SetCursorCol moves the cursor to a 1-based column.
		SetCursorCol(col uint16)
		// SetCursorPosition moves the cursor to 1-based row and col. 0
		// means 1.
		SetCursorPosition(row, col uint16)
		// SetCursorUp moves the cursor up by offset, carriage controls
		// whether the column resets to 0.
		SetCursorUp(offset uint16, carriage bool)
		// SetCursorDown moves the cursor down by offset, carriage
		// controls whether the column resets to 0.
		SetCursorDown(offset uint16, carriage bool)
		// SetCursorLeft moves the cursor left by offset, stopping at
		// the left margin.
		SetCursorLeft(offset uint16)
		// SetCursorRight moves the cursor right by offset, stopping at
		// the right margin.
		SetCursorRight(offset uint16)
		// SetCursorTabRight moves the cursor to the repeated next tab
		// stop, or the right margin.
		SetCursorTabRight(repeated uint16)
		// SetCursorTabLeft moves the cursor to the repeated previous
		// tab stop, or the left margin.
		SetCursorTabLeft(repeated uint16)
		// CarriageReturn moves the cursor to the left margin.
		CarriageReturn()
	}

	// CharsetHandler receives charset designation and invocation.
	CharsetHandler interface {
		// DesignateCharset assigns a charset to a slot (ESC ( ) * +).
		DesignateCharset(slot charset.Slot, cs charset.Charset)
		// InvokeCharset activates a slot (SI, SO).
		InvokeCharset(slot charset.Slot)
	}

	// OSCHandler receives operating system commands.
	OSCHandler interface {
		OSCDispatch(cmd *osc.Command)
	}

	// BellHandler receives BEL.
	BellHandler interface {
		Bell()
	}
)
