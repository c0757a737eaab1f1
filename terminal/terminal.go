// Package terminal aggregates the engine state: the active and
// alternate screens, modes, tabstops, charsets and the color palette.
// It implements the handler interfaces the stream dispatches to, so a
// Terminal fed through a stream.Stream interprets a full byte stream.
package terminal

import (
	"fmt"
	"io"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/color"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/screen"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/tabstops"
)

// Clipboard is the collaborator OSC 52 writes to and reads from. The
// selection byte is the kind char from the sequence ('c', 'p', 's',
// '0'-'7').
type Clipboard interface {
	Set(selection byte, data string)
	Get(selection byte) (data string, ok bool)
}

type Options struct {
	Cols size.CellCountInt
	Rows size.CellCountInt

	// ScrollbackCap is the maximum number of scrollback rows kept for
	// the primary screen. Zero disables scrollback.
	ScrollbackCap int

	// Responder receives reply sequences (CPR, DA, DECRPM, color
	// queries). Nil discards them.
	Responder io.Writer

	// Clipboard handles OSC 52. Nil ignores clipboard sequences.
	Clipboard Clipboard

	// Palette overrides applied on top of the default 256-color table.
	Palette map[uint8]color.RGB

	// Default foreground and background, overridable at runtime via
	// OSC 10/11. Nil keeps the built-in defaults.
	Foreground *color.RGB
	Background *color.RGB

	// DefaultCharset is designated to every slot at power-on and after
	// a full reset. The zero value is ASCII.
	DefaultCharset charset.Charset

	// OnBell is called for each BEL. Nil ignores the bell.
	OnBell func()

	Logger logger.Logger
}

const (
	defaultTabInterval = 8
	maxTitleStack      = 10
)

// Terminal interprets dispatched actions against its screens. It is
// not safe for concurrent use; the embedding engine serializes access.
type Terminal struct {
	cols size.CellCountInt
	rows size.CellCountInt

	// The primary and alternate screens own their rows and their style
	// and hyperlink sets independently; swapping is a pointer change.
	primary *screen.Screen
	alt     *screen.Screen
	active  *screen.Screen

	modes         *core.ModeState
	tabstops      *tabstops.Tabstops
	charsets      *charset.State
	baseCharset   charset.Charset
	scrollbackCap int

	palette   color.Palette
	defaultFg color.RGB
	defaultBg color.RGB

	// Power-on values FullReset returns to, with the Options overrides
	// applied.
	basePalette color.Palette
	baseFg      color.RGB
	baseBg      color.RGB

	title      string
	iconName   string
	titleStack []string
	pwd        string

	// Last printed codepoint after charset mapping, for REP. Zero when
	// nothing printable was seen since the last control.
	prevPrint rune

	responder io.Writer
	clipboard Clipboard
	onBell    func()
	logger    logger.Logger
}

func New(opts Options) *Terminal {
	cols, rows := opts.Cols, opts.Rows
	if cols == 0 {
		cols = 80
	}
	if rows == 0 {
		rows = 24
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop
	}

	t := &Terminal{
		cols:          cols,
		rows:          rows,
		primary:       screen.NewScreen(cols, rows, opts.ScrollbackCap),
		alt:           screen.NewScreen(cols, rows, 0),
		modes:         core.NewModeState(nil, nil),
		scrollbackCap: opts.ScrollbackCap,
		tabstops:      tabstops.NewTabstops(cols, defaultTabInterval),
		charsets:      charset.NewState(opts.DefaultCharset),
		baseCharset:   opts.DefaultCharset,
		palette:       color.DefaultPalette(),
		defaultFg:     color.RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		defaultBg:     color.RGB{},
		responder:     opts.Responder,
		clipboard:     opts.Clipboard,
		onBell:        opts.OnBell,
		logger:        log,
	}
	t.active = t.primary

	for idx, rgb := range opts.Palette {
		t.palette[idx] = rgb
	}
	if opts.Foreground != nil {
		t.defaultFg = *opts.Foreground
	}
	if opts.Background != nil {
		t.defaultBg = *opts.Background
	}
	t.basePalette = t.palette
	t.baseFg = t.defaultFg
	t.baseBg = t.defaultBg
	return t
}

func (t *Terminal) Cols() size.CellCountInt { return t.cols }
func (t *Terminal) Rows() size.CellCountInt { return t.rows }

// Screen returns the screen currently written to (primary or alternate).
func (t *Terminal) Screen() *screen.Screen { return t.active }

// Primary returns the primary screen regardless of which is active.
func (t *Terminal) Primary() *screen.Screen { return t.primary }

// IsAlt reports whether the alternate screen is active.
func (t *Terminal) IsAlt() bool { return t.active == t.alt }

func (t *Terminal) Title() string    { return t.title }
func (t *Terminal) IconName() string { return t.iconName }
func (t *Terminal) Pwd() string      { return t.pwd }

// Mode returns the value of a known mode.
func (t *Terminal) Mode(m core.Mode) bool { return t.modes.Get(m) }

// Palette returns the live 256-color palette.
func (t *Terminal) Palette() *color.Palette { return &t.palette }

// ResolveFg resolves a cell foreground to concrete RGB under the
// current palette and default foreground.
func (t *Terminal) ResolveFg(c color.Color) color.RGB {
	return c.Resolve(&t.palette, t.defaultFg)
}

// ResolveBg resolves a cell background to concrete RGB under the
// current palette and default background.
func (t *Terminal) ResolveBg(c color.Color) color.RGB {
	return c.Resolve(&t.palette, t.defaultBg)
}

// Resize applies new dimensions to both screens and the tabstops.
func (t *Terminal) Resize(cols, rows size.CellCountInt) error {
	if cols == 0 || rows == 0 {
		return screen.ErrInvalidSize
	}
	if cols == t.cols && rows == t.rows {
		return nil
	}
	if err := t.primary.Resize(cols, rows); err != nil {
		return err
	}
	if err := t.alt.Resize(cols, rows); err != nil {
		return err
	}
	t.cols, t.rows = cols, rows
	t.tabstops.Resize(cols)
	return nil
}

// Bell implements handler.BellHandler.
func (t *Terminal) Bell() {
	if t.onBell != nil {
		t.onBell()
	}
}

// respond writes a reply sequence to the responder, when one is set.
func (t *Terminal) respond(format string, args ...any) {
	if t.responder == nil {
		return
	}
	if _, err := fmt.Fprintf(t.responder, format, args...); err != nil {
		t.logger.Warn("terminal: responder write failed", "error", err)
	}
}
