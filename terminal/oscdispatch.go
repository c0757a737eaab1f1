package terminal

import (
	"encoding/base64"

	"github.com/hnimtadd/termcore/terminal/color"
	"github.com/hnimtadd/termcore/terminal/hyperlink"
	"github.com/hnimtadd/termcore/terminal/sequences/osc"
)

// OSCDispatch implements handler.OSCHandler.
func (t *Terminal) OSCDispatch(cmd *osc.Command) {
	switch cmd.Type {
	case osc.CommandTypeChangeWindowTitle:
		t.title = cmd.Title

	case osc.CommandTypeChangeIconName:
		t.iconName = cmd.Title

	case osc.CommandTypeReportPwd:
		t.pwd = cmd.Pwd

	case osc.CommandTypeSetPaletteColor:
		for _, entry := range cmd.Palette {
			rgb, err := color.ParseSpec(entry.Spec)
			if err != nil {
				t.logger.Warn("terminal: bad palette spec", "error", err)
				continue
			}
			t.palette[entry.Index] = rgb
		}
		t.markAllDirty()

	case osc.CommandTypeResetPaletteColor:
		if len(cmd.ResetIndexes) == 0 {
			t.palette = t.basePalette
		} else {
			for _, idx := range cmd.ResetIndexes {
				t.palette[idx] = t.basePalette[idx]
			}
		}
		t.markAllDirty()

	case osc.CommandTypeSetForegroundColor:
		t.dynamicColor(10, &t.defaultFg, cmd)

	case osc.CommandTypeSetBackgroundColor:
		t.dynamicColor(11, &t.defaultBg, cmd)

	case osc.CommandTypeHyperlink:
		if cmd.URI == "" {
			t.endHyperlink()
		} else {
			t.startHyperlink(cmd.URI, cmd.LinkID)
		}

	case osc.CommandTypeClipboard:
		t.handleClipboard(cmd)

	default:
		t.logger.Debug("terminal: unhandled OSC", "type", cmd.Type)
	}
}

// dynamicColor applies or reports a default color (OSC 10/11).
func (t *Terminal) dynamicColor(kind int, target *color.RGB, cmd *osc.Command) {
	if cmd.Query {
		t.respond("\x1b]%d;rgb:%02x/%02x/%02x\x1b\\", kind, target.R, target.G, target.B)
		return
	}
	rgb, err := color.ParseSpec(cmd.ColorSpec)
	if err != nil {
		t.logger.Warn("terminal: bad color spec", "error", err)
		return
	}
	*target = rgb
	t.markAllDirty()
}

// startHyperlink opens an OSC 8 span. An open span is closed first:
// spans never nest.
func (t *Terminal) startHyperlink(uri, id string) {
	t.endHyperlink()
	if len(uri) > hyperlink.MaxURILen {
		t.logger.Warn("terminal: hyperlink URI too long", "len", len(uri))
		return
	}
	s := t.active
	hid, err := s.Hyperlinks().Add(hyperlink.Hyperlink{URI: uri, ID: id})
	if err != nil {
		t.logger.Warn("terminal: hyperlink set full", "error", err)
		return
	}
	s.Cursor.HyperlinkID = hid
}

func (t *Terminal) endHyperlink() {
	s := t.active
	if s.Cursor.HyperlinkID != 0 {
		s.Hyperlinks().Release(s.Cursor.HyperlinkID)
		s.Cursor.HyperlinkID = 0
	}
}

// handleClipboard delegates OSC 52 to the collaborator. The wire format
// carries base64; the collaborator deals in plain strings.
func (t *Terminal) handleClipboard(cmd *osc.Command) {
	if t.clipboard == nil {
		return
	}
	if cmd.Query {
		data, ok := t.clipboard.Get(cmd.ClipboardSelection)
		if !ok {
			return
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(data))
		t.respond("\x1b]52;%c;%s\x1b\\", cmd.ClipboardSelection, encoded)
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(cmd.ClipboardData)
	if err != nil {
		t.logger.Warn("terminal: bad clipboard payload", "error", err)
		return
	}
	t.clipboard.Set(cmd.ClipboardSelection, string(decoded))
}
