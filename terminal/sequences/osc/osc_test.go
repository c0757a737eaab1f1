package osc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, payload string) *Command {
	t.Helper()
	p := NewParser()
	p.Reset()
	for i := 0; i < len(payload); i++ {
		p.Next(payload[i])
	}
	return p.End()
}

func TestTitle(t *testing.T) {
	cmd := parse(t, "0;hello world")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeChangeWindowTitle, cmd.Type)
	assert.Equal(t, "hello world", cmd.Title)

	// Title text may itself contain semicolons.
	cmd = parse(t, "2;a;b;c")
	require.NotNil(t, cmd)
	assert.Equal(t, "a;b;c", cmd.Title)

	cmd = parse(t, "1;icon")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeChangeIconName, cmd.Type)
}

func TestPalette(t *testing.T) {
	cmd := parse(t, "4;1;#ff0000;3;rgb:00/ff/00")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeSetPaletteColor, cmd.Type)
	require.Len(t, cmd.Palette, 2)
	assert.Equal(t, uint8(1), cmd.Palette[0].Index)
	assert.Equal(t, "#ff0000", cmd.Palette[0].Spec)
	assert.Equal(t, uint8(3), cmd.Palette[1].Index)

	assert.Nil(t, parse(t, "4;1"))
	assert.Nil(t, parse(t, "4;999;#ff0000"))
}

func TestPaletteReset(t *testing.T) {
	cmd := parse(t, "104")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeResetPaletteColor, cmd.Type)
	assert.Empty(t, cmd.ResetIndexes)

	cmd = parse(t, "104;1;2")
	require.NotNil(t, cmd)
	assert.Equal(t, []uint8{1, 2}, cmd.ResetIndexes)
}

func TestHyperlink(t *testing.T) {
	cmd := parse(t, "8;;https://example.com")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeHyperlink, cmd.Type)
	assert.Equal(t, "https://example.com", cmd.URI)
	assert.Empty(t, cmd.LinkID)

	cmd = parse(t, "8;id=xyz;https://example.com/a;b")
	require.NotNil(t, cmd)
	assert.Equal(t, "xyz", cmd.LinkID)
	assert.Equal(t, "https://example.com/a;b", cmd.URI)

	// Empty URI closes the active link.
	cmd = parse(t, "8;;")
	require.NotNil(t, cmd)
	assert.Empty(t, cmd.URI)
}

func TestPwd(t *testing.T) {
	cmd := parse(t, "7;file://host/home/user")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeReportPwd, cmd.Type)
	assert.Equal(t, "file://host/home/user", cmd.Pwd)
}

func TestDynamicColors(t *testing.T) {
	cmd := parse(t, "10;#ffffff")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeSetForegroundColor, cmd.Type)
	assert.Equal(t, "#ffffff", cmd.ColorSpec)

	cmd = parse(t, "11;?")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeSetBackgroundColor, cmd.Type)
	assert.True(t, cmd.Query)
}

func TestClipboard(t *testing.T) {
	cmd := parse(t, "52;c;aGVsbG8=")
	require.NotNil(t, cmd)
	assert.Equal(t, CommandTypeClipboard, cmd.Type)
	assert.Equal(t, byte('c'), cmd.ClipboardSelection)
	assert.Equal(t, "aGVsbG8=", cmd.ClipboardData)

	cmd = parse(t, "52;p;?")
	require.NotNil(t, cmd)
	assert.True(t, cmd.Query)
	assert.Equal(t, byte('p'), cmd.ClipboardSelection)
}

func TestInvalid(t *testing.T) {
	assert.Nil(t, parse(t, ""))
	assert.Nil(t, parse(t, "nope"))
	assert.Nil(t, parse(t, "9999;whatever"))
}

func TestOverflow(t *testing.T) {
	p := NewParser()
	p.Reset()
	huge := "0;" + strings.Repeat("x", maxLen)
	for i := 0; i < len(huge); i++ {
		p.Next(huge[i])
	}
	assert.Nil(t, p.End())

	// The parser is reusable after an overflow.
	p.Reset()
	for _, c := range []byte("2;ok") {
		p.Next(c)
	}
	cmd := p.End()
	require.NotNil(t, cmd)
	assert.Equal(t, "ok", cmd.Title)
}
