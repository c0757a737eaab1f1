package tabstops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultInterval(t *testing.T) {
	ts := NewTabstops(80, TABSTOP_INTERVAL)

	assert.False(t, ts.Get(0))
	assert.True(t, ts.Get(8))
	assert.True(t, ts.Get(16))
	assert.True(t, ts.Get(72))
	assert.False(t, ts.Get(9))
	assert.False(t, ts.Get(79))
}

func TestSetUnset(t *testing.T) {
	ts := NewTabstops(80, 0)

	assert.False(t, ts.Get(20))
	ts.Set(20)
	assert.True(t, ts.Get(20))
	ts.Unset(20)
	assert.False(t, ts.Get(20))
}

func TestWideTerminal(t *testing.T) {
	ts := NewTabstops(1000, TABSTOP_INTERVAL)

	assert.True(t, ts.Get(512))
	assert.True(t, ts.Get(992))
	assert.False(t, ts.Get(993))
	assert.GreaterOrEqual(t, ts.Capacity(), 1000)
}

func TestResizeKeepsStops(t *testing.T) {
	ts := NewTabstops(600, 0)
	ts.Set(590)
	ts.Resize(1200)
	assert.True(t, ts.Get(590))
	assert.False(t, ts.Get(1100))
}

func TestReset(t *testing.T) {
	ts := NewTabstops(80, TABSTOP_INTERVAL)
	ts.Set(3)
	ts.Reset(0)
	assert.False(t, ts.Get(3))
	assert.False(t, ts.Get(8))
}
