package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/terminal/sequences/osc"
)

func TestParserNext(t *testing.T) {
	tcs := []struct {
		name     string
		previous []uint8
		curr     uint8
		expected func(*testing.T, [3]*Action)
	}{
		{
			name:     "esc: ESC ( B -- 0x1B 0x28 0x42",
			previous: []uint8{0x1B, '('},
			curr:     'B',
			expected: func(t *testing.T, actions [3]*Action) {
				assert.Nil(t, actions[0])
				assert.NotNil(t, actions[1].ESCDispatchData)
				assert.Nil(t, actions[2])

				d := actions[1].ESCDispatchData
				assert.EqualValues(t, 'B', d.Final)
				assert.EqualValues(t, 1, len(d.Intermediates))
				assert.EqualValues(t, '(', d.Intermediates[0])
			},
		},
		{
			name:     "csi: CSI ( B",
			previous: []uint8{0x9B, '('},
			curr:     'B',
			expected: func(t *testing.T, actions [3]*Action) {
				assert.Nil(t, actions[0])
				assert.NotNil(t, actions[1].CSIDispatchData)
				assert.Nil(t, actions[2])

				d := actions[1].CSIDispatchData
				assert.EqualValues(t, 'B', d.Final)
				assert.EqualValues(t, 1, len(d.Intermediates))
				assert.EqualValues(t, '(', d.Intermediates[0])
			},
		},
		{
			name:     "csi: params CSI 5 ; 7 H",
			previous: []uint8{0x1B, '[', '5', ';', '7'},
			curr:     'H',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[1])
				d := actions[1].CSIDispatchData
				require.NotNil(t, d)
				assert.EqualValues(t, 'H', d.Final)
				assert.Equal(t, []uint16{5, 7}, d.Params)
			},
		},
		{
			name:     "csi: empty param CSI ; 5 H",
			previous: []uint8{0x1B, '[', ';', '5'},
			curr:     'H',
			expected: func(t *testing.T, actions [3]*Action) {
				d := actions[1].CSIDispatchData
				require.NotNil(t, d)
				assert.Equal(t, []uint16{0, 5}, d.Params)
			},
		},
		{
			name:     "csi: private marker CSI ? 2 5 l",
			previous: []uint8{0x1B, '[', '?', '2', '5'},
			curr:     'l',
			expected: func(t *testing.T, actions [3]*Action) {
				d := actions[1].CSIDispatchData
				require.NotNil(t, d)
				assert.EqualValues(t, 'l', d.Final)
				assert.Equal(t, []uint8{'?'}, d.Intermediates)
				assert.Equal(t, []uint16{25}, d.Params)
			},
		},
		{
			name:     "csi: colon separators allowed for m",
			previous: []uint8{0x1B, '[', '3', '8', ':', '5', ':', '1'},
			curr:     'm',
			expected: func(t *testing.T, actions [3]*Action) {
				d := actions[1].CSIDispatchData
				require.NotNil(t, d)
				assert.Equal(t, []uint16{38, 5, 1}, d.Params)
				assert.True(t, d.ParamsSet.IsSet(0))
				assert.True(t, d.ParamsSet.IsSet(1))
				assert.False(t, d.ParamsSet.IsSet(2))
			},
		},
		{
			name:     "csi: colon separators rejected for H",
			previous: []uint8{0x1B, '[', '5', ':', '7'},
			curr:     'H',
			expected: func(t *testing.T, actions [3]*Action) {
				assert.Nil(t, actions[1])
			},
		},
		{
			name:     "print",
			previous: nil,
			curr:     'A',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[1])
				assert.Equal(t, ActionPrint, actions[1].Type)
				assert.EqualValues(t, 'A', actions[1].PrintData)
			},
		},
		{
			name:     "execute",
			previous: nil,
			curr:     '\n',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[1])
				assert.Equal(t, ActionExecute, actions[1].Type)
				assert.EqualValues(t, '\n', actions[1].ExecuteData)
			},
		},
		{
			name: "dcs: hook",
			// ESC P 1 $ r ...
			previous: []uint8{0x1B, 'P', '1', '$'},
			curr:     'r',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[2])
				assert.Equal(t, ActionDCSHook, actions[2].Type)
				d := actions[2].DCSHookData
				require.NotNil(t, d)
				assert.EqualValues(t, 'r', d.Final)
				assert.Equal(t, []uint16{1}, d.Params)
				assert.Equal(t, []uint8{'$'}, d.Intermediates)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser()
			for _, prev := range tc.previous {
				p.Next(prev)
			}
			actions := p.Next(tc.curr)
			tc.expected(t, actions)
		})
	}
}

func TestParserOSC(t *testing.T) {
	// BEL-terminated.
	p := NewParser()
	for _, c := range []uint8("\x1b]0;title") {
		for _, a := range p.Next(c) {
			assert.Nil(t, a)
		}
	}
	actions := p.Next(0x07)
	require.NotNil(t, actions[0])
	assert.Equal(t, ActionOSCEnd, actions[0].Type)
	assert.Equal(t, "title", actions[0].OSCDispatchData.Title)
	assert.Equal(t, StateGround, p.State)

	// ST-terminated: the OSC ends the moment the ESC of ESC \ arrives.
	p = NewParser()
	for _, c := range []uint8("\x1b]2;hello") {
		p.Next(c)
	}
	actions = p.Next(0x1B)
	require.NotNil(t, actions[0])
	assert.Equal(t, ActionOSCEnd, actions[0].Type)
	cmd := actions[0].OSCDispatchData
	require.NotNil(t, cmd)
	assert.Equal(t, osc.CommandTypeChangeWindowTitle, cmd.Type)
	assert.Equal(t, "hello", cmd.Title)

	// The trailing backslash of ST dispatches as a plain ESC command.
	actions = p.Next('\\')
	require.NotNil(t, actions[1])
	assert.Equal(t, ActionESCDispatch, actions[1].Type)
}

func TestParserInterruptedSequence(t *testing.T) {
	p := NewParser()

	// CAN aborts a CSI in progress and executes.
	p.Next(0x1B)
	p.Next('[')
	p.Next('3')
	actions := p.Next(0x18)
	require.NotNil(t, actions[1])
	assert.Equal(t, ActionExecute, actions[1].Type)
	assert.Equal(t, StateGround, p.State)

	// A fresh sequence afterwards parses cleanly with no stale params.
	p.Next(0x1B)
	p.Next('[')
	actions = p.Next('H')
	d := actions[1].CSIDispatchData
	require.NotNil(t, d)
	assert.Empty(t, d.Params)
}

func TestParserTooManyParams(t *testing.T) {
	p := NewParser()
	p.Next(0x1B)
	p.Next('[')
	for i := 0; i < MaxParams+8; i++ {
		p.Next('1')
		p.Next(';')
	}
	actions := p.Next('H')
	d := actions[1].CSIDispatchData
	require.NotNil(t, d)
	assert.Len(t, d.Params, MaxParams)
}

func TestParserTooManyIntermediates(t *testing.T) {
	p := NewParser()
	p.Next(0x1B)
	for i := 0; i < MaxIntermediates+4; i++ {
		p.Next(' ')
	}
	// Still dispatches with the collected prefix intact.
	actions := p.Next('@')
	d := actions[1].ESCDispatchData
	require.NotNil(t, d)
	assert.Len(t, d.Intermediates, MaxIntermediates)
}
