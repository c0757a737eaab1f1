package dcs

import "fmt"

// DCS is the header of a device control string: everything between the
// DCS introducer and the first passthrough byte.
type DCS struct {
	Intermediates []uint8
	Params        []uint16
	Final         uint8
}

func (c *DCS) String() string {
	return fmt.Sprintf("DCS %v %v %v", c.Intermediates, c.Params, c.Final)
}

type (
	// HookHandler receives the DCS header when passthrough begins.
	HookHandler interface {
		DCSHook(cmd *DCS)
	}
	// PutHandler receives each passthrough byte.
	PutHandler interface {
		DCSPut(c uint8)
	}
	// UnhookHandler is called when the control string terminates.
	UnhookHandler interface {
		DCSUnhook()
	}
)
