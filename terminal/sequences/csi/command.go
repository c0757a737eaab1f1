package csi

import (
	"fmt"

	"github.com/hnimtadd/termcore/terminal/utils"
)

type Command struct {
	Intermediates []uint8
	Params        []uint16
	// ParamsSet marks params that were followed by a colon rather than
	// a semicolon, for SGR sub-parameter parsing.
	ParamsSet *utils.StaticBitSet
	Final     uint8
}

func (c Command) String() string {
	return fmt.Sprintf("CSI %v %v %v", c.Intermediates, c.Params, c.Final)
}

// Param returns the parameter at idx, or def when absent or zero.
func (c Command) Param(idx int, def uint16) uint16 {
	if idx >= len(c.Params) || c.Params[idx] == 0 {
		return def
	}
	return c.Params[idx]
}

// ParamOrZero returns the parameter at idx, or 0 when absent. Some
// commands (ED, EL, TBC) treat 0 as meaningful rather than a default.
func (c Command) ParamOrZero(idx int) uint16 {
	if idx >= len(c.Params) {
		return 0
	}
	return c.Params[idx]
}

// Erase in Display mode
type EDMode uint8

const (
	EDModeBelow      EDMode = 0
	EDModeAbove      EDMode = 1
	EDModeComplete   EDMode = 2
	EDModeScrollback EDMode = 3
)

// Erase in Line mode
type ELMode uint8

const (
	ELModeRight ELMode = 0
	ELModeLeft  ELMode = 1
	ELModeAll   ELMode = 2
)
