package parser

import (
	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal/sequences/csi"
	"github.com/hnimtadd/termcore/terminal/sequences/dcs"
	"github.com/hnimtadd/termcore/terminal/sequences/esc"
	"github.com/hnimtadd/termcore/terminal/sequences/osc"
	"github.com/hnimtadd/termcore/terminal/utils"
)

const (
	// MaxParams bounds the CSI/DCS parameter list. Excess parameters
	// are dropped, the sequence itself still dispatches.
	MaxParams        = 16
	MaxIntermediates = 4
)

// VT-series parser for escape and control sequences.
//
// This is implemented directly as the state machine described on
// vt100.net: https://vt100.net/emu/dec_ansi_parser
type Parser struct {
	State State

	// intermediate tracking
	intermediates    [MaxIntermediates]uint8
	intermediatesIdx int

	// param tracking
	params      [MaxParams]uint16
	paramsIdx   int
	paramsSet   *utils.StaticBitSet
	paramAcc    uint16
	paramAccIdx int

	oscParser *osc.Parser
	table     parserTable

	logger logger.Logger
}

func NewParser() *Parser {
	return &Parser{
		State:     StateGround,
		table:     newParserTable(),
		paramsSet: utils.NewStaticBitSet(MaxParams),
		oscParser: osc.NewParser(),
		logger:    logger.Nop,
	}
}

// SetLogger replaces the parser's logger.
func (p *Parser) SetLogger(l logger.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Next consumes the next character c and returns the actions to
// execute.
//
// Up to 3 actions may need to be executed. When going from one state to
// another state, the actions take place in this order:
//
// 1. exit action from old state
//
// 2. transition action
//
// 3. entry action to new state
func (p *Parser) Next(c uint8) [3]*Action {
	effect := p.table[c][p.State]

	nextState := effect.state
	action := effect.action

	// after generating the actions, we set our next state
	defer func() {
		p.State = nextState
	}()

	actions := [3]*Action{}

	// Exit action from old state
	if p.State != nextState {
		switch p.State {
		case StateOSCString:
			// osc_end
			if cmd := p.oscParser.End(); cmd != nil {
				actions[0] = &Action{
					Type:            ActionOSCEnd,
					OSCDispatchData: cmd,
				}
			}
		case StateDCSPassthrough:
			// unhook
			actions[0] = &Action{Type: ActionDCSUnHook}
		}
	}

	// transition action
	actions[1] = p.doAction(action, c)

	// Entry action to new state
	if p.State != nextState {
		switch nextState {
		case StateEscape, StateDCSEntry, StateCSIEntry:
			p.Clear()
		case StateOSCString:
			// osc_start
			p.oscParser.Reset()
		case StateDCSPassthrough:
			// hook: the final character of the DCS header arrived.
			if p.paramAccIdx > 0 && p.paramsIdx < MaxParams {
				p.params[p.paramsIdx] = p.paramAcc
				p.paramsIdx += 1
			}
			actions[2] = &Action{
				Type: ActionDCSHook,
				DCSHookData: &dcs.DCS{
					Intermediates: p.intermediates[:p.intermediatesIdx],
					Params:        p.params[:p.paramsIdx],
					Final:         c,
				},
			}
		}
	}

	return actions
}

func (p *Parser) doAction(actionType ActionType, c uint8) (action *Action) {
	switch actionType {
	case ActionIgnore, ActionNone:
		return
	case ActionPrint:
		return &Action{Type: ActionPrint, PrintData: c}
	case ActionExecute:
		return &Action{Type: ActionExecute, ExecuteData: c}
	case ActionCollect:
		p.Collect(c)
		return
	case ActionParam:
		// Separators finalize the current parameter and move on to the
		// next one. A colon marks the parameter as a sub-parameter.
		if c == ';' || c == ':' {
			// ignore too many parameters
			if p.paramsIdx >= MaxParams {
				return
			}

			p.params[p.paramsIdx] = p.paramAcc
			if c == ':' {
				p.paramsSet.Set(p.paramsIdx)
			}
			p.paramsIdx += 1

			p.paramAcc = 0
			p.paramAccIdx = 0
			return
		}

		// A numeric value. Add it to our accumulator.
		if p.paramAccIdx > 0 {
			p.paramAcc *= 10
			p.paramAcc += uint16(c - '0')
		} else {
			p.paramAcc = uint16(c - '0')
		}

		// Increment our accumulator index. If we overflow then we're
		// out of bounds and we exit immediately.
		nextAccIdx, overflow := utils.AddWithOverflow(p.paramAccIdx, 1)
		if overflow {
			return
		}
		p.paramAccIdx = nextAccIdx

		// The client is expected to perform no action.
		return
	case ActionESCDispatch:
		return &Action{
			Type: ActionESCDispatch,
			ESCDispatchData: &esc.Command{
				Intermediates: p.intermediates[:p.intermediatesIdx],
				Final:         c,
			},
		}
	case ActionCSIDispatch:
		// Finalize the in-flight parameter if we have one.
		if p.paramAccIdx > 0 && p.paramsIdx < MaxParams {
			p.params[p.paramsIdx] = p.paramAcc
			p.paramsIdx += 1
		}
		action = &Action{
			Type: ActionCSIDispatch,
			CSIDispatchData: &csi.Command{
				Intermediates: p.intermediates[:p.intermediatesIdx],
				Params:        p.params[:p.paramsIdx],
				ParamsSet:     p.paramsSet,
				Final:         c,
			},
		}

		// We only allow colon separators for the 'm' command.
		if c != 'm' && p.paramsSet.Count() > 0 {
			p.logger.Warn(
				"CSI colon separators only allowed for 'm' command",
				"got", action,
			)
			return nil
		}
		return
	case ActionDCSPut:
		return &Action{
			Type:       ActionDCSPut,
			DCSPutData: c,
		}
	case ActionOSCPut:
		p.oscParser.Next(c)
		return
	default:
		p.logger.Warn("Unknown action", "type", actionType)
		return nil
	}
}

func (p *Parser) Collect(c uint8) {
	if p.intermediatesIdx >= MaxIntermediates {
		p.logger.Warn("Too many intermediates, ignoring", "codepoint", c)
		return
	}
	p.intermediates[p.intermediatesIdx] = c
	p.intermediatesIdx += 1
}

func (p *Parser) Clear() {
	p.paramsIdx = 0
	p.paramAcc = 0
	p.paramAccIdx = 0
	p.paramsSet.Clear()
	p.intermediatesIdx = 0
}
