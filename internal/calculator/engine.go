// Package calculator implements the keypad state machine of a four-function
// calculator: number entry, a single pending binary operation, evaluation on
// "=" and the history of completed calculations.
//
// An Engine is not safe for concurrent use. Callers serving several
// goroutines must serialise access to it.
package calculator

import (
	"math"
	"unicode/utf8"
)

// Operator is a binary operation waiting for its second operand.
type Operator string

const (
	Add      Operator = Operator(Plus)
	Subtract Operator = Operator(Minus)
	Multiply Operator = Operator(Times)
	Divide   Operator = Operator(Divided)
)

var operations = map[Operator]func(a, b float64) float64{
	Add: func(a, b float64) float64 {
		return a + b
	},
	Subtract: func(a, b float64) float64 {
		return a - b
	},
	Multiply: func(a, b float64) float64 {
		return a * b
	},
	// Any zero divisor gives +∞, 0÷0 included.
	Divide: func(a, b float64) float64 {
		if b == 0 {
			return math.Inf(1)
		}
		return a / b
	},
}

// Apply computes a op b.
func (op Operator) Apply(a, b float64) (float64, bool) {
	fn, ok := operations[op]
	if !ok {
		return 0, false
	}
	return fn(a, b), true
}

// Outcome describes what a single button press did to the engine.
type Outcome string

const (
	// Ignored means the press left every piece of state untouched.
	Ignored   Outcome = "ignored"
	Applied   Outcome = "applied"
	Evaluated Outcome = "evaluated"
	Cleared   Outcome = "cleared"
)

const initialDisplay = "0"

// Engine holds the state of one calculator session.
type Engine struct {
	display  string
	operand  float64
	operator Operator // empty when nothing is pending
	typing   bool
	history  History
}

func New() *Engine {
	return &Engine{display: initialDisplay}
}

// HandleButton applies one key press. Presses that cannot act on the current
// display (an operator on "∞", "=" with nothing pending, backspace on a
// result) report Ignored and change nothing.
func (e *Engine) HandleButton(b Button) Outcome {
	switch b.Kind() {
	case KindDigit, KindPoint:
		e.enter(b)
		return Applied
	case KindClear:
		e.clear()
		return Cleared
	case KindBack:
		return e.backspace()
	case KindSign:
		return e.transform(func(v float64) float64 { return -v })
	case KindPercent:
		return e.transform(func(v float64) float64 { return v / 100 })
	case KindOperator:
		return e.setOperator(Operator(b))
	case KindEquals:
		return e.evaluate()
	}
	return Ignored
}

func (e *Engine) enter(b Button) {
	if e.typing {
		e.display += string(b)
		return
	}
	e.display = string(b)
	e.typing = true
}

func (e *Engine) clear() {
	e.display = initialDisplay
	e.operand = 0
	e.operator = ""
	e.typing = false
	e.history.Clear()
}

func (e *Engine) backspace() Outcome {
	if !e.typing || e.display == "" {
		return Ignored
	}
	_, size := utf8.DecodeLastRuneInString(e.display)
	e.display = e.display[:len(e.display)-size]
	if e.display == "" {
		e.display = initialDisplay
		e.typing = false
	}
	return Applied
}

func (e *Engine) transform(fn func(float64) float64) Outcome {
	v, ok := ParseNumber(e.display)
	if !ok {
		return Ignored
	}
	e.display = FormatNumber(fn(v))
	return Applied
}

func (e *Engine) setOperator(op Operator) Outcome {
	v, ok := ParseNumber(e.display)
	if !ok {
		return Ignored
	}
	e.operand = v
	e.operator = op
	e.typing = false
	return Applied
}

func (e *Engine) evaluate() Outcome {
	if e.operator == "" {
		return Ignored
	}
	second, ok := ParseNumber(e.display)
	if !ok {
		return Ignored
	}
	result, ok := e.operator.Apply(e.operand, second)
	if !ok {
		return Ignored
	}

	e.display = FormatNumber(result)
	e.history.Append(FormatEntry(e.operand, e.operator, second, e.display))
	e.operand = 0
	e.operator = ""
	e.typing = false
	return Evaluated
}

// FormatEntry builds the history line for a completed calculation.
func FormatEntry(a float64, op Operator, b float64, display string) string {
	return FormatNumber(a) + " " + string(op) + " " + FormatNumber(b) + " = " + display
}

func (e *Engine) Display() string {
	return e.display
}

// PendingOperand returns the captured left-hand operand, if any.
func (e *Engine) PendingOperand() (float64, bool) {
	if e.operator == "" {
		return 0, false
	}
	return e.operand, true
}

func (e *Engine) PendingOperator() (Operator, bool) {
	return e.operator, e.operator != ""
}

func (e *Engine) IsTyping() bool {
	return e.typing
}

// History returns the completed calculations, oldest first.
func (e *Engine) History() []string {
	return e.history.All()
}

// LastEntry returns the most recent history line.
func (e *Engine) LastEntry() (string, bool) {
	return e.history.Last()
}

// State is a point-in-time copy of an Engine.
type State struct {
	Display         string
	PendingOperand  *float64
	PendingOperator Operator
	Typing          bool
	Sentinel        bool
	History         []string
}

func (e *Engine) Snapshot() State {
	s := State{
		Display:         e.display,
		PendingOperator: e.operator,
		Typing:          e.typing,
		Sentinel:        IsSentinel(e.display),
		History:         e.history.All(),
	}
	if v, ok := e.PendingOperand(); ok {
		s.PendingOperand = &v
	}
	return s
}
