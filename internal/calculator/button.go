package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownButton is returned by ParseButton for text that names no key.
var ErrUnknownButton = errors.New("unknown button")

// Button is a single key press on the calculator keypad.
type Button string

const (
	Point      Button = "."
	Clear      Button = "C"
	Backspace  Button = "←"
	ToggleSign Button = "±"
	Percent    Button = "%"
	Plus       Button = "+"
	Minus      Button = "−"
	Times      Button = "×"
	Divided    Button = "÷"
	Equals     Button = "="
)

// Kind groups buttons by the way the engine treats them.
type Kind string

const (
	KindDigit    Kind = "digit"
	KindPoint    Kind = "point"
	KindClear    Kind = "clear"
	KindBack     Kind = "backspace"
	KindSign     Kind = "sign"
	KindPercent  Kind = "percent"
	KindOperator Kind = "operator"
	KindEquals   Kind = "equals"
	KindUnknown  Kind = "unknown"
)

// Digit returns the button for the decimal digit d (0-9).
func Digit(d int) Button {
	if d < 0 || d > 9 {
		panic(fmt.Sprintf("calculator: digit %d out of range", d))
	}
	return Button(rune('0' + d))
}

// Keypad is the button layout of the calculator, row by row.
var Keypad = [][]Button{
	{Clear, ToggleSign, Percent, Divided},
	{"7", "8", "9", Times},
	{"4", "5", "6", Minus},
	{"1", "2", "3", Plus},
	{"0", Point, Equals, Backspace},
}

var aliases = map[string]Button{
	"-":    Minus,
	"*":    Times,
	"x":    Times,
	"/":    Divided,
	"c":    Clear,
	"<-":   Backspace,
	"back": Backspace,
	"+/-":  ToggleSign,
	"neg":  ToggleSign,
}

// ParseButton maps key text to a Button. Besides the keypad symbols it
// accepts the ASCII spellings clients tend to send ("-", "*", "/", "+/-").
func ParseButton(s string) (Button, error) {
	b := Button(s)
	if b.Kind() != KindUnknown {
		return b, nil
	}
	if alias, ok := aliases[s]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownButton, s)
}

func (b Button) Kind() Kind {
	switch b {
	case Point:
		return KindPoint
	case Clear:
		return KindClear
	case Backspace:
		return KindBack
	case ToggleSign:
		return KindSign
	case Percent:
		return KindPercent
	case Plus, Minus, Times, Divided:
		return KindOperator
	case Equals:
		return KindEquals
	}
	if len(b) == 1 && b[0] >= '0' && b[0] <= '9' {
		return KindDigit
	}
	return KindUnknown
}

func (b Button) String() string {
	return string(b)
}
