package terminal

import (
	"github.com/gdamore/tcell/v2"

	"neon-calculator/internal/calculator"
)

var runeButtons = map[rune]calculator.Button{
	'.': calculator.Point,
	',': calculator.Point,
	'+': calculator.Plus,
	'-': calculator.Minus,
	'*': calculator.Times,
	'x': calculator.Times,
	'X': calculator.Times,
	'/': calculator.Divided,
	'%': calculator.Percent,
	'=': calculator.Equals,
	'c': calculator.Clear,
	'C': calculator.Clear,
	'n': calculator.ToggleSign,
	'_': calculator.ToggleSign,
}

// KeyButton maps a key press to the calculator button it stands for.
func KeyButton(ev *tcell.EventKey) (calculator.Button, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return calculator.Equals, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return calculator.Backspace, true
	case tcell.KeyDelete:
		return calculator.Clear, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= '0' && r <= '9' {
			return calculator.Digit(int(r - '0')), true
		}
		b, ok := runeButtons[r]
		return b, ok
	}
	return "", false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
