// Package terminal renders a calculator Engine in a terminal and feeds it
// keyboard input.
package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"neon-calculator/internal/calculator"
)

const (
	width        = 44
	historyRows  = 5
	keyWidth     = 9
	emptyHistory = "no calculations yet"
	helpLine     = "q quit · ? explain ∞"
)

var explanation = []string{
	"Division by zero has no defined value.",
	"This calculator shows ∞ for every n ÷ 0,",
	"0 ÷ 0 included. Press C to start over.",
}

var (
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleTitle   = styleBase.Foreground(tcell.ColorFuchsia).Bold(true)
	styleDisplay = styleBase.Foreground(tcell.ColorWhite).Background(tcell.ColorIndigo).Bold(true)
	styleHistory = styleBase.Foreground(tcell.ColorLavender)
	styleKey     = styleBase.Foreground(tcell.ColorWhite).Background(tcell.ColorPurple)
	styleMuted   = styleBase.Foreground(tcell.ColorGray)
	stylePopup   = styleBase.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
)

// Surface draws one Engine on a tcell screen. The explanation popup for the
// ∞ sentinel is state of the surface, not of the engine.
type Surface struct {
	screen  tcell.Screen
	engine  *calculator.Engine
	logger  *zap.Logger
	explain bool
}

func New(screen tcell.Screen, engine *calculator.Engine, logger *zap.Logger) *Surface {
	return &Surface{screen: screen, engine: engine, logger: logger}
}

// Run draws the calculator and handles events until the user quits or the
// screen is finalised.
func (s *Surface) Run() error {
	s.Draw()
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.screen.Sync()
			s.Draw()
		case *tcell.EventKey:
			if s.HandleKey(ev) {
				return nil
			}
			s.Draw()
		}
	}
}

// HandleKey applies one key press and reports whether the user asked to quit.
func (s *Surface) HandleKey(ev *tcell.EventKey) bool {
	if isQuit(ev) {
		return true
	}

	if ev.Key() == tcell.KeyRune && ev.Rune() == '?' {
		if calculator.IsSentinel(s.engine.Display()) {
			s.explain = !s.explain
		}
		return false
	}

	b, ok := KeyButton(ev)
	if !ok {
		return false
	}

	out := s.engine.HandleButton(b)
	if !calculator.IsSentinel(s.engine.Display()) {
		s.explain = false
	}

	s.logger.Debug("button pressed",
		zap.String("button", string(b)),
		zap.String("outcome", string(out)),
		zap.String("display", s.engine.Display()),
	)
	if out == calculator.Evaluated {
		entry, _ := s.engine.LastEntry()
		s.logger.Info("calculation completed", zap.String("entry", entry))
	}
	return false
}

// Explaining reports whether the explanation popup is showing.
func (s *Surface) Explaining() bool {
	return s.explain
}

func (s *Surface) Draw() {
	s.screen.Clear()
	s.screen.Fill(' ', styleBase)

	y := 0
	s.text(0, y, "NEON CALCULATOR", styleTitle)
	y += 2

	display := s.engine.Display()
	s.text(0, y, fmt.Sprintf(" %*s ", width-2, display), styleDisplay)
	y += 2

	history := s.engine.History()
	if len(history) == 0 {
		s.text(1, y, emptyHistory, styleMuted)
		y++
	} else {
		if len(history) > historyRows {
			history = history[len(history)-historyRows:]
		}
		for _, entry := range history {
			s.text(1, y, entry, styleHistory)
			y++
		}
	}
	y++

	for _, row := range calculator.Keypad {
		for i, b := range row {
			label := string(b)
			pad := (keyWidth - 1 - utf8.RuneCountInString(label)) / 2
			cell := strings.Repeat(" ", pad) + label
			cell += strings.Repeat(" ", keyWidth-1-utf8.RuneCountInString(cell))
			s.text(i*keyWidth, y, cell, styleKey)
		}
		y++
	}
	y++

	s.text(0, y, helpLine, styleMuted)
	y += 2

	if s.explain {
		for _, line := range explanation {
			s.text(0, y, fmt.Sprintf(" %-*s ", width-2, line), stylePopup)
			y++
		}
	}

	s.screen.Show()
}

func (s *Surface) text(x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
