package calculator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press feeds buttons to e and returns the outcome of the last one.
func press(t *testing.T, e *Engine, buttons ...Button) Outcome {
	t.Helper()
	var out Outcome
	for _, b := range buttons {
		out = e.HandleButton(b)
	}
	return out
}

// typeNumber presses the keys spelling s, one character each.
func typeNumber(t *testing.T, e *Engine, s string) {
	t.Helper()
	for _, r := range s {
		b := Button(string(r))
		require.Contains(t, []Kind{KindDigit, KindPoint}, b.Kind(), "not a number key: %q", r)
		e.HandleButton(b)
	}
}

func TestNewEngine(t *testing.T) {
	e := New()

	assert.Equal(t, "0", e.Display())
	assert.False(t, e.IsTyping())
	assert.Empty(t, e.History())

	_, ok := e.PendingOperand()
	assert.False(t, ok)
	_, ok = e.PendingOperator()
	assert.False(t, ok)
}

func TestDigitsConcatenate(t *testing.T) {
	for _, typed := range []string{"7", "42", "007", "3.14", "1..2", "0.000"} {
		t.Run(typed, func(t *testing.T) {
			e := New()
			var want strings.Builder
			for _, r := range typed {
				out := e.HandleButton(Button(string(r)))
				want.WriteRune(r)

				assert.Equal(t, Applied, out)
				assert.Equal(t, want.String(), e.Display())
				assert.True(t, e.IsTyping())
			}
		})
	}
}

func TestFirstDigitReplacesDisplay(t *testing.T) {
	e := New()
	press(t, e, "7", "+", "3", "=")
	require.Equal(t, "10.0", e.Display())

	press(t, e, "5")
	assert.Equal(t, "5", e.Display())
	assert.True(t, e.IsTyping())
}

func TestClearResetsEverything(t *testing.T) {
	setups := map[string][]Button{
		"fresh":          nil,
		"typing":         {"1", "2"},
		"pending":        {"1", "2", Plus, "3"},
		"after result":   {"2", Times, "4", Equals},
		"after infinity": {"4", Divided, "0", Equals, "9", Minus},
	}

	for name, buttons := range setups {
		t.Run(name, func(t *testing.T) {
			e := New()
			press(t, e, buttons...)

			assert.Equal(t, Cleared, e.HandleButton(Clear))
			assert.Equal(t, "0", e.Display())
			assert.False(t, e.IsTyping())
			assert.Empty(t, e.History())
			_, ok := e.PendingOperand()
			assert.False(t, ok)
			_, ok = e.PendingOperator()
			assert.False(t, ok)
		})
	}
}

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		a, b    string
		op      Button
		display string
		entry   string
	}{
		{a: "12", b: "5", op: Plus, display: "17.0", entry: "12.0 + 5.0 = 17.0"},
		{a: "12", b: "5", op: Minus, display: "7.0", entry: "12.0 − 5.0 = 7.0"},
		{a: "12", b: "5", op: Times, display: "60.0", entry: "12.0 × 5.0 = 60.0"},
		{a: "12", b: "5", op: Divided, display: "2.4", entry: "12.0 ÷ 5.0 = 2.4"},
		{a: "5", b: "12", op: Minus, display: "-7.0", entry: "5.0 − 12.0 = -7.0"},
		{a: "0.1", b: "0.2", op: Plus, display: "0.30000000000000004", entry: "0.1 + 0.2 = 0.30000000000000004"},
		{a: "1", b: "3", op: Divided, display: "0.3333333333333333", entry: "1.0 ÷ 3.0 = 0.3333333333333333"},
		{a: "2.5", b: "4", op: Times, display: "10.0", entry: "2.5 × 4.0 = 10.0"},
	}

	for _, tc := range tests {
		t.Run(tc.entry, func(t *testing.T) {
			e := New()
			typeNumber(t, e, tc.a)
			press(t, e, tc.op)
			typeNumber(t, e, tc.b)

			assert.Equal(t, Evaluated, e.HandleButton(Equals))
			assert.Equal(t, tc.display, e.Display())
			assert.Equal(t, []string{tc.entry}, e.History())
			assert.False(t, e.IsTyping())

			_, ok := e.PendingOperator()
			assert.False(t, ok)
		})
	}
}

func TestSevenPlusThree(t *testing.T) {
	e := New()
	press(t, e, "7", Plus, "3", Equals)

	assert.Equal(t, "10.0", e.Display())
	assert.Equal(t, []string{"7.0 + 3.0 = 10.0"}, e.History())
}

func TestDivisionByZeroIsInfinity(t *testing.T) {
	for _, a := range []string{"4", "0", "123.5", "0.0"} {
		t.Run(a, func(t *testing.T) {
			e := New()
			typeNumber(t, e, a)
			press(t, e, Divided, "0", Equals)

			assert.Equal(t, Infinity, e.Display())
			assert.True(t, e.Snapshot().Sentinel)
		})
	}

	t.Run("negative dividend", func(t *testing.T) {
		e := New()
		press(t, e, "4", ToggleSign, Divided, "0", Equals)
		assert.Equal(t, Infinity, e.Display())
		assert.Equal(t, []string{"-4.0 ÷ 0.0 = ∞"}, e.History())
	})

	t.Run("negative zero divisor", func(t *testing.T) {
		e := New()
		press(t, e, "4", Divided, "0", ToggleSign, Equals)
		assert.Equal(t, Infinity, e.Display())
		assert.Equal(t, []string{"4.0 ÷ -0.0 = ∞"}, e.History())
	})
}

func TestFourDividedByZeroHistory(t *testing.T) {
	e := New()
	press(t, e, "4", Divided, "0", Equals)

	assert.Equal(t, "∞", e.Display())
	assert.Equal(t, []string{"4.0 ÷ 0.0 = ∞"}, e.History())
}

func TestInfinityBlocksFurtherArithmetic(t *testing.T) {
	e := New()
	press(t, e, "4", Divided, "0", Equals)
	before := e.Snapshot()

	for _, b := range []Button{Plus, ToggleSign, Percent, Equals, Backspace} {
		assert.Equal(t, Ignored, e.HandleButton(b), "button %s", b)
		assert.Equal(t, before, e.Snapshot(), "button %s", b)
	}

	press(t, e, "8")
	assert.Equal(t, "8", e.Display())
}

func TestEqualsWithoutPendingIsNoop(t *testing.T) {
	e := New()
	press(t, e, "7", Plus, "3", Equals)
	before := e.Snapshot()

	assert.Equal(t, Ignored, e.HandleButton(Equals))
	assert.Equal(t, before, e.Snapshot())

	fresh := New()
	press(t, fresh, "9")
	assert.Equal(t, Ignored, fresh.HandleButton(Equals))
	assert.Equal(t, "9", fresh.Display())
	assert.Empty(t, fresh.History())
}

func TestOperatorCapturesDisplay(t *testing.T) {
	e := New()
	press(t, e, "8", Plus)

	v, ok := e.PendingOperand()
	require.True(t, ok)
	assert.Equal(t, 8.0, v)
	op, ok := e.PendingOperator()
	require.True(t, ok)
	assert.Equal(t, Add, op)
	assert.False(t, e.IsTyping())
	assert.Equal(t, "8", e.Display())
}

func TestSecondOperatorOverwritesPending(t *testing.T) {
	e := New()
	press(t, e, "8", Plus, "2", Times)

	v, _ := e.PendingOperand()
	op, _ := e.PendingOperator()
	assert.Equal(t, 2.0, v)
	assert.Equal(t, Multiply, op)

	press(t, e, "5", Equals)
	assert.Equal(t, "10.0", e.Display())
	assert.Equal(t, []string{"2.0 × 5.0 = 10.0"}, e.History())
}

func TestOperatorRepeatedWithoutTyping(t *testing.T) {
	e := New()
	press(t, e, "6", Plus, Minus)

	v, _ := e.PendingOperand()
	op, _ := e.PendingOperator()
	assert.Equal(t, 6.0, v)
	assert.Equal(t, Subtract, op)

	// The displayed 6 becomes the second operand too.
	press(t, e, Equals)
	assert.Equal(t, "0.0", e.Display())
}

func TestOperatorOnUnparseableDisplayIsNoop(t *testing.T) {
	e := New()
	press(t, e, "1", Point, Point, "2")
	before := e.Snapshot()

	assert.Equal(t, Ignored, e.HandleButton(Plus))
	assert.Equal(t, before, e.Snapshot())
	assert.True(t, e.IsTyping())
}

func TestEqualsOnUnparseableSecondOperand(t *testing.T) {
	e := New()
	press(t, e, "3", Plus, Point)
	before := e.Snapshot()

	assert.Equal(t, Ignored, e.HandleButton(Equals))
	assert.Equal(t, before, e.Snapshot())
}

func TestResultsChainIntoNextOperation(t *testing.T) {
	e := New()
	press(t, e, "7", Plus, "3", Equals, Times, "2", Equals)

	assert.Equal(t, "20.0", e.Display())
	assert.Equal(t, []string{
		"7.0 + 3.0 = 10.0",
		"10.0 × 2.0 = 20.0",
	}, e.History())
}

func TestBackspace(t *testing.T) {
	e := New()
	press(t, e, "1", "2", "3")

	assert.Equal(t, Applied, e.HandleButton(Backspace))
	assert.Equal(t, "12", e.Display())
	assert.Equal(t, Applied, e.HandleButton(Backspace))
	assert.Equal(t, "1", e.Display())
	assert.True(t, e.IsTyping())

	assert.Equal(t, Applied, e.HandleButton(Backspace))
	assert.Equal(t, "0", e.Display())
	assert.False(t, e.IsTyping())

	assert.Equal(t, Ignored, e.HandleButton(Backspace))
	assert.Equal(t, "0", e.Display())
}

func TestBackspaceIgnoresSettledValues(t *testing.T) {
	e := New()
	press(t, e, "7", Plus, "3", Equals)
	assert.Equal(t, Ignored, e.HandleButton(Backspace))
	assert.Equal(t, "10.0", e.Display())

	press(t, e, Clear)
	assert.Equal(t, Ignored, e.HandleButton(Backspace))
	assert.Equal(t, "0", e.Display())

	press(t, e, "4", Minus)
	assert.Equal(t, Ignored, e.HandleButton(Backspace))
	assert.Equal(t, "4", e.Display())
}

func TestBackspaceAfterSignToggleWhileTyping(t *testing.T) {
	e := New()
	press(t, e, "9", ToggleSign)
	require.Equal(t, "-9.0", e.Display())
	require.True(t, e.IsTyping())

	want := []string{"-9.", "-9", "-", "0"}
	for _, w := range want {
		e.HandleButton(Backspace)
		assert.Equal(t, w, e.Display())
	}
	assert.False(t, e.IsTyping())
}

func TestToggleSign(t *testing.T) {
	e := New()
	press(t, e, "9")

	assert.Equal(t, Applied, e.HandleButton(ToggleSign))
	assert.Equal(t, "-9.0", e.Display())
	assert.Equal(t, Applied, e.HandleButton(ToggleSign))
	assert.Equal(t, "9.0", e.Display())
}

func TestToggleSignOfZero(t *testing.T) {
	e := New()
	press(t, e, ToggleSign)
	assert.Equal(t, "-0.0", e.Display())
	press(t, e, ToggleSign)
	assert.Equal(t, "0.0", e.Display())
}

func TestPercent(t *testing.T) {
	e := New()
	press(t, e, "5")

	assert.Equal(t, Applied, e.HandleButton(Percent))
	assert.Equal(t, "0.05", e.Display())

	press(t, e, Clear, "2", "5", "0", Percent)
	assert.Equal(t, "2.5", e.Display())
}

func TestSignAndPercentKeepTypingFlag(t *testing.T) {
	e := New()
	press(t, e, "5", Percent)
	assert.True(t, e.IsTyping())

	press(t, e, "1")
	assert.Equal(t, "0.051", e.Display())
}

func TestUnknownButtonIsIgnored(t *testing.T) {
	e := New()
	press(t, e, "4")
	before := e.Snapshot()

	assert.Equal(t, Ignored, e.HandleButton("√"))
	assert.Equal(t, before, e.Snapshot())
}

func TestSnapshot(t *testing.T) {
	e := New()
	press(t, e, "7", Plus, "3", Equals, "2", Times)

	s := e.Snapshot()
	assert.Equal(t, "2", s.Display)
	require.NotNil(t, s.PendingOperand)
	assert.Equal(t, 2.0, *s.PendingOperand)
	assert.Equal(t, Multiply, s.PendingOperator)
	assert.False(t, s.Typing)
	assert.False(t, s.Sentinel)
	assert.Equal(t, []string{"7.0 + 3.0 = 10.0"}, s.History)

	s.History[0] = "changed"
	assert.Equal(t, "7.0 + 3.0 = 10.0", e.History()[0])
}

func TestOperatorApply(t *testing.T) {
	got, ok := Divide.Apply(0, 0)
	require.True(t, ok)
	assert.Equal(t, Infinity, FormatNumber(got))

	_, ok = Operator("^").Apply(2, 3)
	assert.False(t, ok)
}
