// Command neoncalc runs the calculator in the terminal.
//
// Keys: digits and . enter numbers, + - * / apply an operator, = or Enter
// evaluates, % takes a percentage, n flips the sign, Backspace deletes,
// c clears everything, ? explains ∞ and q quits.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"neon-calculator/internal/calculator"
	"neon-calculator/internal/config"
	"neon-calculator/internal/observability"
	"neon-calculator/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "neoncalc:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs only go somewhere when they are
	// pointed at a file.
	if cfg.Log.Output != "stderr" && cfg.Log.Output != "stdout" {
		if err := observability.InitLogger(cfg.Log); err != nil {
			return err
		}
		defer observability.SyncLogger()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	observability.Logger.Info("terminal calculator started")
	err = terminal.New(screen, calculator.New(), observability.Logger).Run()
	observability.Logger.Info("terminal calculator stopped", zap.Error(err))
	return err
}
