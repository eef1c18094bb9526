package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/memopad/internal/config"
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ConfigChangedMsg carries a reloaded config file.
	ConfigChangedMsg struct {
		Change config.Change
		next   <-chan config.Change
	}

	// ExportDoneMsg reports the result of an export.
	ExportDoneMsg struct {
		Count int
		Err   error
	}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchConfig starts watching path and waits for the first change.
func watchConfig(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		changes, err := config.Watch(ctx, path)
		if err != nil {
			return nil
		}
		return waitConfig(changes)()
	}
}

// waitConfig blocks until the next config change.
func waitConfig(changes <-chan config.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Change: change, next: changes}
	}
}

// exportCmd runs the export off the event loop.
func exportCmd(ctx context.Context, ctrl *Controller, sel Selection) tea.Cmd {
	targets := ctrl.ExportTargets(sel)
	return func() tea.Msg {
		n, err := ctrl.exportMemos(ctx, targets)
		return ExportDoneMsg{Count: n, Err: err}
	}
}
