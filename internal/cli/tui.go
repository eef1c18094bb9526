package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/memopad/internal/app"
)

func runTUI(cmd *cobra.Command, g *globals) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := g.openSession(ctx, true, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	model := app.New(ctx, s.ctrl, s.cfg, g.resolvedConfigPath())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	if err := s.ctrl.TakeSaveError(); err != nil {
		s.logger.Error("unsaved changes on exit", "err", err)
		return err
	}
	return nil
}
