package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/memopad/internal/app"
)

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func newRmCmd(g *globals) *cobra.Command {
	var (
		yes     bool
		folders bool
	)
	cmd := &cobra.Command{
		Use:   "rm <id|folder>...",
		Short: "Delete memos, or folders with --folders",
		Long: `Delete memos by id (or unique id prefix).

With --folders the arguments name folders instead. Deleting a folder keeps its
memos and leaves them unfiled.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openSession(cmd.Context(), false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			var sel app.Selection
			st := s.ctrl.Store()
			for _, ref := range args {
				if folders {
					f, err := findFolder(st, ref)
					if err != nil {
						return err
					}
					if !sel.HasFolder(f.ID) {
						sel.ToggleFolder(f.ID)
					}
					continue
				}
				m, err := findMemo(st, ref)
				if err != nil {
					return err
				}
				if !sel.HasMemo(m.ID) {
					sel.ToggleMemo(m.ID)
				}
			}

			var confirm app.Confirmer = promptConfirmer{
				in:  bufio.NewReader(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			if yes {
				confirm = app.Approved
			}
			n, err := s.ctrl.Delete(sel, confirm)
			if err != nil {
				return err
			}
			if err := s.ctrl.TakeSaveError(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&folders, "folders", false, "arguments are folder names or ids")
	return cmd
}
