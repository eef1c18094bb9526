package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/memopad/internal/app"
)

func newExportCmd(g *globals) *cobra.Command {
	var (
		folders   []string
		all       bool
		dir       string
		clipboard bool
	)
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export memos as text files or to the clipboard",
		Long: `Export memos as .txt files named after their first line.

Memos are chosen by id, by --folder (repeatable) or with --all. Files go to
export.dir from the config unless --dir or --clipboard is given. Existing files
are never overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 && len(folders) == 0 {
				return errors.New("nothing to export: pass memo ids, --folder or --all")
			}

			s, err := g.openSession(cmd.Context(), false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			st := s.ctrl.Store()
			var sel app.Selection
			addMemo := func(id string) {
				if !sel.HasMemo(id) {
					sel.ToggleMemo(id)
				}
			}
			if all {
				for _, m := range st.Memos() {
					addMemo(m.ID)
				}
			}
			for _, ref := range folders {
				f, err := findFolder(st, ref)
				if err != nil {
					return err
				}
				if !sel.HasFolder(f.ID) {
					sel.ToggleFolder(f.ID)
				}
			}
			for _, ref := range args {
				m, err := findMemo(st, ref)
				if err != nil {
					return err
				}
				addMemo(m.ID)
			}

			s.ctrl.SetSharer(sharerFor(s.cfg, clipboard, dir))
			n, err := s.ctrl.Export(cmd.Context(), sel)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d\n", n)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&folders, "folder", "f", nil, "export every memo in this folder (name or id)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "export every memo")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "write files to this directory")
	cmd.Flags().BoolVarP(&clipboard, "clipboard", "c", false, "copy to the clipboard instead of writing files")
	cmd.MarkFlagsMutuallyExclusive("dir", "clipboard")
	return cmd
}
