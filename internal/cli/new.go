package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newNewCmd(g *globals) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "new [text...]",
		Short: "Create a memo from arguments or standard input",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\n")
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("memo text is empty")
			}

			s, err := g.openSession(cmd.Context(), false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			folderID := ""
			if folder != "" {
				f, err := findFolder(s.ctrl.Store(), folder)
				if err != nil {
					return err
				}
				folderID = f.ID
			}

			st := s.ctrl.Store()
			m := st.CreateMemo(folderID)
			if err := st.UpdateMemoText(m.ID, text); err != nil {
				return err
			}
			if err := s.ctrl.TakeSaveError(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "file the memo in this folder (name or id)")
	return cmd
}
