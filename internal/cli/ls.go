package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/marcus/memopad/internal/memo"
	"github.com/marcus/memopad/internal/view"
)

const (
	idWidth    = 8
	titleWidth = 32
)

func newLsCmd(g *globals) *cobra.Command {
	var (
		folder  string
		search  string
		folders bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List memos or folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openSession(cmd.Context(), false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			st := s.ctrl.Store()
			out := cmd.OutOrStdout()
			if folders {
				printFolders(out, st)
				return nil
			}

			list := st.SortMemos(st.Memos())
			switch {
			case search != "":
				list = view.Search(st.Memos(), search)
			case folder != "":
				f, err := findFolder(st, folder)
				if err != nil {
					return err
				}
				list = st.SortMemos(st.FolderMemos(f.ID))
			}
			printMemos(out, st, list)
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "only memos in this folder (name or id)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only memos containing this text, newest first")
	cmd.Flags().BoolVar(&folders, "folders", false, "list folders instead of memos")
	return cmd
}

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func listTitle(text string) string {
	line := strings.TrimSpace(memo.FirstLine(text))
	if line == "" {
		return "(empty)"
	}
	return runewidth.Truncate(line, titleWidth, "...")
}

func printMemos(w io.Writer, st *memo.Store, list []memo.Memo) {
	for _, m := range list {
		line := fmt.Sprintf("%s  %s  %6s  %s  %s",
			runewidth.FillRight(shortID(m.ID), idWidth),
			runewidth.FillRight(listTitle(m.Text), titleWidth),
			humanize.Comma(int64(memo.CharCount(m.Text))),
			runewidth.FillRight(humanize.Time(m.UpdatedAt), 14),
			st.FolderName(st.EffectiveFolder(m)))
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func printFolders(w io.Writer, st *memo.Store) {
	for _, f := range st.SortFolders(st.Folders()) {
		members := st.FolderMemos(f.ID)
		fmt.Fprintf(w, "%s  %s  %s  %s chars\n",
			runewidth.FillRight(shortID(f.ID), idWidth),
			runewidth.FillRight(f.Name, titleWidth),
			f.Color,
			humanize.Comma(int64(memo.TotalChars(members))))
	}
}
