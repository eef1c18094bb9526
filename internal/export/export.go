// Package export turns memos into named text files and hands them to a
// sharer.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rivo/uniseg"

	"github.com/marcus/memopad/internal/memo"
)

const maxTitleChars = 20

// ErrNothingToExport is returned when the export set is empty.
var ErrNothingToExport = errors.New("nothing selected to export")

// File is one exported memo.
type File struct {
	Name string
	Text string
}

// Sharer delivers exported files somewhere outside the app.
type Sharer interface {
	Share(ctx context.Context, files []File) error
}

// Files builds one .txt file per memo. Names come from the first line,
// shortened to 20 characters plus "...", or memo_YYYYMMDD of the last
// update in loc when the first line is blank. Names repeated within the
// batch get " (2)", " (3)" suffixes.
func Files(memos []memo.Memo, loc *time.Location) []File {
	if loc == nil {
		loc = time.Local
	}
	seen := make(map[string]int, len(memos))
	out := make([]File, 0, len(memos))
	for _, m := range memos {
		base := Title(m, loc)
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s (%d)", base, n)
		}
		out = append(out, File{Name: base + ".txt", Text: m.Text})
	}
	return out
}

// Title returns the file name stem for m.
func Title(m memo.Memo, loc *time.Location) string {
	title := strings.TrimSpace(memo.FirstLine(m.Text))
	title = sanitize(truncate(title, maxTitleChars))
	if title == "" {
		title = "memo_" + m.UpdatedAt.In(loc).Format("20060102")
	}
	return title
}

func truncate(s string, n int) string {
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String() + "..."
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, s)
}

// DirSharer writes files into a directory, never overwriting existing
// files.
type DirSharer struct {
	Dir string
}

func (d DirSharer) Share(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return ErrNothingToExport
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := freePath(d.Dir, f.Name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(f.Text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	path := filepath.Join(dir, name)
	for i := 2; ; i++ {
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
}

// ClipboardSharer copies the files to the system clipboard, one block per
// file headed by its name.
type ClipboardSharer struct {
	// Write replaces the clipboard writer. Nil uses the system clipboard.
	Write func(string) error
}

func (c ClipboardSharer) Share(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return ErrNothingToExport
	}
	write := c.Write
	if write == nil {
		write = clipboard.WriteAll
	}
	if len(files) == 1 {
		return write(files[0].Text)
	}
	var b strings.Builder
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "==> %s <==\n%s", f.Name, f.Text)
	}
	return write(b.String())
}
