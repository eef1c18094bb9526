package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcus/memopad/internal/memo"
)

var updated = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Shopping\nmilk\neggs", "Shopping"},
		{"trimmed", "   padded  \nrest", "padded"},
		{"exactly twenty", "abcdefghijklmnopqrst", "abcdefghijklmnopqrst"},
		{"truncated", "abcdefghijklmnopqrstu", "abcdefghijklmnopqrst..."},
		{"wide chars", strings.Repeat("あ", 25), strings.Repeat("あ", 20) + "..."},
		{"blank", "   \nsecond line", "memo_20240309"},
		{"empty", "", "memo_20240309"},
		{"path separators", "a/b\\c", "a_b_c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(memo.Memo{Text: tt.text, UpdatedAt: updated}, time.UTC)
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFiles_DedupesNames(t *testing.T) {
	memos := []memo.Memo{
		{Text: "todo\n1", UpdatedAt: updated},
		{Text: "todo\n2", UpdatedAt: updated},
		{Text: "other", UpdatedAt: updated},
		{Text: "todo", UpdatedAt: updated},
	}
	got := Files(memos, time.UTC)
	want := []string{"todo.txt", "todo (2).txt", "other.txt", "todo (3).txt"}
	if len(got) != len(want) {
		t.Fatalf("got %d files, want %d", len(got), len(want))
	}
	for i, f := range got {
		if f.Name != want[i] {
			t.Errorf("file %d name = %q, want %q", i, f.Name, want[i])
		}
		if f.Text != memos[i].Text {
			t.Errorf("file %d text = %q, want %q", i, f.Text, memos[i].Text)
		}
	}
}

func TestDirSharer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := DirSharer{Dir: dir}
	files := []File{{Name: "a.txt", Text: "one"}}

	if err := s.Share(context.Background(), files); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if err := s.Share(context.Background(), files); err != nil {
		t.Fatalf("second Share: %v", err)
	}
	for _, name := range []string{"a.txt", "a (2).txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if string(data) != "one" {
			t.Errorf("%s = %q, want one", name, data)
		}
	}
}

func TestSharers_Empty(t *testing.T) {
	sharers := []Sharer{DirSharer{Dir: t.TempDir()}, ClipboardSharer{Write: func(string) error { return nil }}}
	for _, s := range sharers {
		if err := s.Share(context.Background(), nil); !errors.Is(err, ErrNothingToExport) {
			t.Errorf("%T.Share(nil) = %v, want ErrNothingToExport", s, err)
		}
	}
}

func TestClipboardSharer(t *testing.T) {
	var got string
	s := ClipboardSharer{Write: func(v string) error { got = v; return nil }}

	if err := s.Share(context.Background(), []File{{Name: "a.txt", Text: "alpha"}}); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if got != "alpha" {
		t.Errorf("single file clipboard = %q, want alpha", got)
	}

	files := []File{{Name: "a.txt", Text: "alpha"}, {Name: "b.txt", Text: "beta"}}
	if err := s.Share(context.Background(), files); err != nil {
		t.Fatalf("Share: %v", err)
	}
	want := "==> a.txt <==\nalpha\n\n==> b.txt <==\nbeta"
	if got != want {
		t.Errorf("clipboard = %q, want %q", got, want)
	}
}
