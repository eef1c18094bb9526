package cli

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/memopad/internal/config"
	"github.com/marcus/memopad/internal/memo"
)

// testEnv writes a config that stores data under a temp directory.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := config.Default()
	cfg.Storage.Backend = "file"
	cfg.Storage.Path = filepath.Join(dir, "data")
	cfg.Export.Dir = filepath.Join(dir, "export")
	cfg.Export.Clipboard = false
	path := filepath.Join(dir, "config.toml")
	if err := config.SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	return path
}

func run(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, stdin, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestNewAndLs(t *testing.T) {
	cfg := testEnv(t)

	id := strings.TrimSpace(mustRun(t, cfg, "", "new", "hello", "world"))
	if id == "" {
		t.Fatal("new should print the memo id")
	}
	mustRun(t, cfg, "from stdin\nsecond line\n", "new")

	out := mustRun(t, cfg, "", "ls")
	if !strings.Contains(out, "hello world") || !strings.Contains(out, "from stdin") {
		t.Errorf("ls output missing memos:\n%s", out)
	}
	if strings.Contains(out, "second line") {
		t.Error("ls should only show the first line")
	}

	out = mustRun(t, cfg, "", "ls", "--search", "stdin")
	if strings.Contains(out, "hello world") || !strings.Contains(out, "from stdin") {
		t.Errorf("search output:\n%s", out)
	}
}

func TestNew_Errors(t *testing.T) {
	cfg := testEnv(t)

	if _, err := run(t, cfg, "  \n", "new"); err == nil {
		t.Error("blank memo should be rejected")
	}
	if _, err := run(t, cfg, "", "new", "--folder", "nope", "text"); !errors.Is(err, memo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRm_AsksForConfirmation(t *testing.T) {
	cfg := testEnv(t)
	id := strings.TrimSpace(mustRun(t, cfg, "", "new", "doomed"))

	out := mustRun(t, cfg, "n\n", "rm", id)
	if !strings.Contains(out, "Delete 1 memo? [y/N]") || !strings.Contains(out, "deleted 0") {
		t.Errorf("declined rm output:\n%s", out)
	}
	if !strings.Contains(mustRun(t, cfg, "", "ls"), "doomed") {
		t.Fatal("declined rm deleted the memo")
	}

	out = mustRun(t, cfg, "y\n", "rm", id[:12])
	if !strings.Contains(out, "deleted 1") {
		t.Errorf("confirmed rm output:\n%s", out)
	}
	if strings.Contains(mustRun(t, cfg, "", "ls"), "doomed") {
		t.Error("memo still listed after rm")
	}
}

func TestRm_UnknownMemo(t *testing.T) {
	cfg := testEnv(t)
	if _, err := run(t, cfg, "", "rm", "--yes", "missing"); !errors.Is(err, memo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExport_ToDir(t *testing.T) {
	cfg := testEnv(t)
	mustRun(t, cfg, "", "new", "shopping")
	mustRun(t, cfg, "", "new", "shopping")

	dir := filepath.Join(t.TempDir(), "out")
	out := mustRun(t, cfg, "", "export", "--all", "--dir", dir)
	if !strings.Contains(out, "exported 2") {
		t.Errorf("output = %q", out)
	}
	for _, name := range []string{"shopping.txt", "shopping (2).txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if string(data) != "shopping" {
			t.Errorf("%s = %q", name, data)
		}
	}
}

func TestExport_NeedsTargets(t *testing.T) {
	cfg := testEnv(t)
	if _, err := run(t, cfg, "", "export"); err == nil {
		t.Error("export without targets should fail")
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "conf", "memopad.yaml")

	out := mustRun(t, path, "", "config", "init")
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("written config = %+v, want defaults", *cfg)
	}

	if _, err := run(t, path, "", "config", "init"); err == nil {
		t.Error("init should refuse to overwrite")
	}
	mustRun(t, path, "", "config", "init", "--force")
}

func TestVersion(t *testing.T) {
	cmd := newRootCmd("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "memopad version 1.2.3\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := promptConfirmer{in: bufio.NewReader(strings.NewReader(tt.input)), out: &out}
		if got := c.Confirm("Delete?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
