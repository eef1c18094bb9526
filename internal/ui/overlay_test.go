package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", []string{}, 0},
		{"multiple", []string{"hi", "hello", "hey"}, 5},
		{"with ansi", []string{"\x1b[31mred\x1b[0m"}, 3},
		{"wide", []string{"メモ"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxLineWidth(tt.lines); got != tt.want {
				t.Errorf("maxLineWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompositeRow(t *testing.T) {
	tests := []struct {
		name   string
		bg     string
		fg     string
		startX int
		want   string
	}{
		{"centered", "background text here", "[MODAL]", 5, "backg[MODAL]ext here"},
		{"left edge", "background", "[M]", 0, "[M]kground"},
		{"short background", "hi", "[MODAL]", 6, "hi    [MODAL]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(compositeRow(tt.bg, tt.fg, tt.startX, ansi.StringWidth(tt.fg)))
			if got != tt.want {
				t.Errorf("compositeRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlay(t *testing.T) {
	out := Overlay("line1\nline2\nline3\nline4\nline5", "[M]", 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "[M]") {
		t.Errorf("modal not on middle line: %q", lines[2])
	}

	out = Overlay("\x1b[31mred\x1b[0m", "X", 10, 3)
	if strings.Contains(out, "\x1b[31m") {
		t.Error("background ANSI codes should be stripped")
	}

	out = Overlay("a", "MODAL", 10, 4)
	if n := len(strings.Split(out, "\n")); n != 4 {
		t.Errorf("expected background padded to 4 lines, got %d", n)
	}
}
