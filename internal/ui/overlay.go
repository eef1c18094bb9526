// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle greys out background content behind modals. Existing ANSI codes
// are stripped first because faint does not combine reliably with colour.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow returns dimmed-left + fg + dimmed-right for one row.
func compositeRow(bg, fg string, startX, fgWidth int) string {
	plain := ansi.Strip(bg)
	bgWidth := ansi.StringWidth(plain)

	var b strings.Builder
	if startX > 0 {
		left := ansi.Truncate(plain, startX, "")
		b.WriteString(DimStyle.Render(left))
		if w := ansi.StringWidth(left); w < startX {
			b.WriteString(strings.Repeat(" ", startX-w))
		}
	}
	b.WriteString(fg)
	if end := startX + fgWidth; bgWidth > end {
		b.WriteString(DimStyle.Render(ansi.Cut(plain, end, bgWidth)))
	}
	return b.String()
}

// Overlay centres fg over a dimmed background of the given size.
func Overlay(background, fg string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(fg, "\n")

	fgWidth := maxLineWidth(fgLines)
	startX := max((width-fgWidth)/2, 0)
	startY := max((height-len(fgLines))/2, 0)

	out := make([]string, height)
	for y := range height {
		bg := ""
		if y < len(bgLines) {
			bg = bgLines[y]
		}
		if row := y - startY; row >= 0 && row < len(fgLines) {
			out[y] = compositeRow(bg, fgLines[row], startX, fgWidth)
		} else {
			out[y] = dimLine(bg)
		}
	}
	return strings.Join(out, "\n")
}
