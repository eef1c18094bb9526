package styles

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	lightText = colorful.Color{R: 1, G: 1, B: 1}
	darkText  = colorful.Color{R: 0, G: 0, B: 0}
)

// LabelForeground picks black or white text, whichever contrasts more with
// the hex background. Unparseable colours get white text.
func LabelForeground(bg string) lipgloss.Color {
	c, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(lightText.Hex())
	}
	if contrastRatio(darkText, c) >= contrastRatio(lightText, c) {
		return lipgloss.Color(darkText.Hex())
	}
	return lipgloss.Color(lightText.Hex())
}

// FolderLabel renders name on the folder's colour.
func FolderLabel(name, color string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(LabelForeground(color)).
		Padding(0, 1).
		Render(name)
}

// FolderDot renders a coloured bullet for folder rows.
func FolderDot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// MutedColor returns color blended toward the background, for unselected swatches.
func MutedColor(color string) lipgloss.Color {
	c, err := colorful.Hex(color)
	if err != nil {
		return TextMuted
	}
	bg, _ := colorful.Hex(string(BgPrimary))
	return lipgloss.Color(c.BlendLab(bg, 0.6).Clamped().Hex())
}

func contrastRatio(a, b colorful.Color) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
