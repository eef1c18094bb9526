package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Accent    = lipgloss.Color("#007AFF") // Blue, matches the default folder palette
	Highlight = lipgloss.Color("#FFCC00") // Yellow marker behind search matches
	Checked   = lipgloss.Color("#FF9500") // Orange

	Success = lipgloss.Color("#34C759")
	Error   = lipgloss.Color("#FF3B30")

	TextPrimary   = lipgloss.Color("#F2F2F7")
	TextSecondary = lipgloss.Color("#AEAEB2")
	TextMuted     = lipgloss.Color("#8E8E93")
	TextSubtle    = lipgloss.Color("#48484A")

	BgPrimary   = lipgloss.Color("#1C1C1E")
	BgSecondary = lipgloss.Color("#2C2C2E")
	BgTertiary  = lipgloss.Color("#3A3A3C")

	TextOnLight = lipgloss.Color("#000000")
	TextOnDark  = lipgloss.Color("#FFFFFF")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	// Every occurrence of the active highlight term in the editor
	SearchMatch = lipgloss.NewStyle().
			Background(Highlight).
			Foreground(TextOnLight)
)

// Toast styles for status messages
var (
	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(TextOnLight).
			Bold(true).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(TextOnDark).
			Bold(true).
			Padding(0, 1)
)

// Memo and folder rows
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgTertiary)

	ListCursor = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ListMeta = lipgloss.NewStyle().
			Foreground(TextMuted)

	// Checkbox of a selected row in edit mode
	ListChecked = lipgloss.NewStyle().
			Foreground(Checked).
			Bold(true)
)

// Header and footer bars
var (
	Header = lipgloss.NewStyle().
		Background(BgSecondary)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)
)

// Dialogs
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Background(BgSecondary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true).
			MarginBottom(1)

	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(TextOnDark).
			Background(Accent).
			Padding(0, 2).
			Bold(true)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(TextOnDark).
			Background(Error).
			Padding(0, 2).
			Bold(true)
)

// RenderTab renders a tab label. The active tab uses the accent colour.
func RenderTab(label string, isActive bool) string {
	style := lipgloss.NewStyle().Padding(0, 2)
	if isActive {
		style = style.Background(Accent).Foreground(TextOnDark).Bold(true)
	} else {
		style = style.Background(BgTertiary).Foreground(TextSecondary)
	}
	return style.Render(label)
}
