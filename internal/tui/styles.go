package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for command output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Metadata type headings in resolve output
	TypeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	NameStyle = lipgloss.NewStyle()

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ChecksumStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// Printer renders styles only in styled mode, so that plain output stays
// free of escape sequences.
type Printer struct {
	mode Mode
}

// NewPrinter creates a printer for mode.
func NewPrinter(mode Mode) Printer {
	return Printer{mode: mode}
}

// Styled reports whether the printer applies styles.
func (p Printer) Styled() bool {
	return p.mode == ModeStyled
}

// Render applies style to s in styled mode and returns s unchanged otherwise.
func (p Printer) Render(style lipgloss.Style, s string) string {
	if !p.Styled() {
		return s
	}
	return style.Render(s)
}

// Symbol returns sym in styled mode and fallback otherwise.
func (p Printer) Symbol(sym, fallback string) string {
	if !p.Styled() {
		return fallback
	}
	return sym
}
