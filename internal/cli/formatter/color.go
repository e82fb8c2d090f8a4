package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityPill returns a colored priority indicator such as "▲ HIGH".
func PriorityPill(p domain.ItemPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ HIGH")
	case domain.PriorityMedium:
		return StyleYellow.Render("● MED")
	case domain.PriorityLow:
		return StyleBlue.Render("▽ LOW")
	default:
		return StyleDim.Render(string(p))
	}
}

// ItemStateGlyph returns the per-item state marker for plan listings.
func ItemStateGlyph(it domain.PlanItem) string {
	switch {
	case it.Completed:
		return StyleGreen.Render("✔")
	case it.Skipped:
		return StyleDim.Render("⊘")
	default:
		return StyleFg.Render("○")
	}
}

// ContextBadge returns a colored label for the live activity context.
func ContextBadge(state domain.UserContextState) string {
	label := strings.ToUpper(string(state))
	switch state {
	case domain.ContextDriving:
		return StyleRed.Render("● " + label)
	case domain.ContextSleeping:
		return StylePurple.Render("● " + label)
	case domain.ContextRunning, domain.ContextWalking:
		return StyleGreen.Render("● " + label)
	default:
		return StyleDim.Render("● " + label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
