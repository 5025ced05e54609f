package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// CardWidth returns the card width used by the tabs for a given tab width.
func CardWidth(width int) int {
	return max(width-6, 40)
}

// RenderCard renders rows inside a titled card.
func RenderCard(icon, title string, rows []string, width int) string {
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render(icon)
	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(title)), "")
	lines = append(lines, rows...)
	lines = append(lines, "")

	return styles.CardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// Indent prefixes every line of block with two spaces.
func Indent(block string) []string {
	var lines []string
	for line := range strings.SplitSeq(block, "\n") {
		lines = append(lines, "  "+line)
	}
	return lines
}

// RenderPlaceholder renders a muted one-line notice for a card body.
func RenderPlaceholder(msg string) string {
	emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	return fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render(msg))
}
