package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const shareLabelWidth = 14

// ShareBar renders the registered/casual split of a day category as one
// two-tone bar. The filled part is the registered share.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a share bar in the user type colors.
func NewShareBar() ShareBar {
	p := progress.New(
		progress.WithSolidFill(string(styles.Registered)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	p.Empty = p.Full
	p.EmptyColor = string(styles.Casual)

	return ShareBar{progress: p}
}

// View renders the bar for u within width cells.
func (s ShareBar) View(u models.UserTypeMeans, width int) string {
	s.progress.Width = max(width-shareLabelWidth-24, 10)

	share := u.RegisteredShare()
	bar := s.progress.ViewAs(share)

	label := styles.ProgressLabelStyle.Width(shareLabelWidth).Render(u.Category)
	stats := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(
		fmt.Sprintf(" %3.0f%% reg  %4.0f / %4.0f", share*100, u.Registered, u.Casual),
	)

	return lipgloss.JoinHorizontal(lipgloss.Center, label, bar, stats)
}

// ShareLegend explains the share bar colors.
func ShareLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "registered", Color: styles.Registered},
		{Label: "casual", Color: styles.Casual},
	})
}

// RenderRangeBar draws the min..max span of a category on a scale from 0 to
// scaleMax, with the mean marked. The span is shaded from low to high.
func RenderRangeBar(stat models.CategoryStat, scaleMax float64, width int) string {
	if width < 3 {
		width = 3
	}
	if scaleMax <= 0 {
		scaleMax = math.Max(float64(stat.Max), 1)
	}

	pos := func(v float64) int {
		p := int(math.Round(v / scaleMax * float64(width-1)))
		return min(max(p, 0), width-1)
	}
	lo, hi, mid := pos(float64(stat.Min)), pos(float64(stat.Max)), pos(stat.Mean)

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i < lo || i > hi:
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("·"))
		case i == mid:
			b.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).Render("●"))
		default:
			ch := "─"
			if i == lo {
				ch = "├"
			} else if i == hi {
				ch = "┤"
			}
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ff6b6b", "#51cf66", t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(ch))
		}
	}

	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
