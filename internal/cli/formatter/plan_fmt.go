package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// FormatPlan renders a daily plan as a table with per-item state glyphs
// and an adherence summary line.
func FormatPlan(plan *domain.DailyPlan, now time.Time) string {
	var b strings.Builder

	headers := []string{"", "TIME", "ITEM", "CATEGORY", "PRIORITY", "ID"}
	rows := make([][]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		title := Bold(it.Title)
		if it.Snoozed(now) {
			title += " " + Dim("(snoozed)")
		}
		rows = append(rows, []string{
			ItemStateGlyph(it),
			StyleFg.Render(it.ScheduledTime),
			title,
			StylePurple.Render(string(it.Category)),
			PriorityPill(it.Priority),
			TruncID(it.ID),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	a := plan.Adherence()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %s, %s\n",
		StyleGreen.Render(fmt.Sprintf("%d done", a.Completed)),
		StyleDim.Render(fmt.Sprintf("%d skipped", a.Skipped)),
		StyleFg.Render(fmt.Sprintf("%d total", a.Total)),
	))

	if plan.Summary != "" {
		b.WriteString("\n")
		b.WriteString(Dim(plan.Summary) + "\n")
	}

	return RenderBox("Plan "+plan.Date, b.String())
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
