package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

const gaugeWidth = 10

// StatusData carries everything the status dashboard renders. Plan and
// LastSleep are nil when absent.
type StatusData struct {
	Snapshot  domain.BioLoadSnapshot
	Plan      *domain.DailyPlan
	LastSleep *domain.SleepSession
	Now       time.Time
}

// FormatStatus renders the bio-load snapshot, today's plan state and last
// night's sleep as one dashboard.
func FormatStatus(d StatusData) string {
	var b strings.Builder

	b.WriteString(Header("Bio-load"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Neural battery", RenderBattery(d.Snapshot.NeuralBattery, gaugeWidth)))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Hormonal load", RenderLoad(d.Snapshot.HormonalLoad, gaugeWidth)))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Physical fatigue", RenderLoad(d.Snapshot.PhysicalFatigue, gaugeWidth)))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Social drain", StyleFg.Render(fmt.Sprintf("%.0f", d.Snapshot.SocialDrain))))
	for _, w := range d.Snapshot.VitaminWarnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Header("Today"))
	b.WriteString("\n")
	if d.Plan == nil {
		b.WriteString(Dim("  No plan yet. Run 'pulseplan plan regen'.") + "\n")
	} else {
		a := d.Plan.Adherence()
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			StyleGreen.Render(fmt.Sprintf("%d/%d done", a.Completed, a.Total)),
			Dim(fmt.Sprintf("%d skipped", a.Skipped))))
		for _, it := range d.Plan.Items {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				ItemStateGlyph(it), StyleFg.Render(it.ScheduledTime), it.Title))
		}
	}

	b.WriteString("\n")
	b.WriteString(Header("Sleep"))
	b.WriteString("\n")
	if d.LastSleep == nil {
		b.WriteString(Dim("  No sessions recorded.") + "\n")
	} else {
		b.WriteString("  " + FormatSleepLine(*d.LastSleep, d.Now) + "\n")
	}

	return RenderBox("Status", b.String())
}
