package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// FormatSleepLine renders one session as a single summary line.
func FormatSleepLine(s domain.SleepSession, now time.Time) string {
	span := fmt.Sprintf("%s → %s", s.StartTime.Format("15:04"), s.EndTime.Format("15:04"))
	parts := []string{
		Bold(FormatMinutes(s.DurationMinutes)),
		StyleFg.Render(span),
		Dim(HumanTimestamp(s.EndTime, now)),
	}
	if s.Manual {
		parts = append(parts, Dim("(manual)"))
	} else {
		parts = append(parts, efficiencyPill(s.EfficiencyScore))
	}
	return strings.Join(parts, "  ")
}

// FormatSleepSessions renders recent sessions newest-first with the coarse
// stage breakdown for the most recent one.
func FormatSleepSessions(sessions []domain.SleepSession, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sleep sessions recorded.") + "\n"
	}

	var b strings.Builder
	for _, s := range sessions {
		b.WriteString(FormatSleepLine(s, now) + "\n")
	}

	if stages := sessions[0].Stages; len(stages) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Last night"))
		b.WriteString("\n")
		for _, seg := range stages {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				StyleFg.Render(seg.Start.Format("15:04")), stagePill(seg.Stage)))
		}
	}

	return RenderBox("Sleep", b.String())
}

func efficiencyPill(score float64) string {
	label := fmt.Sprintf("%.0f%% still", score)
	switch {
	case score >= 80:
		return StyleGreen.Render(label)
	case score >= 50:
		return StyleYellow.Render(label)
	default:
		return StyleRed.Render(label)
	}
}

func stagePill(stage domain.SleepStage) string {
	switch stage {
	case domain.StageDeep:
		return StyleBlue.Render("deep")
	case domain.StageLight:
		return StyleGreen.Render("light")
	case domain.StageAwake:
		return StyleYellow.Render("awake")
	default:
		return Dim(string(stage))
	}
}
