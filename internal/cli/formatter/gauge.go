package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBattery renders a gauge like [████░░░░]  45 where high is good:
// green above 66, yellow between 33 and 66, red below.
func RenderBattery(level float64, width int) string {
	return renderGauge(level, width, false)
}

// RenderLoad renders the same gauge with inverted coloring: loads are bad
// when high, so red above 66 and green below 33.
func RenderLoad(level float64, width int) string {
	return renderGauge(level, width, true)
}

func renderGauge(level float64, width int, inverted bool) string {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	if width < 2 {
		width = 2
	}

	filled := int(level / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	good := level > 66
	bad := level < 33
	if inverted {
		good, bad = bad, good
	}
	style := StyleYellow
	switch {
	case good:
		style = StyleGreen
	case bad:
		style = StyleRed
	}

	return fmt.Sprintf("[%s] %3.0f", style.Render(bar), level)
}
