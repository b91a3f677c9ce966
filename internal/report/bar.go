package report

import (
	"fmt"
	"strings"
)

// Bar renders a score from 0 to 100 as a horizontal bar followed by the
// percentage.
func Bar(score, width int) string {
	if width < 4 {
		width = 4
	}
	score = max(0, min(score, 100))

	filled := width * score / 100
	empty := width - filled

	return BarFilled.Render(strings.Repeat(" ", filled)) +
		BarEmpty.Render(strings.Repeat(" ", empty)) +
		Dim.Render(fmt.Sprintf(" %3d%%", score))
}
