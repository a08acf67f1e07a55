package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoad renders how full a day is, like [████░░░░] 4/5h. A full day is
// yellow, an empty one dim.
func RenderLoad(used, capacity float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if capacity > 0 {
		pct = used / capacity
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 1:
		style = StyleYellow
	case pct == 0:
		style = StyleDim
	}

	return fmt.Sprintf("[%s] %s/%sh", style.Render(bar), FormatHours(used), FormatHours(capacity))
}
