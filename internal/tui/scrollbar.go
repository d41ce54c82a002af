package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scrollbar renders a one-column track with a thumb sized and positioned
// for a window of `visible` rows over `total` rows starting at `offset`.
type scrollbar struct {
	thumb lipgloss.Style
	track lipgloss.Style
}

// thumbSpan returns the first row and height of the thumb.
func thumbSpan(total, visible, offset int) (top, height int) {
	if visible <= 0 {
		return 0, 0
	}
	if total <= visible {
		return 0, visible
	}

	maxOffset := total - visible
	offset = min(max(offset, 0), maxOffset)

	height = min(max(visible*visible/total, 1), visible)
	maxTop := visible - height
	if maxTop > 0 {
		top = offset * maxTop / maxOffset
	}
	return top, height
}

// View renders exactly visible rows, or "" when visible is not positive.
func (s scrollbar) View(total, visible, offset int) string {
	if visible <= 0 {
		return ""
	}
	top, height := thumbSpan(total, visible, offset)

	rows := make([]string, visible)
	for i := range rows {
		if i >= top && i < top+height {
			rows[i] = s.thumb.Render("┃")
		} else {
			rows[i] = s.track.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
