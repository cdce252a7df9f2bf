package tui

// ClampPosition keeps a w x h card fully visible on a screenW x screenH
// canvas. Each axis is clamped independently; when the card is larger
// than the screen on an axis, it pins to the origin edge.
func ClampPosition(x, y, w, h, screenW, screenH int) (int, int) {
	return clampAxis(x, w, screenW), clampAxis(y, h, screenH)
}

func clampAxis(pos, size, span int) int {
	max := span - size
	if max < 0 {
		return 0
	}
	if pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
