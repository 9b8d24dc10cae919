package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// drawPanel draws a centered box with a title line and body lines.
func drawPanel(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColor(titleX, boxY+1, title, core.ColorRed)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+3+i, l)
	}
}

// drawGameOver draws the end-of-session panel over the frozen last frame.
func drawGameOver(dst *core.Screen, over *gameOver) {
	lines := []string{fmt.Sprintf("Score: %d", over.summary.FinalScore)}

	switch {
	case over.record != nil && over.best > 0 && over.summary.FinalScore >= over.best:
		lines = append(lines, "New best!")
	case over.best > 0:
		lines = append(lines, fmt.Sprintf("Best: %d", over.best))
	}
	if over.err != nil {
		lines = append(lines, "(run not saved)")
	}

	lines = append(lines, "", strings.Join([]string{"R  restart", "Q  quit"}, "    "))
	drawPanel(dst, "GAME OVER", lines...)
}
