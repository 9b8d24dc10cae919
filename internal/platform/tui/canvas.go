package tui

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// Canvas draws world-unit coordinates into a character Screen.
// Positions are scaled to cells; sprite art is drawn one rune per cell
// from the scaled top-left corner. Spaces in the art are transparent.
type Canvas struct {
	screen *core.Screen
	worldW float64
	worldH float64
}

// NewCanvas creates a canvas that maps a worldW x worldH world onto screen.
func NewCanvas(screen *core.Screen, worldW, worldH float64) *Canvas {
	return &Canvas{screen: screen, worldW: worldW, worldH: worldH}
}

// Screen returns the backing character buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// Clear blanks the screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// Cell converts a world position to a cell position.
func (c *Canvas) Cell(x, y float64) (col, row int) {
	col = int(math.Floor(x * float64(c.screen.Width()) / c.worldW))
	row = int(math.Floor(y * float64(c.screen.Height()) / c.worldH))
	return col, row
}

// cellWidth returns how many columns a world width spans.
func (c *Canvas) cellWidth(w float64) int {
	return int(math.Ceil(w * float64(c.screen.Width()) / c.worldW))
}

// DrawSprite draws a sprite with its top-left corner at (x, y).
// Tiled sprites repeat their art across the sprite's full scaled width.
func (c *Canvas) DrawSprite(s *assets.Sprite, x, y float64) {
	col, row := c.Cell(x, y)

	for dy, line := range s.Art {
		art := []rune(line)
		if len(art) == 0 {
			continue
		}

		n := len(art)
		if s.Tile {
			n = c.cellWidth(s.Width)
		}
		for dx := 0; dx < n; dx++ {
			r := art[dx%len(art)]
			if r == ' ' {
				continue
			}
			c.screen.SetColor(col+dx, row+dy, r, s.Color)
		}
	}
}

// DrawText draws text starting at (x, y).
func (c *Canvas) DrawText(text string, x, y float64, style runner.TextStyle) {
	col, row := c.Cell(x, y)
	c.screen.DrawTextColor(col, row, text, style.Color)
}

var _ runner.Renderer = (*Canvas)(nil)
