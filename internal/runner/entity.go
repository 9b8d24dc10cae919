// Package runner implements the endless runner: a dino that jumps over
// cacti and ducks under pterosaurs while the track scrolls ever faster.
//
// Everything here is deterministic for a given seed and input sequence.
// Drawing goes through the Renderer interface in world units; the
// platform decides how world units map to a terminal.
package runner

import (
	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// TextStyle describes how overlay text is drawn.
type TextStyle struct {
	Color core.Color
}

// Renderer is an immediate-mode drawing surface in world units.
type Renderer interface {
	Clear()
	DrawSprite(s *assets.Sprite, x, y float64)
	DrawText(text string, x, y float64, style TextStyle)
}

// NopRenderer discards all drawing. Useful for headless simulation.
type NopRenderer struct{}

func (NopRenderer) Clear() {}

func (NopRenderer) DrawSprite(*assets.Sprite, float64, float64) {}

func (NopRenderer) DrawText(string, float64, float64, TextStyle) {}

// Tick is what every entity sees during one frame.
type Tick struct {
	Input core.InputFrame // Snapshot taken at the tick boundary
	Speed float64         // World scroll speed for this frame
	Frame int             // Index of the frame being processed
}

// Entity is anything that lives in the world for one or more frames.
type Entity interface {
	// Update advances the entity by exactly one frame.
	Update(t Tick)
	// Draw renders the entity. It never changes entity state.
	Draw(r Renderer)
	// Bounds returns the current collision box.
	Bounds() core.Rect
}

// Obstacle is a passive entity scrolling right to left at world speed.
type Obstacle interface {
	Entity
	Kind() ObstacleKind
	Position() core.Vec2
	// Offscreen reports whether the obstacle is left of the removal threshold.
	Offscreen(thresholdX float64) bool
}
