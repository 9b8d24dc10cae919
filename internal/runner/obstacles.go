package runner

import (
	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// ObstacleKind identifies what the player has to avoid.
type ObstacleKind int

const (
	KindSmallGround ObstacleKind = iota
	KindLargeGround
	KindFlying
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindSmallGround:
		return "SmallGround"
	case KindLargeGround:
		return "LargeGround"
	case KindFlying:
		return "Flying"
	default:
		return "Unknown"
	}
}

// GroundObstacle is a cactus. Small and large variants sit at different heights.
type GroundObstacle struct {
	pos    core.Vec2
	kind   ObstacleKind
	sprite *assets.Sprite
}

// NewGroundObstacle places a cactus with its top-left corner at pos.
func NewGroundObstacle(kind ObstacleKind, sprite *assets.Sprite, pos core.Vec2) *GroundObstacle {
	return &GroundObstacle{pos: pos, kind: kind, sprite: sprite}
}

// Update scrolls the cactus left by the world speed.
func (o *GroundObstacle) Update(t Tick) {
	o.pos.X -= t.Speed
}

// Draw renders the cactus.
func (o *GroundObstacle) Draw(r Renderer) {
	r.DrawSprite(o.sprite, o.pos.X, o.pos.Y)
}

// Bounds returns the cactus collision box.
func (o *GroundObstacle) Bounds() core.Rect {
	return core.RectAt(o.pos, o.sprite.Width, o.sprite.Height)
}

func (o *GroundObstacle) Kind() ObstacleKind  { return o.kind }
func (o *GroundObstacle) Position() core.Vec2 { return o.pos }

// Variant returns the sprite key this cactus was drawn from.
func (o *GroundObstacle) Variant() string { return o.sprite.Key }

// Offscreen reports whether the cactus is left of thresholdX.
func (o *GroundObstacle) Offscreen(thresholdX float64) bool {
	return o.pos.X < thresholdX
}

// FlyingObstacle is a pterosaur flapping between two frames.
type FlyingObstacle struct {
	pos    core.Vec2
	frames [2]*assets.Sprite
	step   int
	period int
	hold   int
}

// NewFlyingObstacle places a pterosaur at pos. The animation counter cycles
// 0..period-1 and each frame is shown for hold ticks.
func NewFlyingObstacle(frames [2]*assets.Sprite, pos core.Vec2, period, hold int) *FlyingObstacle {
	return &FlyingObstacle{pos: pos, frames: frames, period: period, hold: hold}
}

// Update scrolls left and advances the wing animation.
func (o *FlyingObstacle) Update(t Tick) {
	o.pos.X -= t.Speed
	o.step = (o.step + 1) % o.period
}

// Draw renders the current wing frame.
func (o *FlyingObstacle) Draw(r Renderer) {
	r.DrawSprite(o.frames[(o.step/o.hold)%2], o.pos.X, o.pos.Y)
}

// Bounds uses the first frame's size regardless of the wing position.
func (o *FlyingObstacle) Bounds() core.Rect {
	return core.RectAt(o.pos, o.frames[0].Width, o.frames[0].Height)
}

func (o *FlyingObstacle) Kind() ObstacleKind  { return KindFlying }
func (o *FlyingObstacle) Position() core.Vec2 { return o.pos }

// Offscreen reports whether the pterosaur is left of thresholdX.
func (o *FlyingObstacle) Offscreen(thresholdX float64) bool {
	return o.pos.X < thresholdX
}

var (
	_ Obstacle = (*GroundObstacle)(nil)
	_ Obstacle = (*FlyingObstacle)(nil)
)
