package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Autopilot plays the game from what is on screen: it jumps cacti and
// ducks pterosaurs once they are within Lead frames of reaching the player.
type Autopilot struct {
	Lead float64 // Frames of warning before contact
}

// NewAutopilot returns an autopilot tuned for the default jump arc.
func NewAutopilot() *Autopilot {
	return &Autopilot{Lead: 4.5}
}

// Next implements InputSource.
func (a *Autopilot) Next(e *Engine) core.InputFrame {
	var in core.InputFrame

	p := e.Player().Bounds()
	reach := e.World().Speed() * (a.Lead + 1)

	for _, o := range e.World().Obstacles() {
		b := o.Bounds()
		if b.Right() < p.X {
			continue // already behind the player
		}
		gap := b.X - p.Right()

		switch o.Kind() {
		case KindFlying:
			if gap <= reach {
				in.Set(core.ActionDuck)
			}
		default:
			if gap > 0 && gap <= reach {
				in.Set(core.ActionJump)
			}
		}
	}
	return in
}

var _ InputSource = (*Autopilot)(nil)
