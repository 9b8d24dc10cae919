package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// PlayerState is the player's vertical state. A single value means the
// player can never be jumping and ducking at the same time.
type PlayerState int

const (
	StateRunning PlayerState = iota
	StateJumping
	StateDucking
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateJumping:
		return "Jumping"
	case StateDucking:
		return "Ducking"
	default:
		return "Unknown"
	}
}

// Player is the user-controlled dino.
type Player struct {
	pos    core.Vec2
	vel    float64 // Vertical velocity, positive = up
	state  PlayerState
	step   int // Animation step counter, cycles 0..AnimPeriod-1
	sprite *assets.Sprite

	run  [2]*assets.Sprite
	duck [2]*assets.Sprite
	jump *assets.Sprite

	cfg  config.RunnerPlayer
	phys config.RunnerPhysics
}

// NewPlayer creates a running player on the ground.
func NewPlayer(cat *assets.Catalog, cfg config.RunnerPlayer, phys config.RunnerPhysics) (*Player, error) {
	p := &Player{
		pos:  core.Vec2{X: cfg.X, Y: cfg.RunY},
		vel:  phys.JumpVelocity,
		cfg:  cfg,
		phys: phys,
	}

	sprites := []struct {
		dst **assets.Sprite
		key string
	}{
		{&p.run[0], assets.KeyDinoRun1},
		{&p.run[1], assets.KeyDinoRun2},
		{&p.duck[0], assets.KeyDinoDuck1},
		{&p.duck[1], assets.KeyDinoDuck2},
		{&p.jump, assets.KeyDinoJump},
	}
	for _, s := range sprites {
		sp, err := cat.Get(s.key)
		if err != nil {
			return nil, fmt.Errorf("runner: player: %w", err)
		}
		*s.dst = sp
	}

	p.sprite = p.run[0]
	return p, nil
}

// Update applies the current state for one frame, then reads the input to
// choose the state for the next one. A press therefore moves the hitbox on
// the frame after it is seen.
func (p *Player) Update(t Tick) {
	switch p.state {
	case StateJumping:
		p.pos.Y -= p.vel * p.phys.JumpScale
		p.vel -= p.phys.Gravity
		if p.vel < -p.phys.JumpVelocity {
			p.vel = p.phys.JumpVelocity
			p.pos.Y = p.cfg.RunY
			p.state = StateRunning
		}
		p.sprite = p.jump
	case StateDucking:
		p.sprite = p.duck[p.animFrame()]
		p.pos.Y = p.cfg.DuckY
	default:
		p.sprite = p.run[p.animFrame()]
		p.pos.Y = p.cfg.RunY
	}

	// Jump wins over duck; neither is read mid-air.
	if p.state != StateJumping {
		switch {
		case t.Input.Has(core.ActionJump):
			p.state = StateJumping
			p.vel = p.phys.JumpVelocity
		case t.Input.Has(core.ActionDuck):
			p.state = StateDucking
		default:
			p.state = StateRunning
		}
	}

	p.step = (p.step + 1) % p.cfg.AnimPeriod
}

// animFrame picks one of the two animation frames from the step counter.
func (p *Player) animFrame() int {
	return (p.step / p.cfg.FrameHold) % 2
}

// Draw renders the current sprite at the player's position.
func (p *Player) Draw(r Renderer) {
	r.DrawSprite(p.sprite, p.pos.X, p.pos.Y)
}

// Bounds returns the player's box from its position and current sprite.
func (p *Player) Bounds() core.Rect {
	return core.RectAt(p.pos, p.sprite.Width, p.sprite.Height)
}

// State returns the current vertical state.
func (p *Player) State() PlayerState {
	return p.state
}

// Position returns the top-left corner of the player.
func (p *Player) Position() core.Vec2 {
	return p.pos
}

// Velocity returns the vertical velocity (positive = up).
func (p *Player) Velocity() float64 {
	return p.vel
}

// Step returns the animation step counter.
func (p *Player) Step() int {
	return p.step
}

// Sprite returns the sprite the player is currently showing.
func (p *Player) Sprite() *assets.Sprite {
	return p.sprite
}
