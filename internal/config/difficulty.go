package config

import "math"

// Progression applies the score and speed rules of a running session.
// Speed only ever goes up: by SpeedStep each time the score crosses a
// multiple of Milestone, up to MaxSpeed when one is configured.
type Progression struct {
	cfg      DifficultyConfig
	maxSpeed float64
}

// NewProgression creates a progression from the difficulty settings and the world speed cap.
func NewProgression(cfg DifficultyConfig, maxSpeed float64) *Progression {
	return &Progression{
		cfg:      cfg,
		maxSpeed: maxSpeed,
	}
}

// IsEnabled returns whether speed progression is active.
func (p *Progression) IsEnabled() bool {
	return p.cfg.Enabled && p.cfg.Milestone > 0 && p.cfg.SpeedStep > 0
}

// ScorePerFrame returns the score awarded for each survived frame.
func (p *Progression) ScorePerFrame() float64 {
	return p.cfg.ScorePerFrame
}

// Milestones returns how many multiples of the milestone lie in (prev, score].
func (p *Progression) Milestones(prev, score float64) int {
	if p.cfg.Milestone <= 0 || score <= prev {
		return 0
	}
	return int(math.Floor(score/p.cfg.Milestone) - math.Floor(prev/p.cfg.Milestone))
}

// NextSpeed returns the speed after the score moved from prev to score.
func (p *Progression) NextSpeed(prev, score, speed float64) float64 {
	if !p.IsEnabled() {
		return speed
	}
	n := p.Milestones(prev, score)
	if n == 0 {
		return speed
	}
	next := speed + float64(n)*p.cfg.SpeedStep
	if p.maxSpeed > 0 && next > p.maxSpeed {
		next = math.Max(p.maxSpeed, speed)
	}
	return next
}
