package config

import (
	"math"
	"time"
)

// GravityConfig defines the drop interval curve.
type GravityConfig struct {
	Base        float64       `yaml:"base"`
	Decay       float64       `yaml:"decay"`
	MinInterval time.Duration `yaml:"min_interval"`
}

// DefaultGravity returns the guideline curve (0.8 - (level-1)*0.007)^(level-1).
func DefaultGravity() GravityConfig {
	return GravityConfig{
		Base:        0.8,
		Decay:       0.007,
		MinInterval: 15 * time.Millisecond,
	}
}

// FallSpeed returns how long a piece waits between automatic drops at the
// given whole level. The interval shrinks as the level grows and never goes
// below MinInterval.
func (g GravityConfig) FallSpeed(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	n := float64(level - 1)
	base := g.Base - n*g.Decay
	floor := g.MinInterval
	if floor <= 0 {
		floor = time.Millisecond
	}
	if base <= 0 {
		return floor
	}
	secs := math.Pow(base, n)
	d := time.Duration(secs * float64(time.Second))
	if d < floor {
		return floor
	}
	return d
}
