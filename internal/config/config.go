// Package config provides YAML-based game configuration for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Scoring ScoringConfig `yaml:"scoring"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// GravityConfig defines the automatic fall cadence.
type GravityConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ScoringConfig defines points awarded per cleared row.
type ScoringConfig struct {
	LinePoints int `yaml:"line_points"`
}

// LogConfig defines the default log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Interval returns the gravity interval as a duration.
func (g GravityConfig) Interval() time.Duration {
	return time.Duration(g.IntervalMs) * time.Millisecond
}

// TicksPerStep converts the gravity interval into simulation ticks at the
// given tick rate. The result is at least 1.
func (g GravityConfig) TicksPerStep(tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	ticks := g.IntervalMs * tickRate / 1000
	return max(ticks, 1)
}

// Validate reports configuration that cannot produce a playable game.
func (c BlocksConfig) Validate() error {
	var errs []error
	if c.Board.Rows <= 0 {
		errs = append(errs, fmt.Errorf("board.rows must be positive, got %d", c.Board.Rows))
	}
	if c.Board.Columns <= 0 {
		errs = append(errs, fmt.Errorf("board.columns must be positive, got %d", c.Board.Columns))
	}
	if c.Gravity.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("gravity.interval_ms must be positive, got %d", c.Gravity.IntervalMs))
	}
	if c.Scoring.LinePoints <= 0 {
		errs = append(errs, fmt.Errorf("scoring.line_points must be positive, got %d", c.Scoring.LinePoints))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
