package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration: a 20x10 board,
// 500ms gravity and 100 points per row.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Rows:    20,
			Columns: 10,
		},
		Gravity: GravityConfig{
			IntervalMs: 500,
		},
		Scoring: ScoringConfig{
			LinePoints: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
