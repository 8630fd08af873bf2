// Package autofill implements the field-matching and application engine: it
// scans a document for eligible form controls, resolves a label for each,
// scores the label against the profile-attribute vocabulary, builds a
// user-reviewable preview, and writes approved values back into the page.
package autofill

import (
	"go.uber.org/zap"
)

// DefaultMinConfidence is the score below which a match is discarded. It is a
// tunable heuristic, not a derived value.
const DefaultMinConfidence = 40

// Config holds the engine's tunable knobs
type Config struct {
	// MinConfidence excludes matches scoring below it from previews
	MinConfidence int
}

// Engine performs preview building and value application over a Document
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine creates an autofill engine
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
	}
}
