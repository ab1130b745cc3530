package extraction

import (
	"context"

	"github.com/kbukum/voicelist/grocery"
)

// Heuristic is the rule-based extractor.
type Heuristic struct{}

var _ Extractor = Heuristic{}

// NewHeuristic returns the rule-based extractor.
func NewHeuristic() Heuristic { return Heuristic{} }

func (Heuristic) Name() string                       { return string(ModeHeuristic) }
func (Heuristic) IsAvailable(_ context.Context) bool { return true }

// Extract runs grocery.Extract. It never fails.
func (Heuristic) Extract(_ context.Context, transcript string) (*Result, error) {
	return &Result{Items: grocery.Extract(transcript), Extractor: string(ModeHeuristic)}, nil
}
