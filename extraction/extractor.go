package extraction

import (
	"context"

	"github.com/kbukum/voicelist/grocery"
	"github.com/kbukum/voicelist/provider"
)

// Mode names an extractor.
type Mode string

const (
	ModeHeuristic Mode = "heuristic"
	ModeLLM       Mode = "llm"
)

// Extractor turns a transcript into items.
type Extractor interface {
	provider.Provider
	Extract(ctx context.Context, transcript string) (*Result, error)
}

// Result is the outcome of one extraction.
type Result struct {
	Items []grocery.Item `json:"items"`
	// Extractor is the mode that produced Items.
	Extractor string `json:"extractor"`
	// Warning is set when the extractor ran but its output was unusable.
	Warning string `json:"warning,omitempty"`
}
