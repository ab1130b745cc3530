package extraction

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/voicelist/errors"
	"github.com/kbukum/voicelist/provider"
)

// Registry resolves a mode name to a registered extractor.
type Registry struct {
	extractors  *provider.Registry[Extractor]
	defaultMode Mode
}

// NewRegistry creates a registry that falls back to defaultMode.
func NewRegistry(defaultMode Mode) *Registry {
	if defaultMode == "" {
		defaultMode = ModeHeuristic
	}
	return &Registry{extractors: provider.NewRegistry[Extractor](), defaultMode: defaultMode}
}

// Register adds e under its Name.
func (r *Registry) Register(e Extractor) { r.extractors.Register(e) }

// Default returns the configured default mode.
func (r *Registry) Default() Mode { return r.defaultMode }

// Modes returns the registered mode names.
func (r *Registry) Modes() []string { return r.extractors.List() }

// Select returns the extractor for mode, or the default when mode is empty.
// Unknown and unregistered modes are invalid input.
func (r *Registry) Select(_ context.Context, mode string) (Extractor, error) {
	name := strings.ToLower(strings.TrimSpace(mode))
	if name == "" {
		name = string(r.defaultMode)
	}
	if name != string(ModeHeuristic) && name != string(ModeLLM) {
		return nil, apperrors.InvalidInput("extractor",
			fmt.Sprintf("unknown extractor %q (want heuristic or llm)", mode)).
			WithDetail("available", r.Modes())
	}
	e, ok := r.extractors.Get(name)
	if !ok {
		return nil, apperrors.InvalidInput("extractor",
			fmt.Sprintf("extractor %q is not configured", name)).
			WithDetail("available", r.Modes())
	}
	return e, nil
}
