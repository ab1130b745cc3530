package extraction

import (
	"context"
	"errors"

	"github.com/kbukum/voicelist/grocery"
	"github.com/kbukum/voicelist/llm"
	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/provider"
	"github.com/kbukum/voicelist/util"
)

// UnparsableWarning is the Result warning for model output that is not an
// item array.
const UnparsableWarning = "LLM response could not be parsed; no items extracted"

// LLM extracts items by prompting a completion provider.
type LLM struct {
	rr  provider.RequestResponse[string, []grocery.Item]
	log *logger.Logger
}

var _ Extractor = (*LLM)(nil)

// NewLLM builds the extractor on top of completion provider p.
func NewLLM(p provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse], log *logger.Logger) *LLM {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	e := &LLM{log: log.WithComponent("extraction")}
	e.rr = provider.Adapt(p, string(ModeLLM),
		func(_ context.Context, transcript string) (llm.CompletionRequest, error) {
			return llm.CompletionRequest{
				SystemPrompt: SystemPrompt,
				Messages:     []llm.Message{llm.UserMessage(BuildPrompt(transcript))},
			}, nil
		},
		func(resp llm.CompletionResponse) ([]grocery.Item, error) {
			return ParseItems(resp.Content)
		},
	)
	return e
}

func (e *LLM) Name() string                         { return e.rr.Name() }
func (e *LLM) IsAvailable(ctx context.Context) bool { return e.rr.IsAvailable(ctx) }

// Extract returns the provider's error on transport failure. Unusable
// output is logged and reported through Result.Warning instead.
func (e *LLM) Extract(ctx context.Context, transcript string) (*Result, error) {
	items, err := e.rr.Execute(ctx, transcript)
	if err == nil {
		return &Result{Items: items, Extractor: string(ModeLLM)}, nil
	}

	var pf *ParseFailure
	if !errors.As(err, &pf) {
		return nil, err
	}
	e.log.WithContext(ctx).Warn("Discarding unparsable LLM output", logger.Fields(
		logger.FieldError, pf.Err.Error(),
		"stage", pf.Stage,
		"raw", util.Truncate(pf.Raw, 500),
	))
	return &Result{Items: []grocery.Item{}, Extractor: string(ModeLLM), Warning: UnparsableWarning}, nil
}
