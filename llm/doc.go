// Package llm is a provider-agnostic text completion client.
//
// An Adapter pairs an httpclient.Adapter with a Dialect that knows one
// provider's wire format. Dialects register themselves by name, so importing
// a dialect package is enough to make it selectable from configuration:
//
//	import _ "github.com/kbukum/voicelist/llm/gemini"
//
//	a, err := llm.New(llm.Config{Dialect: "gemini", APIKey: key})
//	text, err := llm.Complete(ctx, a.AsProvider(log, metrics, "voicelist"), system, prompt)
//
// A missing API key never fails construction. The adapter reports itself
// unavailable and every call returns ErrMissingAPIKey.
package llm
