// Package transcription defines the speech-to-text provider contract.
//
// Backends live in sub-packages (transcription/groq). Failures surface as
// *Error, which tells an upstream rejection (status and body) apart from a
// transport failure (cause).
//
//	p := transcription.WithMiddleware(groq.NewProvider(cfg),
//	    provider.WithLogging[transcription.Request, *transcription.Response](log),
//	)
//	resp, err := p.Transcribe(ctx, transcription.Request{AudioPath: path})
package transcription
