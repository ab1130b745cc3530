// Package resilience holds the retry loop and circuit breaker used by
// outbound clients. Both are opt-in: httpclient.Config wires them when the
// LLM configuration enables them, and speech-to-text calls run without
// either.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("gemini"))
//	text, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() (string, error) {
//	    var out string
//	    err := cb.Execute(func() (callErr error) { out, callErr = complete(ctx); return })
//	    return out, err
//	})
package resilience
