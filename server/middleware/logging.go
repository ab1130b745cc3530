package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/voicelist/logger"
)

// slowRequest flags uploads whose transcription plus extraction ran long.
const slowRequest = 30 * time.Second

// probePaths are polled by orchestrators and never logged.
var probePaths = map[string]bool{"/health": true, "/info": true}

// RequestLogger writes one "Request completed" line per request: error for
// 5xx, warn for 4xx, debug otherwise.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			fields := logger.Fields(
				"method", r.Method,
				"path", r.URL.Path,
				"bytes", sw.written,
				logger.FieldStatus, sw.status,
				logger.FieldDuration, elapsed.Milliseconds(),
			)
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields[logger.FieldRequestID] = id
			}
			if elapsed > slowRequest {
				fields["slow"] = true
			}
			levelFor(log, sw.status)("Request completed", fields)
		})
	}
}

func levelFor(log *logger.Logger, status int) func(string, ...map[string]interface{}) {
	switch status / 100 {
	case 5:
		return log.Error
	case 4:
		return log.Warn
	}
	return log.Debug
}
