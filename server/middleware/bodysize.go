package middleware

import (
	"net/http"

	apperrors "github.com/kbukum/voicelist/errors"
	"github.com/kbukum/voicelist/util"
)

const defaultMaxBodySize = 25 << 20

// BodySizeLimit enforces maxSize, a human size such as "25MB". A declared
// Content-Length over the limit gets 413 before the handler runs. Chunked
// uploads are wrapped in http.MaxBytesReader and surface
// *http.MaxBytesError to whoever reads the body.
func BodySizeLimit(maxSize string) Middleware {
	limit := util.ParseSize(maxSize, defaultMaxBodySize)
	tooLarge := apperrors.PayloadTooLarge(maxSize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSON(w, tooLarge.HTTPStatus, tooLarge.ToResponse())
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
