package middleware

import "net/http"

// BodyLimit caps request bodies on the mutating verbs. The multipart employee
// upload is the largest legitimate payload, so the cap tracks MAX_BODY_BYTES
// rather than a per-route figure; an oversized read fails inside the handler's
// body parse.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				switch r.Method {
				case http.MethodPost, http.MethodPut, http.MethodPatch:
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
