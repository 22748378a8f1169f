// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size of a JSON request body. Project
	// descriptions are capped at 5000 characters, so this is generous.
	MaxJSONBody = 1 << 20 // 1 MB
)

// Body caps every request body at n bytes. Reads beyond the cap fail,
// which the JSON decoders surface as a malformed body.
func Body(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
