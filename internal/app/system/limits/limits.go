// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxFormSize bounds employee form, selection and confirmation posts.
	// Confirmation answers carry the whole form payload back, so this
	// leaves room for several times the largest valid form.
	MaxFormSize = 64 << 10 // 64 KB
)

// Body caps the request body at n bytes. Reading past the cap fails, so
// form parsing sees an error instead of the rest of the body.
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
