package rejectmethods

import (
	"net/http"

	"gitlab.com/htmlpages/htmlpages/internal/httperrors"
)

// NewMiddleware returns middleware which rejects every method except GET,
// the only method the server acts upon
func NewMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httperrors.Serve405(w)
			return
		}

		handler.ServeHTTP(w, r)
	})
}
