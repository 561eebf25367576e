package headers

import (
	"net/http"
)

// NewMiddleware returns middleware which injects custom headers into the
// response
func NewMiddleware(handler http.Handler, headers http.Header) http.Handler {
	if len(headers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddCustomHeaders(w, headers)

		handler.ServeHTTP(w, r)
	})
}

// NewPolicyMiddleware returns middleware which sets a fixed header set on
// every response, replacing existing values. Setting instead of adding
// keeps repeated application idempotent.
func NewPolicyMiddleware(handler http.Handler, headers http.Header) http.Handler {
	if len(headers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetHeaders(w, headers)

		handler.ServeHTTP(w, r)
	})
}
