package headers

import (
	"bufio"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
)

var errInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// NoCache is the header set disabling client caching of responses.
var NoCache = http.Header{
	"Cache-Control": {"no-cache, no-store, must-revalidate"},
	"Pragma":        {"no-cache"},
	"Expires":       {"0"},
}

// CrossOriginIsolation is the header set enabling isolated browsing
// contexts, required for browser memory-sharing APIs.
var CrossOriginIsolation = http.Header{
	"Cross-Origin-Opener-Policy":   {"same-origin"},
	"Cross-Origin-Embedder-Policy": {"require-corp"},
	"Cross-Origin-Resource-Policy": {"same-origin"},
	"X-Content-Type-Options":       {"nosniff"},
}

// SetHeaders sets a map of headers on a response, replacing any values
// already present. Used for the fixed policy header sets so repeated
// application stays idempotent.
func SetHeaders(w http.ResponseWriter, headers http.Header) {
	for k, v := range headers {
		w.Header()[k] = append([]string(nil), v...)
	}
}

// AddCustomHeaders adds a map of Headers to a Response
func AddCustomHeaders(w http.ResponseWriter, headers http.Header) {
	for k, v := range headers {
		for _, value := range v {
			w.Header().Add(k, value)
		}
	}
}

// Merge combines several header sets into one. Later sets win on key
// conflicts.
func Merge(sets ...http.Header) http.Header {
	merged := http.Header{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = append([]string(nil), v...)
		}
	}
	return merged
}

// ParseHeaderString parses a string of key values into a map
func ParseHeaderString(customHeaders []string) (http.Header, error) {
	headers := http.Header{}
	for _, keyValueString := range customHeaders {
		keyValueString = strings.TrimSpace(keyValueString) + "\n\n"
		tp := textproto.NewReader(bufio.NewReader(strings.NewReader(keyValueString)))
		keyValue, err := tp.ReadMIMEHeader()
		if err != nil {
			return nil, errInvalidHeaderParameter
		}

		for k, v := range keyValue {
			k = textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(k))
			headers[k] = append(headers[k], v...)
		}
	}
	return headers, nil
}
