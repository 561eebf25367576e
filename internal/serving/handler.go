package serving

import (
	"io"
	"net/http"
	"strconv"

	"gitlab.com/htmlpages/htmlpages/internal/headers"
	"gitlab.com/htmlpages/htmlpages/internal/httperrors"
	"gitlab.com/htmlpages/htmlpages/internal/logging"
	"gitlab.com/htmlpages/htmlpages/metrics"
)

// Handler serves files from a single served root according to a Policy.
// The root path must be canonical (absolute, symlinks resolved); it is the
// only state shared between requests and is never mutated.
type Handler struct {
	rootPath string
	policy   Policy
}

// NewHandler returns a Handler serving from the canonical rootPath.
func NewHandler(rootPath string, policy Policy) *Handler {
	return &Handler{rootPath: rootPath, policy: policy}
}

// ServeHTTP maps the request path to a file system action: serve the index,
// serve a file, or reject.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Policy headers apply uniformly, whether the response turns out to be
	// the index, a file or an error page.
	headers.SetHeaders(w, h.policy.ExtraHeaders)

	// r.URL.Path arrives percent-decoded with the query string split off.
	if r.URL.Path == "/" {
		h.serveIndex(w, r)
		return
	}

	fullPath, err := resolveFilePath(h.rootPath, r.URL.Path)
	switch err {
	case nil:
	case errOutsideServedRoot:
		logging.LogRequest(r).Warn("request escapes served root")
		httperrors.Serve403AccessDenied(w)
		return
	case errFileNotFound:
		httperrors.Serve404(w)
		return
	case errNotRegularFile:
		httperrors.Serve403NotAFile(w)
		return
	default:
		httperrors.Serve500WithRequest(w, r, "error resolving path", err)
		return
	}

	if !h.policy.extensionAllowed(fullPath) {
		httperrors.Serve403OnlyHTML(w)
		return
	}

	h.serveFile(w, r, fullPath)
}

// serveFile reads the file whole and writes it out with its exact byte
// length. There is no streaming path; large files are fully buffered.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, fullPath string) {
	file, err := openNoFollow(fullPath)
	if err != nil {
		httperrors.Serve500WithRequest(w, r, "error opening file", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		httperrors.Serve500WithRequest(w, r, "error reading file", err)
		return
	}

	contentType := htmlContentType
	if h.policy.DetectContentType {
		contentType = detectContentType(fullPath, content)
	}

	metrics.ServingFileSize.Observe(float64(len(content)))

	headers.SetHeaders(w, headers.NoCache)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		logging.LogRequest(r).WithError(err).Debug("failed to write response")
	}
}
