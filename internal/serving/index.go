package serving

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"gitlab.com/htmlpages/htmlpages/internal/httperrors"
	"gitlab.com/htmlpages/htmlpages/internal/logging"
	"gitlab.com/htmlpages/htmlpages/metrics"
)

// File names are attacker-influenced, so the index goes through
// html/template rather than string concatenation.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>HTML Files</title>
</head>
<body>
    <h1>HTML Files</h1>
    <ul>
{{- range . }}
        <li><a href="/{{ . }}">{{ . }}</a></li>
{{- end }}
    </ul>
</body>
</html>
`))

// serveIndex renders the listing of HTML files directly inside the served
// root, sorted ascending by name.
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	names, err := listHTMLFiles(h.rootPath)
	if err != nil {
		httperrors.Serve500WithRequest(w, r, "error generating index", err)
		return
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, names); err != nil {
		httperrors.Serve500WithRequest(w, r, "error generating index", err)
		return
	}

	metrics.IndexGenerations.Inc()

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		logging.LogRequest(r).WithError(err).Debug("failed to write index response")
	}
}

// listHTMLFiles enumerates the regular files directly inside the root whose
// name ends in .html, non-recursively.
func listHTMLFiles(rootPath string) ([]string, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		// Symlinks are skipped: a link target may resolve outside the
		// served root, and every listed name must be servable.
		if !entry.Type().IsRegular() {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}
