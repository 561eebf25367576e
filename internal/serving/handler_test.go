package serving

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/htmlpages/htmlpages/internal/testhelpers"
)

func serve(t *testing.T, handler *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

	return w
}

func TestServeHTMLFile(t *testing.T) {
	content := "<html><body>hello</body></html>"
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"page.html": content,
	})

	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/page.html")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, content, w.Body.String())
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, strconv.Itoa(len(content)), w.Header().Get("Content-Length"))
	require.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", w.Header().Get("Pragma"))
	require.Equal(t, "0", w.Header().Get("Expires"))
}

func TestServeHTMLFileInSubdirectory(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"docs/guide.html": "<html>guide</html>",
	})

	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/docs/guide.html")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<html>guide</html>", w.Body.String())
}

func TestServeRejectsNonHTML(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"notes.txt":  "plain text",
		"data.json":  `{"a":1}`,
		"page.xhtml": "almost html",
	})

	handler := NewHandler(root, HTMLOnly)

	for _, path := range []string{"/notes.txt", "/data.json", "/page.xhtml"} {
		t.Run(path, func(t *testing.T) {
			w := serve(t, handler, path)
			testhelpers.AssertErrorPage(t, w, http.StatusForbidden, "Only HTML files are allowed")
		})
	}
}

func TestServeUppercaseExtension(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"LOUD.HTML": "<html>loud</html>",
	})

	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/LOUD.HTML")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "<html>loud</html>", w.Body.String())
}

func TestServeMissingFile(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, nil)
	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/missing.html")
	testhelpers.AssertErrorPage(t, w, http.StatusNotFound, "File not found")
}

func TestServeDirectory(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"sub/page.html": "<html>page</html>",
	})

	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/sub")
	testhelpers.AssertErrorPage(t, w, http.StatusForbidden, "Not a file")
}

func TestServeTraversalDenied(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"page.html": "<html>page</html>",
	})

	handler := NewHandler(root, HTMLOnly)

	for _, path := range []string{
		"/../page.html",
		"/../../../../etc/passwd",
		"/..%2f..%2fetc%2fpasswd",
		"/sub/../../escape.html",
	} {
		t.Run(path, func(t *testing.T) {
			w := serve(t, handler, path)
			testhelpers.AssertErrorPage(t, w, http.StatusForbidden, "Access denied")
		})
	}
}

func TestServeSymlinkEscapeDenied(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, nil)

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.html"), []byte("secret"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.html"), filepath.Join(root, "leak.html")))

	handler := NewHandler(root, HTMLOnly)

	w := serve(t, handler, "/leak.html")
	testhelpers.AssertErrorPage(t, w, http.StatusForbidden, "Access denied")
	require.NotContains(t, w.Body.String(), "secret")
}

func TestServeIsolatedModeAnyFile(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"app.json": `{"ok":true}`,
	})

	handler := NewHandler(root, Isolated)

	w := serve(t, handler, "/app.json")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"ok":true}`, w.Body.String())
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "same-origin", w.Header().Get("Cross-Origin-Opener-Policy"))
	require.Equal(t, "require-corp", w.Header().Get("Cross-Origin-Embedder-Policy"))
	require.Equal(t, "same-origin", w.Header().Get("Cross-Origin-Resource-Policy"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
}

func TestServeIsolatedModeErrorCarriesIsolationHeaders(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, nil)
	handler := NewHandler(root, Isolated)

	w := serve(t, handler, "/missing.wasm")

	testhelpers.AssertErrorPage(t, w, http.StatusNotFound, "File not found")
	require.Equal(t, "same-origin", w.Header().Get("Cross-Origin-Opener-Policy"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestServeIsolatedModeSniffsUnknownExtension(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"blob.unknownext": "plain text payload",
	})

	handler := NewHandler(root, Isolated)

	w := serve(t, handler, "/blob.unknownext")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
}
