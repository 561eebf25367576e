package testhelpers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// BuildServedRoot creates a temporary served root populated with the given
// files and returns its canonical path.
func BuildServedRoot(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	// t.TempDir may live behind a symlink (e.g. /tmp on darwin). Resolve it
	// so containment checks compare canonical paths.
	canonical, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	return canonical
}

// AssertErrorPage verifies a recorded error response carries the expected
// status, the minimal HTML error page and a link back to the index.
func AssertErrorPage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	require.Equal(t, status, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), message)
	require.Contains(t, w.Body.String(), `<a href="/">Back to index</a>`)
}
