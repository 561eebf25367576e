package serving

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/htmlpages/htmlpages/internal/testhelpers"
)

func TestResolveFilePath(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"index.html":        "<html>index</html>",
		"sub/page.html":     "<html>page</html>",
		"index.html.backup": "backup",
	})

	// Secrets live in a sibling directory outside the served root.
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.html"), []byte("secret"), 0644))

	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.html"), filepath.Join(root, "inside-link.html")))

	tests := map[string]struct {
		urlPath      string
		expectedPath string
		expectedErr  error
	}{
		"file in root": {
			urlPath:      "/index.html",
			expectedPath: filepath.Join(root, "index.html"),
		},
		"file in subdirectory": {
			urlPath:      "/sub/page.html",
			expectedPath: filepath.Join(root, "sub/page.html"),
		},
		"missing file": {
			urlPath:     "/missing.html",
			expectedErr: errFileNotFound,
		},
		"directory": {
			urlPath:     "/sub",
			expectedErr: errNotRegularFile,
		},
		"root via dot segments": {
			urlPath:     "/sub/..",
			expectedErr: errNotRegularFile,
		},
		"traversal to existing file": {
			urlPath:     "/../" + filepath.Base(outside) + "/secret.html",
			expectedErr: errOutsideServedRoot,
		},
		"traversal to missing file": {
			urlPath:     "/../../../../etc/nonexistent.html",
			expectedErr: errOutsideServedRoot,
		},
		"traversal to missing file via deep prefix": {
			urlPath:     "/sub/../../outside.html",
			expectedErr: errOutsideServedRoot,
		},
		"symlink escaping the root": {
			urlPath:     "/inside-link.html",
			expectedErr: errOutsideServedRoot,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := resolveFilePath(root, tc.urlPath)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedPath, got)
		})
	}
}

func TestResolveFilePathSiblingPrefixDirectory(t *testing.T) {
	parent := t.TempDir()

	root := filepath.Join(parent, "served")
	require.NoError(t, os.Mkdir(root, 0755))

	sibling := filepath.Join(parent, "served-secrets")
	require.NoError(t, os.Mkdir(sibling, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sibling, "leak.html"), []byte("leak"), 0644))

	canonical, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	_, err = resolveFilePath(canonical, "/../served-secrets/leak.html")
	require.ErrorIs(t, err, errOutsideServedRoot)
}

func TestResolveFilePathFollowsInternalSymlink(t *testing.T) {
	root := testhelpers.BuildServedRoot(t, map[string]string{
		"real.html": "<html>real</html>",
	})

	require.NoError(t, os.Symlink(filepath.Join(root, "real.html"), filepath.Join(root, "alias.html")))

	got, err := resolveFilePath(root, "/alias.html")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "real.html"), got)
}
