package serving

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	errFileNotFound      = errors.New("file not found")
	errNotRegularFile    = errors.New("not a regular file")
	errOutsideServedRoot = errors.New("file found outside of served root")
)

// resolveFilePath resolves the decoded URL path against the canonical served
// root and ensures the result stays inside it. Containment is checked on
// canonical paths twice: lexically before touching the file system, so
// traversal sequences pointing at files that do not exist are still
// rejected, and again after resolving symlinks.
func resolveFilePath(rootPath, urlPath string) (string, error) {
	// Ensure the prefix check cannot match sibling directories that merely
	// share the root as a string prefix.
	prefix := strings.TrimSuffix(rootPath, "/") + "/"

	cleanedPath := filepath.Join(rootPath, strings.TrimPrefix(urlPath, "/"))
	if !strings.HasPrefix(cleanedPath, prefix) && cleanedPath != filepath.Clean(rootPath) {
		return "", errOutsideServedRoot
	}

	fullPath, err := filepath.EvalSymlinks(cleanedPath)
	if err != nil {
		return "", errFileNotFound
	}

	// A symlink inside the root may still point outside of it.
	if !strings.HasPrefix(fullPath, prefix) && fullPath != filepath.Clean(rootPath) {
		return "", errOutsideServedRoot
	}

	fi, err := os.Lstat(fullPath)
	if err != nil {
		return "", errFileNotFound
	}

	// Directories and special files such as devices or sockets are not
	// servable content.
	if !fi.Mode().IsRegular() {
		return "", errNotRegularFile
	}

	return fullPath, nil
}
