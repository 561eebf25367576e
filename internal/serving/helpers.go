package serving

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const htmlContentType = "text/html; charset=utf-8"

// openNoFollow guards against the final path component being swapped for a
// symlink between resolution and open.
func openNoFollow(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|unix.O_NOFOLLOW, 0)
}

// Detect file's content-type either by extension or mime-sniffing.
func detectContentType(path string, content []byte) string {
	contentType := mime.TypeByExtension(filepath.Ext(path))

	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	return contentType
}
