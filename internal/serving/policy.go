package serving

import (
	"net/http"
	"path/filepath"
	"strings"

	"gitlab.com/htmlpages/htmlpages/internal/config"
	"gitlab.com/htmlpages/htmlpages/internal/headers"
)

// Policy parameterizes the serving handler: which files may be served,
// which headers accompany every response and how Content-Type is chosen.
type Policy struct {
	// AllowedExtensions restricts servable files by extension (lower case,
	// with dot). Empty means any regular file under the root is servable.
	AllowedExtensions []string

	// ExtraHeaders are set on every response, whether index, file or error.
	ExtraHeaders http.Header

	// DetectContentType selects extension/sniff based Content-Type
	// detection instead of the fixed HTML content type.
	DetectContentType bool
}

// HTMLOnly serves nothing but HTML files.
var HTMLOnly = Policy{
	AllowedExtensions: []string{".html", ".htm"},
}

// Isolated injects the cross-origin isolation header set uniformly and
// serves any regular file under the root.
var Isolated = Policy{
	ExtraHeaders:      headers.Merge(headers.NoCache, headers.CrossOriginIsolation),
	DetectContentType: true,
}

// ByMode maps a configured mode name to its Policy.
func ByMode(mode string) Policy {
	if mode == config.ModeIsolated {
		return Isolated
	}

	return HTMLOnly
}

func (p Policy) extensionAllowed(path string) bool {
	if len(p.AllowedExtensions) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range p.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}
