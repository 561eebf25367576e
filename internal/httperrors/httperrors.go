package httperrors

import (
	"fmt"
	"net/http"
	"strconv"

	"gitlab.com/gitlab-org/labkit/errortracking"

	"gitlab.com/htmlpages/htmlpages/internal/logging"
)

type content struct {
	status       int
	title        string
	statusString string
	message      string
}

var (
	content403AccessDenied = content{
		http.StatusForbidden,
		"Access denied (403)",
		"403",
		"Access denied",
	}
	content403NotAFile = content{
		http.StatusForbidden,
		"Not a file (403)",
		"403",
		"Not a file",
	}
	content403OnlyHTML = content{
		http.StatusForbidden,
		"Only HTML files are allowed (403)",
		"403",
		"Only HTML files are allowed",
	}
	content404 = content{
		http.StatusNotFound,
		"File not found (404)",
		"404",
		"File not found",
	}
	content405 = content{
		http.StatusMethodNotAllowed,
		"Method not allowed (405)",
		"405",
		"Method not allowed",
	}
	content500 = content{
		http.StatusInternalServerError,
		"Internal server error (500)",
		"500",
		"Internal server error",
	}
)

const predefinedErrorPage = `<!DOCTYPE html>
<html>
<head>
    <title>%v</title>
</head>
<body>
    <h1>Error %v</h1>
    <p>%v</p>
    <p><a href="/">Back to index</a></p>
</body>
</html>
`

func generateErrorHTML(c content) string {
	return fmt.Sprintf(predefinedErrorPage, c.title, c.statusString, c.message)
}

func serveErrorPage(w http.ResponseWriter, c content) {
	body := generateErrorHTML(c)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(c.status)
	fmt.Fprint(w, body)
}

// Serve403AccessDenied responds to a traversal or containment violation
func Serve403AccessDenied(w http.ResponseWriter) {
	serveErrorPage(w, content403AccessDenied)
}

// Serve403NotAFile responds to a request for an existing path that is not a
// regular file
func Serve403NotAFile(w http.ResponseWriter) {
	serveErrorPage(w, content403NotAFile)
}

// Serve403OnlyHTML responds to a request for a file with a disallowed
// extension
func Serve403OnlyHTML(w http.ResponseWriter) {
	serveErrorPage(w, content403OnlyHTML)
}

// Serve404 returns a 404 error response / HTML page to the http.ResponseWriter
func Serve404(w http.ResponseWriter) {
	serveErrorPage(w, content404)
}

// Serve405 returns a 405 error response / HTML page to the http.ResponseWriter
func Serve405(w http.ResponseWriter) {
	serveErrorPage(w, content405)
}

// Serve500 returns a 500 error response / HTML page to the http.ResponseWriter
func Serve500(w http.ResponseWriter) {
	serveErrorPage(w, content500)
}

// Serve500WithRequest logs the error with request context and returns a 500
// error response / HTML page to the http.ResponseWriter
func Serve500WithRequest(w http.ResponseWriter, r *http.Request, reason string, err error) {
	logging.LogRequest(r).WithError(err).Error(reason)
	errortracking.Capture(err,
		errortracking.WithContext(r.Context()),
		errortracking.WithRequest(r),
		errortracking.WithField("reason", reason))
	serveErrorPage(w, content500)
}
