package config

import (
	"github.com/namsral/flag"
)

var (
	port = flag.Int("port", 8001, "The port to serve on")
	host = flag.String("host", "localhost", "The host to bind to")

	directory = flag.String("directory", ".", "The directory to serve files from")

	mode = flag.String("mode", ModeHTML,
		"Serving mode: 'html' serves only HTML files, 'isolated' adds cross-origin isolation headers and serves any file under the served root")

	statusPath     = flag.String("status-path", "", "The url path for a status page, e.g., /@status, empty to disable")
	metricsAddress = flag.String("metrics-address", "", "The address to listen on for metrics requests, empty to disable")

	logFormat  = flag.String("log-format", "text", "The log output format: 'text' or 'json'")
	logVerbose = flag.Bool("log-verbose", false, "Verbose logging")
	logFile    = flag.String("log-file", "server.log", "File to append log lines to in addition to stderr, empty to disable")

	sentryDSN         = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnvironment = flag.String("sentry-environment", "", "The environment for sentry crash reporting")

	showVersion = flag.Bool("version", false, "Show version")

	// See initFlags()
	header = MultiStringFlag{separator: ";;"}
)

// initFlags will be called from LoadConfig
func initFlags() {
	// Short aliases kept for compatibility with the common -p/-d spelling.
	flag.IntVar(port, "p", *port, "The port to serve on (shorthand)")
	flag.StringVar(directory, "d", *directory, "The directory to serve files from (shorthand)")

	flag.Var(&header, "header", "The additional http header(s) that should be send to the client")

	// read from -config=/path/to/htmlpages-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}
