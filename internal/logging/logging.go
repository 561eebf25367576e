package logging

import (
	"io"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/log"
)

// accessOutput is shared with the access logger so access log lines end up
// in the same sinks as everything else.
var accessOutput io.Writer = os.Stderr

// ConfigureLogging will initialize the system logger. Log lines are written
// to stderr and, when logFile is non-empty, appended to that file as well.
func ConfigureLogging(format string, verbose bool, logFile string) error {
	out := io.Writer(os.Stderr)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}

		out = io.MultiWriter(os.Stderr, f)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(out)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	accessOutput = out

	return nil
}

// getAccessLogger will return the default logger, except when
// the log format is text, in which case a combined HTTP access
// logger will be configured
func getAccessLogger(format string) (*logrus.Logger, error) {
	if format != "text" && format != "" {
		return logrus.StandardLogger(), nil
	}

	accessLogger := log.New()
	_, err := log.Initialize(
		log.WithLogger(accessLogger),  // Configure `accessLogger`
		log.WithFormatter("combined"), // Use the combined formatter
	)
	if err != nil {
		return nil, err
	}

	accessLogger.SetOutput(accessOutput)

	return accessLogger, nil
}

// AccessLogger configures the basic HTTP access logger middleware
func AccessLogger(handler http.Handler, format string, extraFields log.ExtraFieldsGeneratorFunc) (http.Handler, error) {
	accessLogger, err := getAccessLogger(format)
	if err != nil {
		return nil, err
	}

	if extraFields == nil {
		extraFields = func(r *http.Request) log.Fields { return log.Fields{} }
	}

	return log.AccessLogger(handler,
		log.WithExtraFields(extraFields),
		log.WithAccessLogger(accessLogger),
		log.WithXFFAllowed(func(sip string) bool { return false }),
	), nil
}

// LogRequest will inject request host and path to the logged messages
func LogRequest(r *http.Request) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"host":   r.Host,
		"method": r.Method,
		"path":   r.URL.Path,
	})
}
