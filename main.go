package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	mimedb "gitlab.com/gitlab-org/go-mimedb"
	"gitlab.com/gitlab-org/labkit/errortracking"

	"gitlab.com/htmlpages/htmlpages/internal/config"
	"gitlab.com/htmlpages/htmlpages/internal/logging"
	"gitlab.com/htmlpages/htmlpages/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(sentryDSN, sentryEnvironment string) {
	errortracking.Initialize(
		errortracking.WithSentryDSN(sentryDSN),
		errortracking.WithVersion(fmt.Sprintf("%s-%s", VERSION, REVISION)),
		errortracking.WithLoggerName("htmlpages"),
		errortracking.WithSentryEnvironment(sentryEnvironment))
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func appMain() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(cfg.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(cfg.Log.Format, cfg.Log.Verbose, cfg.Log.File); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	if cfg.Sentry.DSN != "" {
		initErrorReporting(cfg.Sentry.DSN, cfg.Sentry.Environment)
	}

	// The isolated mode serves arbitrary file types, give it the extended
	// MIME database.
	if cfg.General.Mode == config.ModeIsolated {
		if err := mimedb.LoadTypes(); err != nil {
			log.WithError(err).Warn("Loading extended MIME database failed")
		}
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("HTML Pages Daemon")

	log.WithFields(log.Fields{
		"directory": cfg.General.RootDir,
		"url":       cfg.URL(),
		"mode":      cfg.General.Mode,
	}).Info("Starting HTTP server")

	if cfg.General.Mode == config.ModeHTML {
		log.Info("Only HTML files will be served")
	}

	if cfg.Log.File != "" {
		log.WithField("file", cfg.Log.File).Info("Log lines are appended to file")
	}

	if err := runApp(cfg); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}
