package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
)

// Modes the serving handler can be configured with. ModeHTML restricts
// serving to HTML files, ModeIsolated injects cross-origin isolation
// headers on every response and serves any regular file under the root.
const (
	ModeHTML     = "html"
	ModeIsolated = "isolated"
)

// Config stores all the config options relevant to the htmlpages server.
type Config struct {
	General  General
	Listener Listener
	Log      Log
	Sentry   Sentry

	ShowVersion bool
}

// General groups settings that apply to the serving handler.
type General struct {
	// RootDir is the served root as given on the command line. It is
	// canonicalized during validation.
	RootDir string
	Mode    string

	StatusPath     string
	MetricsAddress string

	CustomHeaders []string
}

// Listener groups settings related to the HTTP listener.
type Listener struct {
	Host string
	Port int
}

// Log groups settings related to configuring logging.
type Log struct {
	Format  string
	Verbose bool
	File    string
}

// Sentry groups settings related to configuring Sentry.
type Sentry struct {
	DSN         string
	Environment string
}

// Addr returns the host:port the HTTP listener binds to.
func (config *Config) Addr() string {
	return net.JoinHostPort(config.Listener.Host, strconv.Itoa(config.Listener.Port))
}

// URL returns the base URL the server is reachable on, for the startup
// banner.
func (config *Config) URL() string {
	return fmt.Sprintf("http://%s/", config.Addr())
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			RootDir:        *directory,
			Mode:           *mode,
			StatusPath:     *statusPath,
			MetricsAddress: *metricsAddress,
			CustomHeaders:  header.Split(),
		},
		Listener: Listener{
			Host: *host,
			Port: *port,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
			File:    *logFile,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},
		ShowVersion: *showVersion,
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	// The served root is fixed for the process lifetime. Resolve it once
	// so every containment check compares against a canonical path.
	rootDir, err := filepath.Abs(config.General.RootDir)
	if err != nil {
		return nil, err
	}

	rootDir, err = filepath.EvalSymlinks(rootDir)
	if err != nil {
		return nil, err
	}

	config.General.RootDir = rootDir

	return config, nil
}

// LoadConfig parses configuration from command line flags, the environment
// or a config file and validates it.
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
