package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

var (
	errModeUnknown      = errors.New("mode must be either 'html' or 'isolated'")
	errPortOutOfRange   = errors.New("port must be between 1 and 65535")
	errLogFormatUnknown = errors.New("log-format must be either 'text' or 'json'")
)

func validateConfig(config *Config) error {
	var result *multierror.Error

	if err := validateServedRoot(config.General.RootDir); err != nil {
		result = multierror.Append(result, err)
	}

	if config.General.Mode != ModeHTML && config.General.Mode != ModeIsolated {
		result = multierror.Append(result, errModeUnknown)
	}

	if config.Listener.Port < 1 || config.Listener.Port > 65535 {
		result = multierror.Append(result, errPortOutOfRange)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		result = multierror.Append(result, errLogFormatUnknown)
	}

	return result.ErrorOrNil()
}

func validateServedRoot(rootDir string) error {
	fi, err := os.Stat(rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", rootDir)
		}

		return err
	}

	if !fi.IsDir() {
		return fmt.Errorf("path is not a directory: %s", rootDir)
	}

	return nil
}
