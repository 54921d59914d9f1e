// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ik5/podsplice/internal/config"
)

// newLogger builds the command logger. The level and format were validated
// with the configuration; verbose forces debug.
func newLogger(cfg config.LoggingConfig, verbose bool, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableTimestamp: false,
		})
	}
	return logger
}
