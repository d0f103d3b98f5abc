package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit tests would fail with a nil pointer dereference if we
// don't init here.
func init() {
	InitLogger("info", "development")
}

// InitLogger configures the global logger. Safe to call more than once.
func InitLogger(level, environment string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger.WithFields(logrus.Fields{
		"service": "ember-backend",
	})
}
