// Package logging holds the logger shared by all hilite packages.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLogger is the logger all packages derive their subsystem loggers from.
// Nothing below warnings is printed unless SetLevel is called.
var DefaultLogger = initDefaultLogger()

func initDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// SetLevel changes the level of DefaultLogger.
func SetLevel(level logrus.Level) {
	DefaultLogger.SetLevel(level)
}

// SetDebug switches DefaultLogger between debug and warning levels.
func SetDebug(debug bool) {
	if debug {
		SetLevel(logrus.DebugLevel)
	} else {
		SetLevel(logrus.WarnLevel)
	}
}

// SetOutput redirects DefaultLogger output.
func SetOutput(w io.Writer) {
	DefaultLogger.SetOutput(w)
}
