package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide logrus logger. JSON output is for
// production log shipping; the text formatter is friendlier for local runs.
func Init(jsonFormat bool) {
	logrus.SetOutput(os.Stdout)
	if jsonFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(logrus.InfoLevel)
}
