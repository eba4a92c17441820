package observability

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger tagged with the component emitting it, so
// interleaved worker and CLI output stays attributable.
func NewLogger(component string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if os.Getenv("QUEUECTL_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger.WithField("component", component)
}
