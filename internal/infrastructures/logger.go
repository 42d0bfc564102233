package infrastructures

import (
	"github.com/sirupsen/logrus"
)

// All components log through the logrus standard logger, so the JSON
// formatter is installed there once at package load.
func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
}
