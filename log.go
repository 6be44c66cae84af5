package contour

import (
	"io"

	"github.com/sirupsen/logrus"
)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.PanicLevel
	return l
}()

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return discardLogger
	}
	return l
}
