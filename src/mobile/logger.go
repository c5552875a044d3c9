package mobile

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
	levelOnce  sync.Once
)

// Logger returns the logger shared by every Client of the process. It writes
// JSON, which mobile log viewers display as one line per entry.
func Logger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		}
		logger.Level = logrus.InfoLevel
	})
	return logger
}

// setLoggerLevel applies the level of the first configured Client to the
// shared logger. Later calls leave it unchanged so that one Client cannot
// alter the logging of another.
func setLoggerLevel(level logrus.Level) *logrus.Logger {
	l := Logger()
	levelOnce.Do(func() {
		l.SetLevel(level)
	})
	return l
}
