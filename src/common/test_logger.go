package common

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestLogLevelEnv names the environment variable that overrides the level of
// test loggers, e.g. ITBL_TEST_LOG=warn go test ./...
const TestLogLevelEnv = "ITBL_TEST_LOG"

// testWriter sends every log line to t.Log, so output only shows for failed
// or verbose tests.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// NewTestLogger returns a logger writing to t.Log, at debug level unless
// TestLogLevelEnv says otherwise.
func NewTestLogger(t testing.TB) *logrus.Logger {
	logger := logrus.New()
	logger.Out = testWriter{t: t}
	logger.Level = logrus.DebugLevel

	if l, err := logrus.ParseLevel(os.Getenv(TestLogLevelEnv)); err == nil {
		logger.Level = l
	}

	return logger
}

// NewTestEntry is NewTestLogger with a prefix field, the shape components
// expect.
func NewTestEntry(t testing.TB, prefix string) *logrus.Entry {
	return NewTestLogger(t).WithField("prefix", prefix)
}
