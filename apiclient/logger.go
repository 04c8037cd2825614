package apiclient

import (
	"github.com/octabyte/quizmaster-client/utils/logger"
)

// restyLogger routes resty's own diagnostics to the global zap logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.LogErrorf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.LogWarnf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.LogDebugf(format, v...)
}
