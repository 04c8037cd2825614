package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (suite *LoggerTestSuite) SetupSuite() {
	suite.originalLogger = zap.L()
}

func (suite *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(suite.originalLogger)
}

func (suite *LoggerTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	suite.observedLogs = logs
	zap.ReplaceGlobals(zap.New(core))
}

func (suite *LoggerTestSuite) TestGetLogLevelFromString() {
	testCases := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"info mixed case", "Info", zapcore.InfoLevel},
		{"warn uppercase", "WARN", zapcore.WarnLevel},
		{"error short", "err", zapcore.ErrorLevel},
		{"warning full", "warning", zapcore.WarnLevel},
		{"dpanic", "dpanic", zapcore.DPanicLevel},
		{"fatal", "fatal", zapcore.FatalLevel},
		{"with spaces", "  debug  ", zapcore.DebugLevel},
		{"empty string", "", zapcore.InfoLevel},
		{"invalid level", "verbose", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, getLogLevelFromString(tc.input))
		})
	}
}

func (suite *LoggerTestSuite) TestLoggingFunctions() {
	testCases := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{"LogDebug", func() { LogDebug("debug message") }, zapcore.DebugLevel, "debug message"},
		{"LogInfo", func() { LogInfo("info message") }, zapcore.InfoLevel, "info message"},
		{"LogWarn", func() { LogWarn("warn message") }, zapcore.WarnLevel, "warn message"},
		{"LogError", func() { LogError("error message") }, zapcore.ErrorLevel, "error message"},
		{"LogInfof with args", func() { LogInfof("user %s has role %s", "42", "admin") }, zapcore.InfoLevel, "user 42 has role admin"},
		{"LogWarnf without args", func() { LogWarnf("plain message") }, zapcore.WarnLevel, "plain message"},
		{"LogErrorf with args", func() { LogErrorf("request failed: %d", 500) }, zapcore.ErrorLevel, "request failed: 500"},
		{"LogDebugf with args", func() { LogDebugf("GET %s", "/subjects") }, zapcore.DebugLevel, "GET /subjects"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.observedLogs.TakeAll()

			tc.logFunc()

			logs := suite.observedLogs.All()
			require.Len(suite.T(), logs, 1)
			assert.Equal(suite.T(), tc.level, logs[0].Level)
			assert.Equal(suite.T(), tc.message, logs[0].Message)
		})
	}
}

func (suite *LoggerTestSuite) TestLoggingWithFields() {
	LogInfo("login", zap.String("user_id", "42"), zap.String("role", "admin"))

	logs := suite.observedLogs.All()
	require.Len(suite.T(), logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(suite.T(), "42", fields["user_id"])
	assert.Equal(suite.T(), "admin", fields["role"])
}

func (suite *LoggerTestSuite) TestInitWritesToConfiguredPath() {
	path := filepath.Join(suite.T().TempDir(), "client.log")

	require.NoError(suite.T(), Init(&Config{
		Level:       "debug",
		Env:         "test",
		ServiceName: "quizctl",
		OutputPaths: []string{path},
	}))
	LogInfo("written to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), strings.Contains(string(data), `"msg":"written to file"`))
	assert.True(suite.T(), strings.Contains(string(data), `"service":"quizctl"`))
}

func (suite *LoggerTestSuite) TestInitConsoleEncoding() {
	path := filepath.Join(suite.T().TempDir(), "console.log")

	require.NoError(suite.T(), Init(&Config{
		Level:       "info",
		Encoding:    "CONSOLE",
		OutputPaths: []string{path},
	}))
	LogInfo("human readable")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(data), "INFO")
	assert.Contains(suite.T(), string(data), "human readable")
	assert.NotContains(suite.T(), string(data), `"msg"`)
}

func (suite *LoggerTestSuite) TestInitWithEmptyConfig() {
	require.NotPanics(suite.T(), func() {
		require.NoError(suite.T(), Init(&Config{}))
		LogInfo("defaults")
	})
}

func (suite *LoggerTestSuite) TestInitRejectsUnopenablePath() {
	err := Init(&Config{OutputPaths: []string{filepath.Join(suite.T().TempDir(), "missing", "dir", "x.log")}})
	assert.Error(suite.T(), err)
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func BenchmarkLogInfof(b *testing.B) {
	zap.ReplaceGlobals(zap.NewNop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		LogInfof("benchmark message %d", i)
	}
}
