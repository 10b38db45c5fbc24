package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	l := logrus.New()
	entry := logrus.NewEntry(l).WithFields(logrus.Fields{"workflow": "scout", "b": 1})
	entry.Level = logrus.WarnLevel
	entry.Message = "搜索失败"

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "[WARN]")
	assert.Contains(t, line, "搜索失败 b=1 workflow=scout\n")
}

func TestCustomFormatterTruncatesLevel(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.ErrorLevel
	entry.Message = "boom"

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[ERRO]")
}

func TestInitLoggerWritesFile(t *testing.T) {
	old := Log
	t.Cleanup(func() { Log = old })

	path := filepath.Join(t.TempDir(), "logs", "gap.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Log.Debug("hello file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.Contains(t, string(data), "logger_test.go")
}

func TestInitLoggerBadLevelFallsBackToInfo(t *testing.T) {
	old := Log
	t.Cleanup(func() { Log = old })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
