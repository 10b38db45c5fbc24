package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例；InitLogger 之前也可直接使用 (输出到 stderr，info 级别)
var Log = newLogger(os.Stderr, logrus.InfoLevel)

// CustomFormatter 自定义日志格式: [TIME] [LEVL] [FILE:LINE] MSG k=v...
type CustomFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	// 对齐级别长度，例如 INFO, WARN, ERRO
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] [%s] %s",
		entry.Time.Format("2006-01-02 15:04:05"), level, fileLine, entry.Message)

	// WithField 附带的字段按 key 排序输出，便于 grep
	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
		}
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&CustomFormatter{})
	l.SetLevel(level)
	l.SetOutput(out)
	return l
}

// InitLogger 初始化日志：同时输出到 stderr 和文件 (filePath 为空则只输出到 stderr)。
// stdout 留给报告输出。
func InitLogger(levelStr string, filePath string) error {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel // 默认级别
	}

	writers := []io.Writer{os.Stderr}
	if filePath != "" {
		// 确保日志目录存在
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	Log = newLogger(io.MultiWriter(writers...), level)
	return nil
}
