package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// 未初始化时使用丢弃所有输出的 logger，Init 之后原子替换
var current atomic.Pointer[zerolog.Logger]

func init() {
	discard := zerolog.New(io.Discard)
	current.Store(&discard)
}

// Init 初始化 zerolog 日志
// level: 日志级别 ("debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台
// console: 是否输出到控制台；TUI 模式下终端由界面占用，需关闭
func Init(level string, file string, console bool) error {
	var logLevel zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	var writers []io.Writer
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"})
	}

	if file != "" {
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: fileWriter, TimeFormat: "2006-01-02 15:04:05", NoColor: true})
	}

	var output io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	logger := log.Output(output).With().Timestamp().Logger().Level(logLevel)

	current.Store(&logger)
	return nil
}

// Get 返回全局 logger 实例，可在多个 goroutine 中并发调用
func Get() *zerolog.Logger {
	return current.Load()
}
