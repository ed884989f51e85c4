package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// Init replaces the no-op logger. "production" logs JSON at info level,
// anything else logs human readable output at debug level.
func Init(env string) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return
	}
	log = l.Sugar()
}

// Set swaps the underlying logger, mostly for tests.
func Set(l *zap.Logger) {
	log = l.Sugar()
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, args ...interface{}) {
	log.Debugw(msg, keyvals(args)...)
}

func Info(msg string, args ...interface{}) {
	log.Infow(msg, keyvals(args)...)
}

func Warn(msg string, args ...interface{}) {
	log.Warnw(msg, keyvals(args)...)
}

func Error(msg string, args ...interface{}) {
	log.Errorw(msg, keyvals(args)...)
}

func Fatal(msg string, args ...interface{}) {
	log.Fatalw(msg, keyvals(args)...)
}

// keyvals accepts both key/value pairs and bare errors, e.g.
// logger.Error("load failed", err) or logger.Error("load failed", "error", err).
func keyvals(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
			continue
		}
		if _, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, args[i], args[i+1])
			i++
			continue
		}
		out = append(out, "extra", args[i])
	}
	return out
}
