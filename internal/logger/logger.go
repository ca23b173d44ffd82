package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       = zap.NewNop()
	S       = L.Sugar()
	logFile *os.File
)

// Init starts logging to the state directory, next to the session file.
// The previous run's log is kept as qtext.log.1.
func Init(debug bool) error {
	logPath, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(logPath); err == nil {
		_ = os.Rename(logPath, logPath+".1")
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), level)

	logFile = f
	L = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.DPanicLevel)).Named("qtext")
	S = L.Sugar()
	S.Infow("logger initialized", "path", logPath, "debug", debug, "pid", os.Getpid())
	return nil
}

// Close flushes the log and goes back to discarding output.
func Close() {
	_ = L.Sync()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	L = zap.NewNop()
	S = L.Sugar()
}

// Path is where Init writes. QTEXT_LOG_FILE overrides the default of
// $XDG_STATE_HOME/qtext/qtext.log.
func Path() (string, error) {
	if v := os.Getenv("QTEXT_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "qtext", "qtext.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "qtext", "qtext.log"), nil
}

// Named returns the logger of one component, such as "display" or
// "textbuf".
func Named(component string) *zap.SugaredLogger {
	return S.Named(component)
}

func Debug(msg string, keysAndValues ...interface{}) {
	S.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	S.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	S.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	S.Errorw(msg, keysAndValues...)
}
