package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Reporter is the diagnostic hook shared by the text engine. Contract and
// consistency violations are reported here and execution continues.
type Reporter interface {
	Warning(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Fatal(msg string, keysAndValues ...interface{})
}

type zapReporter struct {
	component string
}

// Default returns the Reporter backed by the global zap logger. It is safe
// to use before Init; reports are dropped until a logger exists.
func Default() Reporter {
	return For("")
}

// For returns a Reporter that logs under the named component.
func For(component string) Reporter {
	return zapReporter{component: component}
}

func (r zapReporter) log() *zap.SugaredLogger {
	if r.component == "" {
		return S
	}
	return Named(r.component)
}

func (r zapReporter) Warning(msg string, keysAndValues ...interface{}) {
	r.log().Warnw(msg, keysAndValues...)
}

func (r zapReporter) Error(msg string, keysAndValues ...interface{}) {
	r.log().Errorw(msg, keysAndValues...)
}

// Fatal logs at DPanic level with a stack trace. Outside development
// builds zap does not panic there, and the engine never exits on its own.
func (r zapReporter) Fatal(msg string, keysAndValues ...interface{}) {
	r.log().DPanicw(msg, keysAndValues...)
}

// Level of a recorded report.
type Level int

const (
	LevelWarning Level = iota
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "fatal"
	}
}

// Report is a single entry kept by a Recorder.
type Report struct {
	Level Level
	Msg   string
	Args  []interface{}
}

func (r Report) String() string {
	if len(r.Args) == 0 {
		return r.Level.String() + ": " + r.Msg
	}
	return fmt.Sprintf("%s: %s %v", r.Level, r.Msg, r.Args)
}

// Recorder keeps reports in memory and forwards them to an optional next
// Reporter. The app uses it to surface the latest diagnostic in the status
// line.
type Recorder struct {
	mu      sync.Mutex
	next    Reporter
	reports []Report
}

func NewRecorder(next Reporter) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) add(level Level, msg string, args []interface{}) {
	r.mu.Lock()
	r.reports = append(r.reports, Report{Level: level, Msg: msg, Args: args})
	r.mu.Unlock()
}

func (r *Recorder) Warning(msg string, keysAndValues ...interface{}) {
	r.add(LevelWarning, msg, keysAndValues)
	if r.next != nil {
		r.next.Warning(msg, keysAndValues...)
	}
}

func (r *Recorder) Error(msg string, keysAndValues ...interface{}) {
	r.add(LevelError, msg, keysAndValues)
	if r.next != nil {
		r.next.Error(msg, keysAndValues...)
	}
}

func (r *Recorder) Fatal(msg string, keysAndValues ...interface{}) {
	r.add(LevelFatal, msg, keysAndValues)
	if r.next != nil {
		r.next.Fatal(msg, keysAndValues...)
	}
}

// Reports returns a copy of everything recorded so far.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Last returns the most recent report.
func (r *Recorder) Last() (Report, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reports) == 0 {
		return Report{}, false
	}
	return r.reports[len(r.reports)-1], true
}
