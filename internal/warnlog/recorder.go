// Package warnlog captures warnings emitted through a logr.Logger.
package warnlog

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
)

// Warning is one captured warning. Args holds the message followed by any
// string arguments that accompanied it.
type Warning struct {
	Args []string
}

// Recorder is a logr.LogSink that keeps every V(0) record as a Warning.
// Verbose records are passed to Forward when it is set.
type Recorder struct {
	Forward logr.Logger

	mu       sync.Mutex
	warnings []Warning
}

var _ logr.LogSink = (*Recorder)(nil)

// NewRecorder returns an empty Recorder that discards verbose output.
func NewRecorder() *Recorder {
	return &Recorder{Forward: logr.Discard()}
}

// Logger returns a logger writing into r.
func (r *Recorder) Logger() logr.Logger {
	return logr.New(r)
}

// Warnings returns a copy of the captured warnings in emission order.
func (r *Recorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Reset drops every captured warning.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.warnings = nil
	r.mu.Unlock()
}

func (r *Recorder) Init(logr.RuntimeInfo) {}

// Enabled accepts every level so verbose records can be forwarded.
func (r *Recorder) Enabled(int) bool { return true }

func (r *Recorder) Info(level int, msg string, kv ...any) {
	if level > 0 {
		r.forward().V(level).Info(msg, kv...)
		return
	}
	r.record(msg, kv)
}

func (r *Recorder) Error(err error, msg string, kv ...any) {
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	r.record(msg, kv)
}

func (r *Recorder) WithValues(...any) logr.LogSink {
	return r
}

func (r *Recorder) WithName(string) logr.LogSink {
	return r
}

func (r *Recorder) forward() logr.Logger {
	if r.Forward.GetSink() == nil {
		return logr.Discard()
	}
	return r.Forward
}

func (r *Recorder) record(msg string, kv []any) {
	w := Warning{Args: []string{msg}}
	for i := 1; i < len(kv); i += 2 {
		switch v := kv[i].(type) {
		case string:
			w.Args = append(w.Args, v)
		case []string:
			w.Args = append(w.Args, v...)
		case fmt.Stringer:
			w.Args = append(w.Args, v.String())
		}
	}
	r.mu.Lock()
	r.warnings = append(r.warnings, w)
	r.mu.Unlock()
}
