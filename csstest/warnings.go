package csstest

import (
	"strings"

	"github.com/yacobolo/twtest/internal/engine"
	"github.com/yacobolo/twtest/internal/warnlog"
)

// TargetRemovedMessage is the warning logged for configs that set "target".
const TargetRemovedMessage = engine.TargetRemovedMessage

type (
	// Warning is one captured warning record.
	Warning = warnlog.Warning
	// Recorder captures warnings from a Generator's Logger.
	Recorder = warnlog.Recorder
)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return warnlog.NewRecorder()
}

// OnTailwind2 reports whether any warning carries the message announcing
// that the target option was removed.
func OnTailwind2(warnings []Warning) bool {
	for _, w := range warnings {
		for _, arg := range w.Args {
			if strings.Contains(arg, TargetRemovedMessage) {
				return true
			}
		}
	}
	return false
}
