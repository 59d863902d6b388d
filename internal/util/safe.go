package util

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// SafeGo runs fn on its own goroutine. A panic is logged and swallowed.
func SafeGo(logger *zap.SugaredLogger, fn func()) {
	go SafeDo(logger, fn)
}

func SafeDo(logger *zap.SugaredLogger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Errorw("recovered from panic", "panic", r, "stack", string(debug.Stack()))
			}
		}
	}()
	fn()
}
