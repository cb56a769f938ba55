// Package safego provides a panic-recovering goroutine launcher for background work.
package safego

import (
	"log/slog"
	"sync"
)

// Go launches fn in a new goroutine. A panic in fn is recovered and logged.
func Go(fn func()) {
	go func() {
		defer recoverAndLog()
		fn()
	}()
}

// GoTracked is Go with wg accounting, so shutdown can wait for fn.
func GoTracked(wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer recoverAndLog()
		fn()
	}()
}

func recoverAndLog() {
	if r := recover(); r != nil {
		slog.Error("recovered panic in background goroutine", "panic", r)
	}
}
