// Package monitoring provides the diagnostic logger used by the terrain
// packages. Library code logs through Logf so hosts can redirect or mute it.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Since logs how long the step named label has taken since start.
func Since(label string, start time.Time) {
	Took(label, time.Since(start))
}

// Took logs that the step named label ran for d.
func Took(label string, d time.Duration) {
	Logf("[terrain] %s took %s", label, d.Round(time.Microsecond))
}
