// Package debug provides env-gated diagnostic output.
//
// Diagnostics go to stderr so they never mix with command output on
// stdout. Enabled by RESEPT_DEBUG or the --verbose flag.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("RESEPT_DEBUG") != ""
	verboseMode = false
)

// Enabled reports whether diagnostic output is on.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// Logf writes diagnostic output to stderr when enabled.
func Logf(format string, args ...interface{}) {
	if enabled || verboseMode {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
