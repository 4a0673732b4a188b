package cidermill

import (
	"fmt"
)

// Assert panics when the condition is false.  Used for API contract
// violations that indicate a caller bug, never for bad user data.
func Assert(condition bool) {
	if !condition {
		panic("assertion failed")
	}
}

// Assertf is Assert with a formatted explanation.
func Assertf(condition bool, format string, a ...any) {
	if !condition {
		panic(fmt.Sprintf(format, a...))
	}
}
