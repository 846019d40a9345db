package utils

import (
	"fmt"
	"runtime"
	"strings"
)

// Stack captures the calling goroutine's stack, skipping the innermost
// skip frames. Used by panic recovery to report where the panic happened.
func Stack(skip int) []byte {
	var sb strings.Builder

	pc := make([]uintptr, 32)
	n := runtime.Callers(skip, pc)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return []byte(sb.String())
}
