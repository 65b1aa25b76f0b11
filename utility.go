// FILE: oxidecomputer/slog-dtrace/utility.go
package dtrace

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// recordLocation extracts the package import path, source file, and line
// number from a record's program counter. A zero PC yields empty fields.
func recordLocation(pc uintptr) (module, file string, line int) {
	if pc == 0 {
		return "", "", 0
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	file = frame.File
	line = frame.Line
	if frame.Function != "" {
		// "github.com/x/pkg.(*T).Method" -> "github.com/x/pkg"
		name := frame.Function
		slash := strings.LastIndexByte(name, '/')
		if dot := strings.IndexByte(name[slash+1:], '.'); dot >= 0 {
			module = name[:slash+1+dot]
		} else {
			module = name
		}
	}
	return module, file, line
}

// describeValue renders a compact dump of an arbitrary value for the "err"
// payload variant, with type information preserved.
func describeValue(v any) string {
	var b bytes.Buffer
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                3,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(&b, v)
	return string(bytes.TrimSpace(b.Bytes()))
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "dtrace: ") {
		format = "dtrace: " + format
	}
	return fmt.Errorf(format, args...)
}
