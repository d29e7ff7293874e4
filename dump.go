package nutriplan

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Dump pretty-prints values to stdout prefixed with the caller's file:line.
func Dump(v ...any) {
	fdump(os.Stdout, 2, v...)
}

// Fdump is Dump with an explicit destination.
func Fdump(w io.Writer, v ...any) {
	fdump(w, 2, v...)
}

func fdump(w io.Writer, skip int, v ...any) {
	_, file, line, _ := runtime.Caller(skip)
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	args := append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)
	cfg.Fdump(w, args...)
}
