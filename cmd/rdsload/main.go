package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/rdsload/internal/cli"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(rdsload.ExitFailure)
		}
	}()

	if os.Getenv("RDSLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(rdsload.ExitCodeForError(err))
	}
}
