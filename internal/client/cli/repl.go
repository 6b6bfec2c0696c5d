package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	helpText() string
	// dispatch runs the named command; known is false for an unknown name.
	dispatch(ctx context.Context, name string, args []string) (known bool, err error)
	report(err error)
}

// runREPL starts a simple read–eval–print loop for the events CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it to a. Unknown commands are reported back to the user and
// command errors are forwarded to a.report. The loop exits on EOF, on
// "exit" or "quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("events %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			printlnFn(a.helpText())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			known, cerr := a.dispatch(ctx, cmd, parts[1:])
			if !known {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if cerr != nil {
				a.report(cerr)
			}
		}
	}
}
