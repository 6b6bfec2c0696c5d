package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls    []string
	args     [][]string
	reported []error
	failOn   string
}

func (f *fakeExec) helpText() string { return "help" }

func (f *fakeExec) dispatch(ctx context.Context, name string, args []string) (bool, error) {
	switch name {
	case "login", "events", "show", "book":
	default:
		return false, nil
	}
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == f.failOn {
		return true, errors.New("boom")
	}
	return true, nil
}

func (f *fakeExec) report(err error) { f.reported = append(f.reported, err) }

func silenceOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := silenceOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"",
		"events",
		"SHOW 42",
		"book 7",
		"foobar",
		"exit",
		"events",
	}, "\n")

	exec := &fakeExec{failOn: "book"}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "events", "show", "book"}, exec.calls)
	assert.Equal(t, []string{"42"}, exec.args[2])
	assert.Len(t, exec.reported, 1)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "events status> ")
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	silenceOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login")))
	assert.Equal(t, []string{"login"}, exec.calls, "last line without newline still runs")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}
