package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }
func (s *stubExec) Add(ctx context.Context, args []string) error {
	return s.record("add " + strings.Join(args, " "))
}
func (s *stubExec) Today(ctx context.Context) error     { return s.record("today") }
func (s *stubExec) Week(ctx context.Context) error      { return s.record("week") }
func (s *stubExec) History(ctx context.Context) error   { return s.record("history") }
func (s *stubExec) AutoCount(ctx context.Context) error { return s.record("autocount") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	return &lines
}

func runWithInput(t *testing.T, exec *stubExec, input string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "status" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{loggedIn: true}

	runWithInput(t, exec, "add 5000\ntoday\nweek\nhistory\nautocount\nlogout\nexit\n")

	assert.Equal(t, []string{"add 5000", "today", "week", "history", "autocount", "logout"}, exec.calls)
}

func TestREPL_AuthCommands(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "register\nlogin\nexit\n")

	assert.Equal(t, []string{"register", "login"}, exec.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	lines := captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "frobnicate\nexit\n")

	joined := strings.Join(*lines, "")
	assert.Contains(t, joined, "Unknown command")
	assert.Empty(t, exec.calls)
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	lines := captureOutput(t)

	runWithInput(t, &stubExec{}, "help\nexit\n")
	loggedOut := strings.Join(*lines, "")
	assert.Contains(t, loggedOut, "register, login")

	*lines = (*lines)[:0]
	runWithInput(t, &stubExec{loggedIn: true}, "help\nexit\n")
	loggedIn := strings.Join(*lines, "")
	assert.Contains(t, loggedIn, "autocount")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "today\n")

	assert.Equal(t, []string{"today"}, exec.calls)
}

func TestREPL_SkipsEmptyLines(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "\n\n   \nexit\n")

	assert.Empty(t, exec.calls)
}
