package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) run(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) Register(_ context.Context, args []string) error { return f.run("register", args) }
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.run("login", args)
}
func (f *fakeExec) Logout(_ context.Context, args []string) error {
	f.loggedIn = false
	return f.run("logout", args)
}
func (f *fakeExec) WhoAmI(_ context.Context, args []string) error     { return f.run("whoami", args) }
func (f *fakeExec) DeleteUser(_ context.Context, args []string) error { return f.run("deleteuser", args) }
func (f *fakeExec) Upload(_ context.Context, args []string) error     { return f.run("upload", args) }
func (f *fakeExec) List(_ context.Context, args []string) error       { return f.run("list", args) }
func (f *fakeExec) Show(_ context.Context, args []string) error       { return f.run("show", args) }
func (f *fakeExec) Transitions(_ context.Context, args []string) error {
	return f.run("transitions", args)
}
func (f *fakeExec) State(_ context.Context, args []string) error      { return f.run("state", args) }
func (f *fakeExec) Sign(_ context.Context, args []string) error       { return f.run("sign", args) }
func (f *fakeExec) Reject(_ context.Context, args []string) error     { return f.run("reject", args) }
func (f *fakeExec) Signatures(_ context.Context, args []string) error { return f.run("signatures", args) }
func (f *fakeExec) Download(_ context.Context, args []string) error   { return f.run("download", args) }
func (f *fakeExec) Notifications(_ context.Context, args []string) error {
	return f.run("notifications", args)
}
func (f *fakeExec) Read(_ context.Context, args []string) error { return f.run("read", args) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login a@example.com",
		"help",
		"",
		"upload ./a.pdf",
		"l",
		"list",
		"show d1",
		"transitions d1",
		"state d1 SIGNED",
		"sign d1",
		"reject d1",
		"signatures d1",
		"download d1",
		"notifications",
		"read n1",
		"whoami",
		"deleteuser u2",
		"register",
		"logout",
		"foobar",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login a@example.com", "upload ./a.pdf", "list", "list", "show d1", "transitions d1",
		"state d1 SIGNED", "sign d1", "reject d1", "signatures d1", "download d1",
		"notifications", "read n1", "whoami", "deleteuser u2", "register", "logout",
	}, exec.calls)

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "docflow (status)> ")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{failOn: "sign"}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("sign d1\nlist")))

	assert.Equal(t, []string{"sign d1", "list"}, exec.calls)
	assert.Contains(t, *out, "error: sign failed")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))
	assert.Empty(t, exec.calls)
}
