package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Transitions(ctx context.Context, args []string) error
	State(ctx context.Context, args []string) error
	Sign(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Signatures(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: upload, (l)ist, show, transitions, state, sign, reject, " +
		"signatures, download, notifications, read, whoami, deleteuser, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit". Command
// errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("docflow %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)
		case "deleteuser":
			cmdErr = a.DeleteUser(ctx, args)
		case "upload":
			cmdErr = a.Upload(ctx, args)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "transitions":
			cmdErr = a.Transitions(ctx, args)
		case "state":
			cmdErr = a.State(ctx, args)
		case "sign":
			cmdErr = a.Sign(ctx, args)
		case "reject":
			cmdErr = a.Reject(ctx, args)
		case "signatures":
			cmdErr = a.Signatures(ctx, args)
		case "download":
			cmdErr = a.Download(ctx, args)
		case "notifications":
			cmdErr = a.Notifications(ctx, args)
		case "read":
			cmdErr = a.Read(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr.Error())
		}
	}
}
