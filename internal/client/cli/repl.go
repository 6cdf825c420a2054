package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Functions(ctx context.Context) error
	AddFunction(ctx context.Context) error
	AddSession(ctx context.Context) error
	Years(ctx context.Context) error
	Report(ctx context.Context) error
	Export(ctx context.Context, format string) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	DeleteUser(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpUser      = "Available commands: me, functions, addfunction, addsession, years, report, export [xlsx|pdf], logout, exit"
	helpAdmin     = helpUser + "\nAdmin commands: users, adduser, deluser"
)

// runREPL starts a simple read–eval–print loop for the worklog CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need a session are refused
// until login; user management is only offered to admins. Every error is
// printed as a short message and the loop continues. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("worklog%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		printError(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		switch {
		case a.isAdmin():
			printlnFn(helpAdmin)
		case a.isLoggedIn():
			printlnFn(helpUser)
		default:
			printlnFn(helpLoggedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if isCommand(cmd) {
			printlnFn("Please login first")
		} else {
			printlnFn("Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "functions":
		return a.Functions(ctx)
	case "addfunction":
		return a.AddFunction(ctx)
	case "addsession":
		return a.AddSession(ctx)
	case "years":
		return a.Years(ctx)
	case "report":
		return a.Report(ctx)
	case "export":
		format := ""
		if len(args) > 0 {
			format = args[0]
		}
		return a.Export(ctx, format)
	}

	if !adminCommands[cmd] {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isAdmin() {
		printlnFn("This command is available to administrators only")
		return nil
	}

	switch cmd {
	case "users":
		return a.Users(ctx)
	case "adduser":
		return a.AddUser(ctx)
	default:
		return a.DeleteUser(ctx)
	}
}

var adminCommands = map[string]bool{"users": true, "adduser": true, "deluser": true}

func isCommand(cmd string) bool {
	switch cmd {
	case "logout", "me", "functions", "addfunction", "addsession", "years", "report", "export":
		return true
	}
	return adminCommands[cmd]
}

func printError(err error) {
	if err != nil {
		printlnFn("error:", err.Error())
	}
}
