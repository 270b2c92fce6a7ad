package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, path string) error
}

// runREPL reads one command per line until EOF, "quit" or "exit".
// Handler errors are reported by the handlers themselves.
//
//	help                 show available commands
//	register | login     sign in (when logged out)
//	logout | whoami      (when logged in)
//	open <path>          run the route guard for a client path
//	quit | exit          leave
//
// Commands share reader with the prompts they issue, so it is read line by
// line rather than through a bufio.Scanner.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "devconnect [%s]> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: whoami, open <path>, logout, quit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, open <path>, quit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "open":
			if len(parts) != 2 {
				fmt.Fprintln(w, "usage: open <path>")
				continue
			}
			_ = a.Open(ctx, parts[1])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
