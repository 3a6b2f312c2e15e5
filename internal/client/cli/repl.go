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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Join(ctx context.Context) error
	Leave(ctx context.Context) error
	Who(ctx context.Context) error
	Top(ctx context.Context) error
	Status(ctx context.Context, text string) error
	Rename(ctx context.Context, newName string) error
	Say(ctx context.Context, message string) error
	Chat(ctx context.Context) error
	Notices(ctx context.Context) error
	Timer(ctx context.Context) error
	TimerReset(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the workspace CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - join           — start studying (minutes accrue)
//	  - leave          — stop studying
//	  - who            — list who is online
//	  - top            — study-time leaderboard
//	  - status <text>  — set the short status message
//	  - rename <name>  — change the display name
//	  - say <text>     — send a chat message
//	  - chat           — show recent chat and who is typing
//	  - notices        — show notifications and mark them read
//	  - timer          — show the shared global timer
//	  - timerreset     — restart the shared global timer
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("liorea> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: join, leave, who, top, status <text>, rename <name>, say <text>, chat, notices, timer, timerreset, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "join":
			_ = a.Join(ctx)

		case "leave":
			_ = a.Leave(ctx)

		case "who":
			_ = a.Who(ctx)

		case "top":
			_ = a.Top(ctx)

		case "status":
			_ = a.Status(ctx, rest)

		case "rename":
			if rest == "" {
				printlnFn("Usage: rename <new name>")
				continue
			}
			_ = a.Rename(ctx, rest)

		case "say":
			if rest == "" {
				printlnFn("Usage: say <message>")
				continue
			}
			_ = a.Say(ctx, rest)

		case "chat":
			_ = a.Chat(ctx)

		case "notices":
			_ = a.Notices(ctx)

		case "timer":
			_ = a.Timer(ctx)

		case "timerreset":
			_ = a.TimerReset(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
