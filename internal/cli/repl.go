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
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Generate(ctx context.Context, args []string) error
	ScorePassword(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Root starts the interactive shell and blocks until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to passkeep (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, scanner, a, a.prompt)
}

func (a *App) prompt() string {
	return fmt.Sprintf("passkeep (%s)> ", a.Mode)
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on e. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, scanner *bufio.Scanner, e execIface, prompt func() string) {
	for {
		fmt.Print(prompt())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "exit", "quit":
			return
		case "help":
			printHelp(e.isLoggedIn())
		case "login":
			err = e.Login(ctx)
		case "gen":
			err = e.Generate(ctx, args)
		case "score":
			err = e.ScorePassword(ctx)
		case "list":
			err = requireLogin(e, func() error { return e.List(ctx) })
		case "show":
			err = requireLogin(e, func() error { return e.Show(ctx) })
		case "add":
			err = requireLogin(e, func() error { return e.Add(ctx) })
		case "edit":
			err = requireLogin(e, func() error { return e.Edit(ctx) })
		case "delete":
			err = requireLogin(e, func() error { return e.Delete(ctx) })
		case "search":
			err = requireLogin(e, func() error { return e.Search(ctx, strings.Join(args, " ")) })
		case "clear":
			err = requireLogin(e, func() error { return e.Clear(ctx) })
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func requireLogin(e execIface, fn func() error) error {
	if !e.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	return fn()
}

func printHelp(loggedIn bool) {
	printlnFn("Commands:")
	printlnFn("  gen [length]  - generate a password (default length 16)")
	printlnFn("  score         - rate a password")
	if !loggedIn {
		printlnFn("  login         - authenticate against the server")
	} else {
		printlnFn("  list          - list all records")
		printlnFn("  show          - show one record")
		printlnFn("  add           - add a record")
		printlnFn("  edit          - edit a record")
		printlnFn("  delete        - delete a record")
		printlnFn("  search <term> - search by website or username")
		printlnFn("  clear         - erase the whole vault")
	}
	printlnFn("  exit | quit   - leave the program")
}
