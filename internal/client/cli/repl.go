package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/client/router"
	"github.com/dmitrijs2005/fintrack/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	resetError()
	guard(ctx context.Context, path string) (router.Decision, error)
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Dashboard(ctx context.Context, args []string) error
	Income(ctx context.Context, args []string) error
	Expenses(ctx context.Context, args []string) error
	Goto(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// commandRoutes maps commands to the route that gates them. Commands not
// listed run unconditionally.
var commandRoutes = map[string]string{
	"login":          "/auth/login",
	"signup":         "/auth/signup",
	"register":       "/auth/signup",
	"whoami":         "/profile",
	"profile":        "/profile",
	"passwd":         "/preferences",
	"delete-account": "/preferences",
	"dashboard":      "/",
	"d":              "/",
	"income":         "/income",
	"expenses":       "/expenses",
}

const (
	helpGuest  = "Available commands: login, signup, goto <path>, status, help, exit"
	helpMember = "Available commands: dashboard [YYYY-MM], income [YYYY-MM], expenses [YYYY-MM], whoami, profile, passwd, goto <path>, status, logout, delete-account, help, exit"
)

// runREPL starts a simple read–eval–print loop for the fintrack CLI.
//
// It reads a line from reader, parses the first token as the command, runs
// the route guard for it and dispatches to methods on 'a'. A protected
// command typed while logged out prompts for a login and then runs. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fintrack %s > ", statusFn()))
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

		// status reports the previous command's error; everything else
		// starts clean.
		if cmd != "status" {
			a.resetError()
		}

		if path, gated := commandRoutes[cmd]; gated && !allowed(ctx, a, cmd, path) {
			continue
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", userMessage(err))
		}
	}
}

// allowed applies the guard to a command. A login redirect runs the login
// prompt and lets the command through if it succeeds.
func allowed(ctx context.Context, a execIface, cmd, path string) bool {
	d, err := a.guard(ctx, path)
	if err != nil {
		printlnFn("Error:", err)
		return false
	}
	switch d.Action {
	case router.RedirectLogin:
		printlnFn(fmt.Sprintf("Please log in first (%s)", d.Location()))
		if err := a.Login(ctx); err != nil {
			printlnFn("Error:", userMessage(err))
			return false
		}
		return a.isLoggedIn(ctx)
	case router.RedirectHome:
		printlnFn(fmt.Sprintf("Already logged in, %s is for guests (%s)", cmd, d.Location()))
		return false
	}
	return true
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpMember)
		} else {
			printlnFn(helpGuest)
		}
		return nil
	case "login":
		return a.Login(ctx)
	case "signup", "register":
		return a.Signup(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "profile":
		return a.Profile(ctx)
	case "passwd":
		return a.Passwd(ctx)
	case "dashboard", "d":
		return a.Dashboard(ctx, args)
	case "income":
		return a.Income(ctx, args)
	case "expenses":
		return a.Expenses(ctx, args)
	case "goto":
		return a.Goto(ctx, args)
	case "status":
		return a.Status(ctx)
	case "delete-account":
		return a.DeleteAccount(ctx)
	}
	printlnFn("Unknown command:", cmd)
	return nil
}

// userMessage prefers the text a session action prepared for the user.
func userMessage(err error) string {
	var ae *session.ActionError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
