package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/client/router"
	"github.com/dmitrijs2005/fintrack/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// guard runs the router against the session for path.
func (a *App) guard(ctx context.Context, path string) (router.Decision, error) {
	d, _, err := a.router.Navigate(ctx, path, a.session)
	return d, err
}

// Login prompts for email, password and whether to stay logged in across
// restarts, then logs in. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, string(password), remember)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", u.DisplayName())
	return nil
}

// Signup creates an account. It does not log in.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(password) != string(repeat) {
		return ErrPasswordMismatch
	}

	in := models.UserRegister{Email: email, Password: string(password)}
	if name := strings.TrimSpace(fullName); name != "" {
		in.FullName = &name
	}
	if err := a.session.Register(ctx, in); err != nil {
		return err
	}
	a.printf("Account created, you can log in now.\n")
	return nil
}

// Logout forgets the stored token.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.printf("Logged out.\n")
	return nil
}
