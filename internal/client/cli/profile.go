package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/common"
)

// WhoAmI prints the cached user, loading it first when needed.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		var err error
		if u, err = a.session.FetchProfile(ctx); err != nil {
			return err
		}
	}
	if u == nil {
		a.printf("Not logged in.\n")
		return nil
	}

	name := "-"
	if u.FullName != nil && *u.FullName != "" {
		name = *u.FullName
	}
	a.printf("ID:        %s\nEmail:     %s\nName:      %s\nActive:    %t\nSuperuser: %t\n",
		u.ID, u.Email, name, u.IsActive, u.IsSuperuser)
	return nil
}

// Profile edits the name and email; empty answers keep the current value.
func (a *App) Profile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var in models.UserUpdateMe
	if name = strings.TrimSpace(name); name != "" {
		in.FullName = &name
	}
	if email = strings.TrimSpace(email); email != "" {
		in.Email = &email
	}
	if in.IsEmpty() {
		a.printf("Nothing to change.\n")
		return nil
	}

	u, err := a.session.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	if u != nil {
		a.printf("Profile updated: %s <%s>\n", u.DisplayName(), u.Email)
	}
	return nil
}

// Passwd changes the password.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	repeat, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(next) != string(repeat) {
		return ErrPasswordMismatch
	}

	ok, err := a.session.ChangePassword(ctx, string(current), string(next))
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Not logged in.\n")
		return nil
	}
	if a.isLoggedIn(ctx) {
		a.printf("Password changed.\n")
	} else {
		a.printf("Password changed, please log in again.\n")
	}
	return nil
}

// DeleteAccount removes the account after an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := getConfirmation(a.reader, "Delete your account permanently?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}
	if err := a.session.DeleteAccount(ctx); err != nil {
		return err
	}
	a.printf("Account deleted.\n")
	return nil
}
