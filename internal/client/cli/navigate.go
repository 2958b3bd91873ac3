package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/credentials"
	"github.com/dmitrijs2005/fintrack/internal/client/router"
)

var ErrUsage = errors.New("usage")

// Goto shows what the router does with a path.
func (a *App) Goto(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: goto <path>", ErrUsage)
	}
	d, m, err := a.router.Navigate(ctx, args[0], a.session)
	if err != nil {
		return err
	}
	if d.Action == router.Proceed {
		a.printf("-> %s (%s)\n", m.Route.Name, m.FullPath)
		return nil
	}
	a.printf("-> %s: redirected to %s\n", d.Action, d.Location())
	return nil
}

// Status prints connection settings, the last command's error, what the
// stored token says about itself and whether the backend accepts it. The
// claims are decoded without verification.
func (a *App) Status(ctx context.Context) error {
	a.printf("Backend:  %s\n", a.config.APIBaseURL)
	a.printf("Store:    %s\n", a.config.DurableStore)
	a.printf("Currency: %s\n", a.config.Currency)
	if err := a.session.Err(); err != nil {
		a.printf("Last error: %s\n", userMessage(err))
	}

	tok, ok := a.tokens(ctx)
	if !ok {
		a.printf("Session:  logged out\n")
		return nil
	}
	a.printf("Session:  logged in\n")

	if claims, err := credentials.Inspect(tok); err != nil {
		a.printf("Token:    opaque\n")
	} else {
		if claims.Subject != "" {
			a.printf("Subject:  %s\n", claims.Subject)
		}
		if !claims.ExpiresAt.IsZero() {
			state := "valid"
			if claims.Expired(a.now()) {
				state = "expired"
			}
			a.printf("Expires:  %s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC3339), state)
		}
	}

	if a.verifier == nil {
		return nil
	}
	_, err := a.verifier.TestToken(ctx)
	switch {
	case err == nil:
		a.printf("Server:   token accepted\n")
	case api.IsUnavailable(err):
		a.printf("Server:   unreachable\n")
	case api.StatusOf(err) != 0:
		a.printf("Server:   token rejected (HTTP %d)\n", api.StatusOf(err))
	default:
		a.printf("Server:   check failed: %v\n", err)
	}
	return nil
}
