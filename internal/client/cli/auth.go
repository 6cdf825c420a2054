package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and starts a session. The password is
// wiped by the auth service.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	id, err := a.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", id.Username, id.Role)
	return nil
}

// Logout forgets the session.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me shows the identity the server sees for the current token.
func (a *App) Me(ctx context.Context) error {
	id, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", id.Username, id.Role)
	return nil
}
