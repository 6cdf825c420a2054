package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/cryptox"
)

func (a *App) Users(ctx context.Context) error {
	users, err := a.api.Users(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out, "Username", "Role")
	for _, u := range users {
		tw.row(u.Username, u.Role)
	}
	return tw.flush()
}

func (a *App) AddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "New username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeBytes(password)

	role, err := getWithDefault(a.reader, "Role (admin/regular)", "regular", a.out)
	if err != nil {
		return err
	}

	if err := a.api.AddUser(ctx, models.NewUser{Username: username, Password: string(password), Role: role}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %s created\n", username)
	return nil
}

func (a *App) DeleteUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username to delete", a.out)
	if err != nil {
		return err
	}

	answer, err := getWithDefault(a.reader, fmt.Sprintf("Delete %s? (y/n)", username), "n", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteUser(ctx, username); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %s deleted\n", username)
	return nil
}
