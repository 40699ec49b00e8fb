package cli

import (
	"context"
	"fmt"
	"strings"
)

// Register prompts for name, email, password and an optional role and
// creates the account. An empty role leaves the server default.
func (a *App) Register(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Enter name")
	if err != nil {
		return err
	}
	email, err := a.arg(args, 1, "Enter email")
	if err != nil {
		return err
	}

	role := ""
	if len(args) > 2 {
		role = args[2]
	} else {
		role, err = getSimpleText(a.reader, "Enter role (EMPLOYEE, SUPERVISOR, SIGNER, INSTITUTIONAL_MANAGER, ADMIN; empty for EMPLOYEE)", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Register(ctx, name, email, password, strings.ToUpper(role))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s as %s (id %s)\n", u.Email, u.Role, u.ID)
	return nil
}

// Login authenticates and keeps the access token in the client.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.arg(args, 0, "Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.userName = u.Email
	a.role = u.Role
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Email, u.Role)
	return nil
}

// Logout forgets the access token.
func (a *App) Logout(ctx context.Context, args []string) error {
	a.client.Logout()
	a.userName = ""
	a.role = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Enter user id")
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted\n", id)
	return nil
}
