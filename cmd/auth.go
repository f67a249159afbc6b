package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with registered credentials, or as a bare username.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	username := strings.TrimSpace(cmd.String("username"))
	email := cmd.String("email")
	password := cmd.String("password")

	var (
		user models.UserRecord
		err  error
	)
	switch {
	case email != "" && password != "":
		cred, authErr := r.accounts.Authenticate(email, password)
		if authErr != nil {
			return authErr
		}
		user, err = r.session.Login(models.Profile{Username: cred.Email, Email: cred.Email, Name: cred.Name})
	case username != "":
		user, err = r.session.LoginUsername(username)
	default:
		return fmt.Errorf("%w: pass --email and --password, or --username", shared.ErrMissingArgument)
	}
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Info("signed in", "user", user.Username)
	return r.writePlain("✓ Welcome, %s\n", session.DisplayName(&user))
}

// AuthRegister creates an account and starts a session for it.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	cred, err := r.accounts.Signup(cmd.String("name"), cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	user, err := r.session.Register(models.Profile{Username: cred.Email, Email: cred.Email, Name: cred.Name})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Info("registered", "email", cred.Email)
	return r.writePlain("✓ Account created. Welcome, %s\n", session.DisplayName(&user))
}

// AuthLogout clears the session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	wasSignedIn := r.session.IsAuthenticated()
	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if !wasSignedIn {
		return r.writePlain("Not signed in\n")
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami prints the signed-in user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	user, ok := r.session.Current()
	if !ok {
		if cmd.Bool("json") {
			return r.writeJSON(nil, false)
		}
		return r.writePlain("Not signed in\n")
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, false)
	}
	return r.writePlain("%s (%s)\n", session.DisplayName(&user), user.Username)
}
