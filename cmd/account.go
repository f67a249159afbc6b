package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// AccountSignup registers an account without signing in.
func (r *Runner) AccountSignup(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	cred, err := r.accounts.Signup(cmd.String("name"), cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.logger.Info("account created", "email", cred.Email)
	return r.writePlain("✓ Account created for %s <%s>\n", cred.Name, cred.Email)
}

// AccountList prints registered accounts without their password hashes.
func (r *Runner) AccountList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	creds, err := r.accounts.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(creds, false)
	}

	if len(creds) == 0 {
		return r.writePlain("No accounts registered\n")
	}

	r.writePlainHeader("Accounts")
	for i, c := range creds {
		r.writePlain("%d. %s <%s>\n", i+1, c.Name, c.Email)
	}
	return nil
}
