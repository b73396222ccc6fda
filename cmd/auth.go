package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/flick/internal/session"
	"github.com/desertthunder/flick/internal/tasks"
	"github.com/urfave/cli/v3"
)

// updatedAter is implemented by stores that record when a slot was last written.
type updatedAter interface {
	UpdatedAt(key string) (time.Time, error)
}

// AuthLogin logs in and stores the session token and username.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	flow := tasks.NewAuthFlow(r.session, r.client, r.logger)
	if flow.Mount() == tasks.RouteDiscovery {
		s, _ := r.session.Load()
		return r.writePlain("Already logged in as %s\n", s.Username)
	}

	username, password, err := r.credentials(cmd, "Log in")
	if err != nil {
		return err
	}

	call, err := flow.Begin(username, password)
	if err != nil {
		return err
	}

	res := call.Run(ctx)
	if flow.Apply(res) != tasks.RouteDiscovery {
		return screenError(flow.Error, res.Err)
	}

	r.logger.Info("logged in", "username", res.Key)
	return r.writePlain("✓ Logged in as %s\n", res.Key)
}

// AuthRegister creates an account. It does not log in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	flow := tasks.NewAuthFlow(r.session, r.client, r.logger)
	flow.Mount()
	flow.Toggle()

	username, password, err := r.credentials(cmd, "Register")
	if err != nil {
		return err
	}

	call, err := flow.Begin(username, password)
	if err != nil {
		return err
	}

	res := call.Run(ctx)
	flow.Apply(res)
	if flow.Error != "" {
		return screenError(flow.Error, res.Err)
	}

	r.writeMessages("", flow.Notice)
	return nil
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if err := r.session.Logout(session.LogoutRequested); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus prints the stored session, if any.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	s, ok := r.session.Load()
	if !ok {
		return r.writePlain("Not logged in\n")
	}

	r.writePlain("Logged in as %s\n", s.Username)
	r.writePlain("Service: %s\n", r.api.BaseURL())
	if store, ok := r.store.(updatedAter); ok {
		if at, err := store.UpdatedAt(session.TokenKey); err == nil {
			r.writePlain("Since: %s\n", at.Local().Format(time.DateTime))
		}
	}
	return nil
}

// credentials reads the username and password flags and prompts for whichever are missing.
func (r *Runner) credentials(cmd *cli.Command, title string) (string, string, error) {
	username, password := cmd.String("username"), cmd.String("password")
	if username != "" && password != "" {
		return username, password, nil
	}
	if err := r.prompt.Credentials(title, &username, &password); err != nil {
		return "", "", fmt.Errorf("failed to read credentials: %w", err)
	}
	return username, password, nil
}
