package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignup creates an account through the same flow as the sign up tab.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	confirm := cmd.String("confirm")
	if !cmd.IsSet("confirm") {
		confirm = cmd.String("password")
	}
	return r.authenticate(ctx, cmd, session.ModeSignUp, session.Form{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
		Confirm:  confirm,
	})
}

// AuthLogin signs in through the same flow as the sign in tab.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	return r.authenticate(ctx, cmd, session.ModeSignIn, session.Form{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	})
}

func (r *Runner) authenticate(ctx context.Context, cmd *cli.Command, mode session.Mode, form session.Form) error {
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	flow := session.NewFlow(r.auth, r.store, r.config.Session.RedirectDelay(), r.logger)
	o := flow.Submit(ctx, mode, form)
	res := flow.Commit(o)
	if o.Err != nil {
		return fmt.Errorf("%s failed: %w", mode, o.Err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(o.Response, true)
	}

	r.writePlain("✓ %s\n", strings.TrimSuffix(res.Notice.Message, " Redirecting..."))
	r.writePlain("User:  %s (%s)\n", o.Response.User.Email, o.Response.User.ID)
	r.writePlain("Token: %s\n", r.store.Token())
	return nil
}

// AuthVerify checks a token the way the navbar does on every page load.
func (r *Runner) AuthVerify(ctx context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.StringArg("token"))
	if token == "" {
		return fmt.Errorf("%w: token is required", shared.ErrMissingArgument)
	}
	if r.auth == nil {
		return fmt.Errorf("%w: auth service not initialized", shared.ErrServiceUnavailable)
	}

	r.store.Set(session.KeyToken, token)
	navbar := session.NewNavbar(r.store)
	if err := navbar.Verify(ctx, r.auth); err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}

	r.writePlain("✓ Token is valid\n")
	r.writePlain("State:   %s\n", navbar.State())
	r.writePlain("Profile: %s\n", navbar.Glyph())
	return nil
}
