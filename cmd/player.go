package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/player"
	"github.com/urfave/cli/v3"
)

// Player prints what the player page shows for a link.
func (r *Runner) Player(ctx context.Context, cmd *cli.Command) error {
	view, err := player.ParseLink(cmd.StringArg("link"))
	if err != nil {
		return err
	}

	r.writePlainHeader(view.Title)
	if _, ok := view.RatingValue(); ok {
		r.writePlain("Rating:   ⭐ %s\n", view.Rating)
	}
	if view.HasBackdrop() {
		r.writePlain("Backdrop: %s\n", view.Image)
	}
	r.writePlainln(player.PlayNotice)

	if !cmd.Bool("open") {
		return nil
	}
	if !view.HasBackdrop() {
		r.logger.Warn("link has no backdrop to open")
		return nil
	}
	if err := r.browser(view.Image); err != nil {
		return fmt.Errorf("failed to open backdrop: %w", err)
	}
	return nil
}
