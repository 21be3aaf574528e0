package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// arrange orders movies as the named landing page row does.
func (r *Runner) arrange(row string, movies []models.DisplayMovie) ([]models.DisplayMovie, string, error) {
	switch strings.ToLower(strings.TrimSpace(row)) {
	case "", "trending":
		return movies, catalog.Rows[0].Label, nil
	case "recent":
		return catalog.Shuffled(movies, r.rng), catalog.Rows[1].Label, nil
	case "popular":
		return catalog.Reversed(movies), catalog.Rows[2].Label, nil
	default:
		return nil, "", fmt.Errorf("%w: unknown row %q", shared.ErrInvalidArgument, row)
	}
}

// MoviesList prints the normalized catalog in the requested format.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	movies, err := r.loadCatalog(ctx, int(cmd.Int("pages")))
	if err != nil {
		return err
	}

	movies, heading, err := r.arrange(cmd.String("row"), movies)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteFile(path, format, heading, movies); err != nil {
			return err
		}
		r.logger.Info("catalog exported", "path", path, "format", format, "movies", len(movies))
		return r.writePlain("✓ Wrote %d movies to %s\n", len(movies), path)
	}

	return formatter.Write(r.output, format, heading, movies)
}

// MoviesSearch filters the catalog by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query is required", shared.ErrMissingArgument)
	}

	movies, err := r.loadCatalog(ctx, int(cmd.Int("pages")))
	if err != nil {
		return err
	}

	maxResults := int(cmd.Int("max"))
	if maxResults <= 0 {
		maxResults = r.config.Search.MaxResults
	}

	corpus := &catalog.Corpus{}
	corpus.Replace(movies)
	res := catalog.NewIndex(corpus, maxResults).Search(query)
	r.logger.Debug("search", "query", res.Query, "results", len(res.Items))

	if cmd.Bool("json") {
		return r.writeJSON(res.Items, true)
	}

	if len(res.Items) == 0 {
		return r.writePlain("%s\n", catalog.MessageNoResults)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", res.Query))
	for i, item := range res.Items {
		r.writePlain("%d. %s  ⭐ %s\n", i+1, item.Title, player.FormatRating(item.Rating))
		r.writePlain("   %s\n", item.Link)
	}
	return nil
}

// MoviesHero picks the featured movie.
func (r *Runner) MoviesHero(ctx context.Context, cmd *cli.Command) error {
	movies, err := r.loadCatalog(ctx, int(cmd.Int("pages")))
	if err != nil {
		return err
	}

	hero, ok := catalog.SelectHero(movies, r.rng)
	if !ok {
		return fmt.Errorf("%w: empty catalog", shared.ErrNoValidContent)
	}

	if cmd.Bool("json") {
		return r.writeJSON(hero, true)
	}

	r.writePlainHeader(hero.Title)
	r.writePlain("Rating: ⭐ %s\n", player.FormatRating(hero.Rating))
	r.writePlain("Image:  %s\n", hero.Image)
	r.writePlain("Play:   %s\n", hero.Link)
	return nil
}
