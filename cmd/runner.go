package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	movieAPI   *services.APIService
	movies     services.MovieSource
	auth       services.Authenticator
	ownMovies  bool
	ownAuth    bool
	store      *session.Store
	httpClient *http.Client
	rng        *rand.Rand
	logger     *log.Logger
	output     io.Writer
	browser    func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Movies and Auth default to the HTTP services configured by Config.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Movies     services.MovieSource
	Auth       services.Authenticator
	Store      *session.Store
	HTTPClient *http.Client
	Rand       *rand.Rand
	Logger     *log.Logger
	Output     io.Writer
	Browser    func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}
	if opts.Store == nil {
		opts.Store = session.NewStore()
	}
	if opts.Rand == nil {
		opts.Rand = catalog.NewRand()
	}
	if opts.Browser == nil {
		opts.Browser = shared.OpenBrowser
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		movies:     opts.Movies,
		auth:       opts.Auth,
		ownMovies:  opts.Movies == nil,
		ownAuth:    opts.Auth == nil,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		rng:        opts.Rand,
		logger:     opts.Logger,
		output:     opts.Output,
		browser:    opts.Browser,
	}
	r.wire()
	return r
}

// wire builds the HTTP services that were not injected.
func (r *Runner) wire() {
	r.api = services.NewAPIService(r.config.API.AuthBaseURL, r.httpClient, r.logger)
	if r.ownAuth {
		r.auth = services.NewAuthService(r.api)
	}
	if r.ownMovies {
		r.movieAPI = services.NewAPIService("", r.httpClient, r.logger)
		r.movies = r.movieSource(max(1, r.config.API.Pages))
	}
}

// movieSource returns the catalog reader, fetching pages pages when the runner owns the HTTP service.
func (r *Runner) movieSource(pages int) services.MovieSource {
	if r.movieAPI == nil || pages <= 0 {
		return r.movies
	}
	return services.NewMovieService(r.movieAPI, services.MovieOptions{
		URL:            r.config.API.MoviesURL,
		Pages:          pages,
		PagesPerSecond: r.config.API.PagesPerSecond,
	})
}

// SetLogger replaces the logger, e.g. with a file logger before the TUI takes the screen.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.wire()
}

// Before applies global flags.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if lvl := cmd.String("log-level"); lvl != "" {
		shared.SetLogLevel(r.logger, shared.ParseLogLevel(lvl))
		r.wire()
	}
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, moviesCommand, authCommand, playerCommand, apiCommand, devapiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadCatalog fetches and normalizes the catalog.
func (r *Runner) loadCatalog(ctx context.Context, pages int) ([]models.DisplayMovie, error) {
	source := r.movieSource(pages)
	if source == nil {
		return nil, fmt.Errorf("%w: movie service not initialized", shared.ErrServiceUnavailable)
	}

	records, err := source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	movies, err := catalog.NewNormalizer(r.rng).Normalize(records)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("catalog loaded", "records", len(records), "movies", len(movies))
	return movies, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
