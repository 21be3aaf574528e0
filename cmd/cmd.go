// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/urfave/cli/v3"
)

func formatNames() string {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func pagesFlag() cli.Flag {
	return &cli.IntFlag{Name: "pages", Usage: "Number of catalog pages to fetch (default: api.pages)"}
}

func emailFlag() cli.Flag {
	return &cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true}
}

// setupCommand writes a starter configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write config.toml from the built-in template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   r.configPath,
			},
		},
		Action: r.Setup,
	}
}

// moviesCommand handles catalog operations
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch, normalize and print the catalog",
				Flags: []cli.Flag{
					pagesFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format (%s)", formatNames()),
						Value:   string(formatter.FormatText),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "row",
						Usage: "Row order: trending (as fetched), recent (shuffled) or popular (reversed)",
						Value: "trending",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "search",
				Usage: "Case-insensitive title search over the catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					pagesFlag(),
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of results (default: search.max_results)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesSearch,
			},
			{
				Name:  "hero",
				Usage: "Pick a random featured movie",
				Flags: []cli.Flag{
					pagesFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesHero,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign up, sign in and verify tokens against the auth API",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name", Required: true},
					emailFlag(),
					passwordFlag(),
					&cli.StringFlag{Name: "confirm", Usage: "Password confirmation (default: --password)"},
					&cli.BoolFlag{Name: "json", Usage: "Output the auth response as JSON"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "login",
				Usage: "Sign in to an existing account",
				Flags: []cli.Flag{
					emailFlag(),
					passwordFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output the auth response as JSON"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "verify",
				Usage: "Verify a session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AuthVerify,
			},
		},
	}
}

// playerCommand opens a player link
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Show what the player page displays for a link",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "link"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the backdrop image in the browser",
			},
		},
		Action: r.Player,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the auth API (absolute URLs pass through)",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// devapiCommand serves the local stub API
func devapiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "devapi",
		Usage: "Serve an in-memory stub of the auth and movies APIs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: server.port)",
			},
		},
		Action: r.DevAPI,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal client",
		Action:  r.TUI,
	}
}
