package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/server"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner wires a runner to a devapi server over httptest.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	logger := shared.NewLogger(io.Discard)

	srv, err := server.NewDevServer(shared.DefaultConfig().Server, logger)
	if err != nil {
		t.Fatalf("failed to create devapi: %v", err)
	}
	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)

	config := shared.DefaultConfig()
	config.API.AuthBaseURL = ts.URL
	config.API.MoviesURL = ts.URL + "/movies/paginated"
	config.API.PagesPerSecond = 1000

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Logger:  logger,
		Output:  output,
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Browser: func(string) error { return nil },
	})
	return runner, output
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:     "marquee",
		Flags:    []cli.Flag{&cli.StringFlag{Name: "log-level"}},
		Before:   r.Before,
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"marquee"}, args...))
}

func tokenFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if token, ok := strings.CutPrefix(line, "Token: "); ok {
			return token
		}
	}
	t.Fatalf("no token in output %q", out)
	return ""
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			store := session.NewStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Store:      store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
			if runner.movies == nil || runner.auth == nil {
				t.Error("expected HTTP services to be wired")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.configPath != defaultConfigPath {
				t.Errorf("expected %s, got %s", defaultConfigPath, runner.configPath)
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected stdout to be used")
			}
		})

		t.Run("SetLogger rewires owned services", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			before := runner.auth

			runner.SetLogger(shared.NewLogger(io.Discard))
			if runner.auth == before {
				t.Error("expected a rebuilt auth service")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("test"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"setup", "movies", "auth", "player", "api", "devapi", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, name := range want {
			if commands[i].Name != name {
				t.Errorf("expected command %d to be %s, got %s", i, name, commands[i].Name)
			}
		}
	})
}

func TestMoviesCommands(t *testing.T) {
	t.Run("list as CSV over every page", func(t *testing.T) {
		runner, output := newTestRunner(t)
		if err := run(runner, "movies", "list", "--format", "csv", "--pages", "3"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if lines[0] != "Position,Title,Rating,Poster,Backdrop,Link" {
			t.Errorf("unexpected header %q", lines[0])
		}
		if len(lines) != 25 {
			t.Errorf("expected 24 movies and a header, got %d lines", len(lines))
		}
		if !strings.Contains(output.String(), "Tom & Jerry Classic") {
			t.Error("expected sanitized titles")
		}
	})

	t.Run("list writes a file", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := filepath.Join(t.TempDir(), "movies.md")

		if err := run(runner, "movies", "list", "-f", "md", "-o", path, "--row", "popular"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(tu.MustReadFile(t, path), catalog.Rows[2].Label) {
			t.Error("expected the row label as heading")
		}
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected the path in the output, got %q", output.String())
		}
	})

	t.Run("list rejects unknown format and row", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		if err := run(runner, "movies", "list", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if err := run(runner, "movies", "list", "--row", "sideways"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("search matches titles case-insensitively", func(t *testing.T) {
		runner, output := newTestRunner(t)
		if err := run(runner, "movies", "search", "--pages", "3", "TOM"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Tom & Jerry Classic") {
			t.Errorf("expected a match, got %q", output.String())
		}
		if !strings.Contains(output.String(), "player?") {
			t.Error("expected player links")
		}
	})

	t.Run("search without matches", func(t *testing.T) {
		runner, output := newTestRunner(t)
		if err := run(runner, "movies", "search", "zzzz"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), catalog.MessageNoResults) {
			t.Errorf("expected %q, got %q", catalog.MessageNoResults, output.String())
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		if err := run(runner, "movies", "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("hero", func(t *testing.T) {
		runner, output := newTestRunner(t)
		if err := run(runner, "movies", "hero", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"Link": "player?`) {
			t.Errorf("expected a hero with a player link, got %q", output.String())
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		runner.config.API.MoviesURL = "http://127.0.0.1:1/movies"
		runner.wire()

		if err := run(runner, "movies", "list"); !errors.Is(err, shared.ErrFetchFailed) {
			t.Errorf("expected ErrFetchFailed, got %v", err)
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("signup login and verify", func(t *testing.T) {
		runner, output := newTestRunner(t)

		err := run(runner, "auth", "signup", "--name", "Ann", "--email", "ann@example.com", "--password", "secret1")
		if err != nil {
			t.Fatalf("signup: expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Account created!") {
			t.Errorf("expected the signup notice, got %q", output.String())
		}

		output.Reset()
		if err := run(runner, "auth", "login", "-e", "ann@example.com", "-p", "secret1"); err != nil {
			t.Fatalf("login: expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Welcome back!") {
			t.Errorf("expected the login notice, got %q", output.String())
		}
		token := tokenFrom(t, output.String())
		if runner.store.Token() != token {
			t.Error("expected the token in the session store")
		}

		output.Reset()
		if err := run(runner, "auth", "verify", token); err != nil {
			t.Fatalf("verify: expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Profile: A") || !strings.Contains(output.String(), "verified") {
			t.Errorf("expected a verified profile, got %q", output.String())
		}
	})

	t.Run("signup validation runs before the request", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := run(runner, "auth", "signup", "--name", "Ann", "--email", "ann@example.com", "--password", "abc")

		if !errors.Is(err, shared.ErrValidation) || !strings.Contains(err.Error(), session.MessagePasswordTooShort) {
			t.Errorf("expected a password validation error, got %v", err)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := run(runner, "auth", "login", "--email", "nobody@example.com", "--password", "secret1")

		if !errors.Is(err, shared.ErrAuthRejected) {
			t.Errorf("expected ErrAuthRejected, got %v", err)
		}
		if runner.store.Token() != "" {
			t.Error("expected nothing stored")
		}
	})

	t.Run("invalid token is rejected and purged", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := run(runner, "auth", "verify", "not-a-token")

		if !errors.Is(err, shared.ErrVerifyRejected) {
			t.Errorf("expected ErrVerifyRejected, got %v", err)
		}
		if runner.store.Token() != "" {
			t.Error("expected the token purged")
		}
	})
}

func TestPlayerCommand(t *testing.T) {
	runner, output := newTestRunner(t)
	var opened string
	runner.browser = func(u string) error {
		opened = u
		return nil
	}

	link := "player?img=https%3A%2F%2Fimg.example.com%2Fb.jpg&rating=8.1&title=Metropolis"
	if err := run(runner, "player", "--open", link); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, want := range []string{"Metropolis", "⭐ 8.1", "Playing functionality coming soon!"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("expected %q in %q", want, output.String())
		}
	}
	if opened != "https://img.example.com/b.jpg" {
		t.Errorf("expected the backdrop opened, got %q", opened)
	}

	if err := run(runner, "player"); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("expected ErrMissingArgument, got %v", err)
	}
}

func TestAPICommands(t *testing.T) {
	t.Run("non-2xx is an API error", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := run(runner, "api", "post", "--data", `{"email":"x@example.com","password":"nope"}`, "/api/login")

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		err := run(runner, "api", "post", "--data", "{", "/api/login")

		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("get prints JSON", func(t *testing.T) {
		runner, output := newTestRunner(t)
		if err := run(runner, "api", "get", "--json", runner.config.API.MoviesURL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"current_page":1`) {
			t.Errorf("expected compact JSON, got %q", output.String()[:min(80, output.Len())])
		}
	})
}

func TestSetupCommand(t *testing.T) {
	runner, output := newTestRunner(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := run(runner, "setup", "--config", path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	tu.AssertFileExists(t, path)
	if runner.configPath != path {
		t.Errorf("expected config path %s, got %s", path, runner.configPath)
	}
	if !strings.Contains(output.String(), "Configuration ready") {
		t.Errorf("unexpected output %q", output.String())
	}

	if err := run(runner, "setup", "--config", path); err != nil {
		t.Errorf("expected an existing config to load, got %v", err)
	}
}
