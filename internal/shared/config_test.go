package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.MoviesURL != "https://jsonfakery.com/movies/paginated" {
			t.Errorf("expected default movies URL, got %s", config.API.MoviesURL)
		}
		if config.API.Pages != 1 {
			t.Errorf("expected 1 page, got %d", config.API.Pages)
		}
		if config.API.Timeout() != 0 {
			t.Errorf("expected no timeout, got %v", config.API.Timeout())
		}
		if config.Session.RedirectDelay().Milliseconds() != 1500 {
			t.Errorf("expected 1500ms redirect delay, got %v", config.Session.RedirectDelay())
		}
		if config.Carousel.Threshold != 10 {
			t.Errorf("expected carousel threshold 10, got %d", config.Carousel.Threshold)
		}
		if config.Search.MaxResults != 8 {
			t.Errorf("expected 8 max results, got %d", config.Search.MaxResults)
		}
		if config.Server.Addr() != "127.0.0.1:3000" {
			t.Errorf("expected server addr 127.0.0.1:3000, got %s", config.Server.Addr())
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.API.AuthBaseURL != DefaultConfig().API.AuthBaseURL {
			t.Errorf("created config auth base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig keeps defaults for missing keys", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
movies_url = "http://localhost:3000/movies/paginated"
auth_base_url = "http://localhost:3000"
pages = 3

[search]
max_results = 5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.AuthBaseURL != "http://localhost:3000" {
			t.Errorf("expected local auth base URL, got %s", config.API.AuthBaseURL)
		}
		if config.API.Pages != 3 {
			t.Errorf("expected 3 pages, got %d", config.API.Pages)
		}
		if config.Search.MaxResults != 5 {
			t.Errorf("expected 5 max results, got %d", config.Search.MaxResults)
		}
		if config.Carousel.CardWidth != 24 {
			t.Errorf("expected default card width 24, got %d", config.Carousel.CardWidth)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[api]\npages = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("MARQUEE_MOVIES_URL", "http://127.0.0.1:3000/movies/paginated")
		t.Setenv("MARQUEE_AUTH_URL", "")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.MoviesURL != "http://127.0.0.1:3000/movies/paginated" {
			t.Errorf("expected env movies URL, got %s", config.API.MoviesURL)
		}
		if config.API.AuthBaseURL != DefaultConfig().API.AuthBaseURL {
			t.Errorf("empty env value should not override, got %s", config.API.AuthBaseURL)
		}
	})
}
