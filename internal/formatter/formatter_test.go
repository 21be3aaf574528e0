package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	th "github.com/desertthunder/marquee/internal/testing"
)

func testMovies() []models.DisplayMovie {
	return []models.DisplayMovie{
		{Title: "Heat", PosterImage: "https://img.example/heat-p.jpg", BackdropImage: "https://img.example/heat-b.jpg", Rating: 8.3},
		{Title: "Up, Up [and] Away", PosterImage: "https://img.example/up.jpg", BackdropImage: "https://img.example/up.jpg", Rating: 7.0},
	}
}

func TestParseFormat(t *testing.T) {
	tc := map[string]Format{"": FormatText, "CSV": FormatCSV, " md ": FormatMarkdown, "markdown": FormatMarkdown, "json": FormatJSON}
	for in, want := range tc {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testMovies())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("expected valid CSV, got %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(rows))
		}
		if strings.Join(rows[0], ",") != "Position,Title,Rating,Poster,Backdrop,Link" {
			t.Errorf("CSV missing headers, got: %v", rows[0])
		}
		if rows[2][1] != "Up, Up [and] Away" || rows[2][2] != "7.0" {
			t.Errorf("unexpected row: %v", rows[2])
		}
		if !strings.HasPrefix(rows[1][5], "player?") {
			t.Errorf("expected player link, got %q", rows[1][5])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Trending Now", testMovies())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Trending Now",
			"![Heat](https://img.example/heat-p.jpg)",
			"**Movies**: 2",
			"1. [Heat](player?",
			`2. [Up, Up \[and\] Away]`,
			"⭐ 8.3",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, _ := ExportToMarkdown("Empty", nil)
		if strings.Contains(string(data), "![") {
			t.Error("expected no cover image for an empty list")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testMovies())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, "Movies: 2") || !strings.Contains(output, "1. Heat (8.3)") {
			t.Errorf("unexpected text output:\n%s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testMovies())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		var decoded []models.DisplayMovie
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("expected valid JSON, got %v", err)
		}
		if len(decoded) != 2 || decoded[0].Title != "Heat" {
			t.Errorf("unexpected decoded movies: %+v", decoded)
		}

		empty, _ := ExportToJSON(nil)
		if strings.TrimSpace(string(empty)) != "[]" {
			t.Errorf("expected empty array, got %s", empty)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("Write", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, FormatText, "", testMovies()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "Heat") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("Write Failure", func(t *testing.T) {
		if err := Write(&th.FWriter{}, FormatCSV, "", testMovies()); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, Format("xml"), "", nil); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("WriteFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.md")
		if err := WriteFile(path, FormatMarkdown, "Catalog", testMovies()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "# Catalog") {
			t.Errorf("unexpected file content:\n%s", content)
		}
	})
}
