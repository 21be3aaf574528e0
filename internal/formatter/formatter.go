// package formatter renders the movie catalog in various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/shared"
)

// Format is an output format accepted by the CLI.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// Formats lists the accepted formats in help order.
var Formats = []Format{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat accepts a format name, case-insensitively. "markdown" is an alias of "md".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case "markdown":
		return FormatMarkdown, nil
	case FormatText, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
	}
}

// ExportToCSV converts movies to CSV with columns: Position, Title, Rating, Poster, Backdrop, Link
func ExportToCSV(movies []models.DisplayMovie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Title", "Rating", "Poster", "Backdrop", "Link"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, m := range movies {
		record := []string{
			fmt.Sprint(i + 1),
			m.Title,
			player.FormatRating(m.Rating),
			m.PosterImage,
			m.BackdropImage,
			player.Link(m),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts movies to a Markdown list under heading, with the poster of the
// first movie as a cover image.
func ExportToMarkdown(heading string, movies []models.DisplayMovie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", heading)
	if len(movies) > 0 && movies[0].PreferredPoster() != "" {
		fmt.Fprintf(&buf, "![%s](%s)\n\n", escapeMarkdown(movies[0].Title), movies[0].PreferredPoster())
	}
	fmt.Fprintf(&buf, "**Movies**: %d\n\n", len(movies))

	buf.WriteString("## Movies\n\n")
	for i, m := range movies {
		fmt.Fprintf(&buf, "%d. [%s](%s) ⭐ %s\n", i+1, escapeMarkdown(m.Title), player.Link(m), player.FormatRating(m.Rating))
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text, one per line.
func ExportToText(movies []models.DisplayMovie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Movies: %d\n\n", len(movies))
	for i, m := range movies {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, m.Title, player.FormatRating(m.Rating))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts movies to indented JSON.
func ExportToJSON(movies []models.DisplayMovie) ([]byte, error) {
	if movies == nil {
		movies = []models.DisplayMovie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders movies in format f.
func Export(f Format, heading string, movies []models.DisplayMovie) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown(heading, movies)
	case FormatJSON:
		return ExportToJSON(movies)
	case FormatText, "":
		return ExportToText(movies)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
	}
}

// Write renders movies and writes them to w.
func Write(w io.Writer, f Format, heading string, movies []models.DisplayMovie) error {
	data, err := Export(f, heading, movies)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile renders movies into the file at path.
func WriteFile(path string, f Format, heading string, movies []models.DisplayMovie) error {
	data, err := Export(f, heading, movies)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
