package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/marquee/internal/models"
)

//go:embed fixtures/movies.json
var moviesFixture []byte

const defaultPerPage = 12

// LoadFixtureMovies decodes the embedded catalog.
func LoadFixtureMovies() ([]models.MovieRecord, error) {
	var movies []models.MovieRecord
	if err := json.Unmarshal(moviesFixture, &movies); err != nil {
		return nil, fmt.Errorf("failed to parse movie fixture: %w", err)
	}
	return movies, nil
}

// MoviesHandler serves a movie list in the shape of the paginated catalog endpoint.
type MoviesHandler struct {
	movies  []models.MovieRecord
	perPage int
}

// NewMoviesHandler serves movies perPage at a time (default 12).
func NewMoviesHandler(movies []models.MovieRecord, perPage int) *MoviesHandler {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &MoviesHandler{movies: movies, perPage: perPage}
}

// Routes returns the HTTP routes this handler serves.
func (h *MoviesHandler) Routes() []string {
	return []string{"/movies/paginated"}
}

// ServeHTTP writes one page. Pages past the end are empty.
func (h *MoviesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			writeMessage(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = p
	}

	writeJSON(w, http.StatusOK, h.Page(page, r.URL))
}

// Page builds page p; base is the request URL used for next_page_url.
func (h *MoviesHandler) Page(p int, base *url.URL) models.MoviePage {
	total := len(h.movies)
	lastPage := max(1, (total+h.perPage-1)/h.perPage)

	// checked before multiplying so huge page numbers cannot overflow
	start := total
	if p >= 1 && p <= lastPage {
		start = (p - 1) * h.perPage
	}
	end := min(start+h.perPage, total)

	result := models.MoviePage{
		Data:        h.movies[start:end],
		CurrentPage: p,
		LastPage:    lastPage,
		PerPage:     h.perPage,
		Total:       total,
	}
	if p < lastPage && base != nil {
		next := *base
		q := next.Query()
		q.Set("page", strconv.Itoa(p+1))
		next.RawQuery = q.Encode()
		result.NextPageURL = next.RequestURI()
	}
	return result
}
