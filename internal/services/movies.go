package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultMoviesURL is the public mock catalog endpoint.
const DefaultMoviesURL string = "https://jsonfakery.com/movies/paginated"

// MovieOptions configures a [MovieService].
type MovieOptions struct {
	URL            string
	Pages          int     // Pages fetched by FetchAll (default: 1)
	PagesPerSecond float64 // Pacing between page requests (default: 2.0)
}

// MovieService reads the paginated movie catalog.
type MovieService struct {
	api     *APIService
	url     string
	pages   int
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewMovieService creates a catalog reader on top of api.
func NewMovieService(api *APIService, opts MovieOptions) *MovieService {
	if opts.URL == "" {
		opts.URL = DefaultMoviesURL
	}
	if opts.Pages <= 0 {
		opts.Pages = 1
	}
	if opts.PagesPerSecond <= 0 {
		opts.PagesPerSecond = 2.0
	}

	return &MovieService{
		api:     api,
		url:     opts.URL,
		pages:   opts.Pages,
		limiter: rate.NewLimiter(rate.Limit(opts.PagesPerSecond), 1),
		logger:  shared.WithLogger(api.logger, "service", "movies"),
	}
}

// PageURL returns the catalog URL for page. Page 1 is the bare endpoint.
func (s *MovieService) PageURL(page int) (string, error) {
	if page <= 1 {
		return s.url, nil
	}

	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("%w: bad movies url %q: %w", shared.ErrInvalidConfig, s.url, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage retrieves one page of the catalog.
//
// A missing data field decodes to an empty page. Every failure wraps [shared.ErrFetchFailed].
func (s *MovieService) FetchPage(ctx context.Context, page int) (*models.MoviePage, error) {
	endpoint, err := s.PageURL(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
	}

	resp, err := s.api.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
	}

	var result models.MoviePage
	if err := resp.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
	}
	if result.Data == nil {
		result.Data = []models.MovieRecord{}
	}

	s.logger.Debug("fetched movie page", "page", page, "records", len(result.Data))
	return &result, nil
}

// FetchAll retrieves the configured number of pages in order and concatenates their records.
//
// Fetching stops early once the endpoint reports its last page. Any page failure fails the whole fetch.
func (s *MovieService) FetchAll(ctx context.Context) ([]models.MovieRecord, error) {
	records := make([]models.MovieRecord, 0)

	for page := 1; page <= s.pages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrFetchFailed, err)
		}

		result, err := s.FetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		records = append(records, result.Data...)

		if result.LastPage > 0 && page >= result.LastPage {
			break
		}
	}

	s.logger.Info("fetched movies", "records", len(records))
	return records, nil
}
