package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	tu "github.com/desertthunder/marquee/internal/testing"
)

func pageServer(t *testing.T, lastPage int) (*httptest.Server, *tu.RequestLog) {
	t.Helper()
	log := &tu.RequestLog{}
	server := httptest.NewServer(log.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = "1"
		}
		tu.JSONHandler(http.StatusOK, models.MoviePage{
			Data:     []models.MovieRecord{{Title: "Movie " + page, PosterPath: "https://img.example/" + page + ".jpg"}},
			LastPage: lastPage,
		})(w, r)
	})))
	t.Cleanup(server.Close)
	return server, log
}

func TestMovieService(t *testing.T) {
	ctx := context.Background()

	t.Run("PageURL", func(t *testing.T) {
		srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: "https://jsonfakery.com/movies/paginated"})

		first, err := srv.PageURL(1)
		if err != nil || first != "https://jsonfakery.com/movies/paginated" {
			t.Errorf("expected bare endpoint for page 1, got %q (%v)", first, err)
		}
		third, err := srv.PageURL(3)
		if err != nil || third != "https://jsonfakery.com/movies/paginated?page=3" {
			t.Errorf("expected page query for page 3, got %q (%v)", third, err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{})
		if srv.url != DefaultMoviesURL {
			t.Errorf("expected default URL, got %s", srv.url)
		}
		if srv.pages != 1 {
			t.Errorf("expected 1 page, got %d", srv.pages)
		}
	})

	t.Run("FetchPage", func(t *testing.T) {
		t.Run("Decodes Records", func(t *testing.T) {
			server, _ := pageServer(t, 5)
			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: server.URL})

			page, err := srv.FetchPage(ctx, 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(page.Data) != 1 || page.Data[0].Title != "Movie 1" {
				t.Errorf("unexpected data: %+v", page.Data)
			}
			if page.LastPage != 5 {
				t.Errorf("expected last page 5, got %d", page.LastPage)
			}
		})

		t.Run("Missing Data Is Empty", func(t *testing.T) {
			server := httptest.NewServer(tu.JSONHandler(http.StatusOK, map[string]any{"current_page": 1}))
			defer server.Close()

			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: server.URL})
			page, err := srv.FetchPage(ctx, 1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page.Data == nil || len(page.Data) != 0 {
				t.Errorf("expected empty non-nil data, got %#v", page.Data)
			}
		})

		t.Run("Failures Are FetchFailed", func(t *testing.T) {
			cases := map[string]*http.Client{
				"transport": {Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))},
			}
			for name, client := range cases {
				srv := NewMovieService(NewAPIService("", client, nil), MovieOptions{URL: "http://example.com/movies"})
				if _, err := srv.FetchPage(ctx, 1); !errors.Is(err, shared.ErrFetchFailed) {
					t.Errorf("%s: expected ErrFetchFailed, got %v", name, err)
				}
			}

			status := httptest.NewServer(tu.JSONHandler(http.StatusInternalServerError, map[string]string{"message": "boom"}))
			defer status.Close()
			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: status.URL})
			_, err := srv.FetchPage(ctx, 1)
			if !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("status: expected ErrFetchFailed, got %v", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
				t.Errorf("status: expected wrapped APIError, got %v", err)
			}

			garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<html>")
			}))
			defer garbage.Close()
			srv = NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: garbage.URL})
			if _, err := srv.FetchPage(ctx, 1); !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("decode: expected ErrFetchFailed, got %v", err)
			}
		})
	})

	t.Run("FetchAll", func(t *testing.T) {
		t.Run("Concatenates Pages In Order", func(t *testing.T) {
			server, log := pageServer(t, 10)
			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: server.URL, Pages: 3, PagesPerSecond: 1000})

			records, err := srv.FetchAll(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(records) != 3 {
				t.Fatalf("expected 3 records, got %d", len(records))
			}
			for i, r := range records {
				if want := fmt.Sprintf("Movie %d", i+1); r.Title != want {
					t.Errorf("record %d: expected %q, got %q", i, want, r.Title)
				}
			}
			if log.Len() != 3 {
				t.Errorf("expected 3 requests, got %d", log.Len())
			}
		})

		t.Run("Stops At Last Page", func(t *testing.T) {
			server, log := pageServer(t, 2)
			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: server.URL, Pages: 5, PagesPerSecond: 1000})

			records, err := srv.FetchAll(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(records) != 2 || log.Len() != 2 {
				t.Errorf("expected 2 records from 2 requests, got %d from %d", len(records), log.Len())
			}
		})

		t.Run("Canceled Context", func(t *testing.T) {
			server, _ := pageServer(t, 10)
			srv := NewMovieService(NewAPIService("", nil, nil), MovieOptions{URL: server.URL})

			cctx, cancel := context.WithCancel(ctx)
			cancel()
			if _, err := srv.FetchAll(cctx); !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})
	})
}
