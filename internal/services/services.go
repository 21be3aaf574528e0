package services

import (
	"context"

	"github.com/desertthunder/marquee/internal/models"
)

// MovieSource provides raw catalog records.
type MovieSource interface {
	// FetchPage retrieves a single page; page 1 is the endpoint's default page.
	FetchPage(ctx context.Context, page int) (*models.MoviePage, error)

	// FetchAll retrieves the configured pages and concatenates their records in order.
	FetchAll(ctx context.Context) ([]models.MovieRecord, error)
}

// Authenticator talks to the remote auth API.
type Authenticator interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Verify checks a token and returns the user it belongs to.
	Verify(ctx context.Context, token string) (*models.User, error)
}

var (
	_ MovieSource   = (*MovieService)(nil)
	_ Authenticator = (*AuthService)(nil)
)
