package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/google/uuid"
)

// DefaultAuthBaseURL is the hosted auth API.
const DefaultAuthBaseURL string = "https://university-project-hbo-max-be.onrender.com"

// User-facing fallback messages.
const (
	MessageAuthFailed      = "Authentication failed"
	MessageConnectionError = "Server connection error. Please try again."
)

// AuthError is a failed auth call. Error returns the message shown to the user.
type AuthError struct {
	Kind    error // one of shared.ErrAuthRejected, shared.ErrTransport, shared.ErrVerifyRejected
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AuthService implements [Authenticator] against the remote auth API.
type AuthService struct {
	api    *APIService
	logger *log.Logger
}

// NewAuthService creates an auth client. api must be rooted at the auth base URL.
func NewAuthService(api *APIService) *AuthService {
	return &AuthService{api: api, logger: shared.WithLogger(api.logger, "service", "auth")}
}

// Signup calls POST /api/signup.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/api/signup", req)
}

// Login calls POST /api/login.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return s.authenticate(ctx, "/api/login", req)
}

// authenticate posts body and interprets the response.
//
// A non-2xx response shows the server message, or [MessageAuthFailed] when it has none.
// An unreadable body, or a 2xx response missing the token or user, is a transport failure.
func (s *AuthService) authenticate(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "endpoint", path)

	resp, err := s.api.PostJSON(ctx, path, body)
	if err != nil {
		logger.Error("auth request failed", "error", err)
		return nil, transportError(err)
	}

	if !resp.OK() {
		var failure models.ErrorResponse
		if err := resp.Decode(&failure); err != nil {
			logger.Error("unreadable auth failure", "status", resp.StatusCode, "error", err)
			return nil, transportError(err)
		}
		message := failure.Message
		if message == "" {
			message = MessageAuthFailed
		}
		logger.Info("auth rejected", "status", resp.StatusCode, "message", message)
		return nil, &AuthError{Kind: shared.ErrAuthRejected, Message: message, Err: resp.Err()}
	}

	var result models.AuthResponse
	if err := resp.Decode(&result); err != nil {
		logger.Error("unreadable auth response", "error", err)
		return nil, transportError(err)
	}
	if result.Token == "" || result.User == nil {
		logger.Error("incomplete auth response", "status", resp.StatusCode)
		return nil, transportError(errors.New("response is missing token or user"))
	}

	logger.Info("User authenticated successfully", "id", result.User.ID, "name", result.User.Name, "email", result.User.Email)
	return &result, nil
}

// Verify calls POST /api/verify. Any failure is a [shared.ErrVerifyRejected].
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	resp, err := s.api.PostJSON(ctx, "/api/verify", models.VerifyRequest{Token: token})
	if err != nil {
		s.logger.Info("verification failed", "error", err)
		return nil, verifyError(err)
	}
	if err := resp.Err(); err != nil {
		s.logger.Info("verification failed", "status", resp.StatusCode)
		return nil, verifyError(err)
	}

	var result models.AuthResponse
	if err := resp.Decode(&result); err != nil {
		s.logger.Info("verification failed", "error", err)
		return nil, verifyError(err)
	}
	if result.User == nil || result.User.Email == "" {
		s.logger.Info("verification failed", "error", "response is missing user email")
		return nil, verifyError(errors.New("response is missing user email"))
	}

	s.logger.Debug("verification successful", "email", result.User.Email)
	return result.User, nil
}

func transportError(err error) *AuthError {
	return &AuthError{Kind: shared.ErrTransport, Message: MessageConnectionError, Err: err}
}

func verifyError(err error) *AuthError {
	return &AuthError{Kind: shared.ErrVerifyRejected, Message: "Invalid token", Err: err}
}
