package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
)

// DefaultRedirectDelay is the pause between a successful submit and the landing redirect.
const DefaultRedirectDelay = 1500 * time.Millisecond

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// Messages shown by the auth forms.
const (
	MessageNameRequired     = "Please enter your full name"
	MessagePasswordTooShort = "Password must be at least 6 characters"
	MessagePasswordMismatch = "Passwords do not match"
	MessageWelcomeBack      = "Welcome back! Redirecting..."
	MessageAccountCreated   = "Account created! Redirecting..."
)

// Mode selects the form being submitted.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

func (m Mode) String() string {
	if m == ModeSignUp {
		return "signup"
	}
	return "signin"
}

// Form holds the raw field values. Name and Confirm are read only in [ModeSignUp].
type Form struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// ValidationError is a failed pre-flight check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return shared.ErrValidation }

// Validate runs the sign-up checks in order (name, password length, confirmation) and returns
// the first failure. Sign-in has no client-side checks.
func Validate(mode Mode, f Form) error {
	if mode != ModeSignUp {
		return nil
	}
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(f.Name)) < minNameLength:
		return &ValidationError{Field: "name", Message: MessageNameRequired}
	case utf8.RuneCountInString(f.Password) < minPasswordLength:
		return &ValidationError{Field: "password", Message: MessagePasswordTooShort}
	case f.Password != f.Confirm:
		return &ValidationError{Field: "confirm", Message: MessagePasswordMismatch}
	}
	return nil
}

// NoticeKind is the style of a notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeDanger  NoticeKind = "danger"
	NoticeInfo    NoticeKind = "primary"
)

// Notice is a transient user-facing notification.
type Notice struct {
	Message string
	Kind    NoticeKind
}

// Outcome is the result of one submission, before it is applied.
type Outcome struct {
	Mode     Mode
	Response *models.AuthResponse
	Err      error
}

// Result is what the page should do after an outcome was committed.
type Result struct {
	Notice   Notice
	Redirect bool          // navigate to the landing page
	Delay    time.Duration // after this pause
}

// Flow runs auth form submissions.
type Flow struct {
	auth          services.Authenticator
	store         *Store
	redirectDelay time.Duration
	logger        *log.Logger
}

// NewFlow creates a flow writing to store. A zero delay uses [DefaultRedirectDelay].
func NewFlow(auth services.Authenticator, store *Store, redirectDelay time.Duration, logger *log.Logger) *Flow {
	if redirectDelay <= 0 {
		redirectDelay = DefaultRedirectDelay
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Flow{auth: auth, store: store, redirectDelay: redirectDelay, logger: logger}
}

// Submit validates f and sends the request. It never touches the store; a validation failure
// returns without any network call.
func (f *Flow) Submit(ctx context.Context, mode Mode, form Form) Outcome {
	if err := Validate(mode, form); err != nil {
		f.logger.Debug("form rejected", "mode", mode, "error", err)
		return Outcome{Mode: mode, Err: err}
	}

	var (
		resp *models.AuthResponse
		err  error
	)
	switch mode {
	case ModeSignUp:
		resp, err = f.auth.Signup(ctx, models.SignupRequest{
			Name:     strings.TrimSpace(form.Name),
			Email:    form.Email,
			Password: form.Password,
		})
	default:
		resp, err = f.auth.Login(ctx, models.LoginRequest{Email: form.Email, Password: form.Password})
	}
	return Outcome{Mode: mode, Response: resp, Err: err}
}

// Commit applies an outcome. Only a success writes the session and requests the redirect.
func (f *Flow) Commit(o Outcome) Result {
	if o.Err != nil {
		return Result{Notice: Notice{Message: failureMessage(o.Err), Kind: NoticeDanger}}
	}
	if o.Response == nil || o.Response.User == nil {
		return Result{Notice: Notice{Message: services.MessageConnectionError, Kind: NoticeDanger}}
	}

	f.store.Persist(o.Response)
	f.logger.Info("session stored", "mode", o.Mode, "user_id", o.Response.User.ID, "email", o.Response.User.Email)

	message := MessageWelcomeBack
	if o.Mode == ModeSignUp {
		message = MessageAccountCreated
	}
	return Result{
		Notice:   Notice{Message: message, Kind: NoticeSuccess},
		Redirect: true,
		Delay:    f.redirectDelay,
	}
}

// Run submits and commits in one call.
func (f *Flow) Run(ctx context.Context, mode Mode, form Form) (Result, error) {
	o := f.Submit(ctx, mode, form)
	return f.Commit(o), o.Err
}

func failureMessage(err error) string {
	var vErr *ValidationError
	var aErr *services.AuthError
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.As(err, &aErr):
		return aErr.Message
	default:
		return services.MessageConnectionError
	}
}

// Describe renders a result for logs and the CLI.
func (r Result) Describe() string {
	if r.Redirect {
		return fmt.Sprintf("%s (%s, redirect in %s)", r.Notice.Message, r.Notice.Kind, r.Delay)
	}
	return fmt.Sprintf("%s (%s)", r.Notice.Message, r.Notice.Kind)
}
