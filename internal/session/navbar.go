package session

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
)

// PlaceholderGlyph is shown in the profile icon until the token is verified.
const PlaceholderGlyph = "•"

// AuthState is the state of the navbar presenter.
type AuthState int

const (
	LoggedOut AuthState = iota
	OptimisticLoggedIn
	VerifiedLoggedIn
)

func (s AuthState) String() string {
	switch s {
	case OptimisticLoggedIn:
		return "optimistic"
	case VerifiedLoggedIn:
		return "verified"
	default:
		return "logged-out"
	}
}

// Navbar reconciles the optimistic logged-in display against the verify endpoint.
type Navbar struct {
	store *Store
	state AuthState
	glyph string
}

// NewNavbar creates a presenter and derives its initial state from store.
func NewNavbar(store *Store) *Navbar {
	n := &Navbar{store: store}
	n.Reconcile()
	return n
}

// Reconcile re-derives the state from the store, as on every page navigation. It returns the
// token to verify, or "" when logged out.
func (n *Navbar) Reconcile() string {
	token := n.store.Token()
	if token == "" {
		n.state = LoggedOut
		n.glyph = ""
		return ""
	}
	n.state = OptimisticLoggedIn
	n.glyph = PlaceholderGlyph
	return token
}

// Verified applies a successful verification of token. Results for a token that is no longer
// stored are ignored.
func (n *Navbar) Verified(token string, user *models.User) {
	if token == "" || token != n.store.Token() || user == nil {
		return
	}
	n.state = VerifiedLoggedIn
	n.glyph = Glyph(user.Email)
}

// VerifyFailed purges the session and demotes to logged out. Failures for a token that is no
// longer stored are ignored.
func (n *Navbar) VerifyFailed(token string) {
	if token == "" || token != n.store.Token() {
		return
	}
	n.store.Purge()
	n.state = LoggedOut
	n.glyph = ""
}

// Verify reconciles and, when a token is stored, verifies it with auth.
func (n *Navbar) Verify(ctx context.Context, auth services.Authenticator) error {
	token := n.Reconcile()
	if token == "" {
		return nil
	}

	user, err := auth.Verify(ctx, token)
	if err != nil {
		n.VerifyFailed(token)
		return err
	}
	n.Verified(token, user)
	return nil
}

// Logout purges the session unconditionally. The caller navigates to the landing page.
func (n *Navbar) Logout() {
	n.store.Purge()
	n.state = LoggedOut
	n.glyph = ""
}

func (n *Navbar) State() AuthState      { return n.state }
func (n *Navbar) ShowAuthButtons() bool { return n.state == LoggedOut }
func (n *Navbar) ShowProfile() bool     { return n.state != LoggedOut }
func (n *Navbar) Glyph() string         { return n.glyph }

// Glyph returns the first character of email, uppercased.
func Glyph(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return PlaceholderGlyph
	}
	r, _ := utf8.DecodeRuneInString(email)
	return string(unicode.ToUpper(r))
}
