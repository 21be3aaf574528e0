// Package player implements the navigation contract of the player view.
//
// A link carries three query parameters: title, img (the backdrop or poster URL) and rating
// (a decimal string). The view reads them back; a missing title defaults to [DefaultTitle] and
// a missing img leaves the backdrop unset.
package player

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

const (
	// Path is the route of the player view.
	Path = "player"

	DefaultTitle = "Unknown Movie"
	PlayNotice   = "Playing functionality coming soon!"
)

// View is what the player page displays.
type View struct {
	Title  string
	Image  string // empty when the link carried no img
	Rating string // raw decimal string, possibly empty
}

// HasBackdrop reports whether the view has an image to show.
func (v View) HasBackdrop() bool { return v.Image != "" }

// RatingValue parses the rating parameter.
func (v View) RatingValue() (float64, bool) {
	r, err := strconv.ParseFloat(v.Rating, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

// FormatRating renders a rating with one decimal.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Query encodes the player parameters for m. The rating keeps every digit of the source value.
func Query(m models.DisplayMovie) url.Values {
	q := url.Values{}
	q.Set("title", m.Title)
	q.Set("img", m.PreferredBackdrop())
	q.Set("rating", strconv.FormatFloat(m.Rating, 'f', -1, 64))
	return q
}

// Link returns the navigation target for m, e.g. "player?img=...&rating=8.1&title=...".
func Link(m models.DisplayMovie) string {
	return Path + "?" + Query(m).Encode()
}

// Parse reads a view from query parameters.
func Parse(q url.Values) View {
	v := View{
		Title:  q.Get("title"),
		Image:  q.Get("img"),
		Rating: q.Get("rating"),
	}
	if v.Title == "" {
		v.Title = DefaultTitle
	}
	return v
}

// ParseLink reads a view from a link. It accepts a bare query string, a "player?..." link,
// or a full URL whose query holds the parameters.
func ParseLink(link string) (View, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return View{}, fmt.Errorf("%w: empty player link", shared.ErrMissingArgument)
	}

	raw := link
	if i := strings.IndexByte(link, '?'); i >= 0 {
		raw = link[i+1:]
	} else if strings.Contains(link, "/") || !strings.Contains(link, "=") {
		return Parse(url.Values{}), nil
	}

	q, err := url.ParseQuery(raw)
	if err != nil {
		return View{}, fmt.Errorf("%w: bad player link %q: %w", shared.ErrInvalidArgument, link, err)
	}
	return Parse(q), nil
}
