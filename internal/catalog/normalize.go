package catalog

import (
	"html"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultTitle = "Unknown Title"

	minSynthRating = 7.0
	maxSynthRating = 9.0
)

// Sentinels that mark an image URL as unusable.
var invalidImageMarkers = []string{"placeholder", "null"}

// ValidImage reports whether url can be shown: non-empty and free of placeholder or null sentinels.
func ValidImage(url string) bool {
	if url == "" {
		return false
	}
	for _, m := range invalidImageMarkers {
		if strings.Contains(url, m) {
			return false
		}
	}
	return true
}

// NewRand returns a random source seeded from the runtime generator.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Normalizer builds [models.DisplayMovie] values from raw records.
type Normalizer struct {
	rng    *rand.Rand
	policy *bluemonday.Policy
}

// NewNormalizer creates a normalizer drawing synthesized ratings from rng; nil uses [NewRand].
func NewNormalizer(rng *rand.Rand) *Normalizer {
	if rng == nil {
		rng = NewRand()
	}
	return &Normalizer{rng: rng, policy: bluemonday.StrictPolicy()}
}

// NormalizePage normalizes the records of page. A nil page is treated as empty.
func (n *Normalizer) NormalizePage(page *models.MoviePage) ([]models.DisplayMovie, error) {
	if page == nil {
		return n.Normalize(nil)
	}
	return n.Normalize(page.Data)
}

// Normalize keeps the records with a valid image, in input order, and maps them for display.
//
// Returns [shared.ErrNoValidContent] when nothing survives.
func (n *Normalizer) Normalize(records []models.MovieRecord) ([]models.DisplayMovie, error) {
	movies := make([]models.DisplayMovie, 0, len(records))
	for _, r := range records {
		if !ValidImage(r.PosterOrBackdrop()) {
			continue
		}
		movies = append(movies, models.DisplayMovie{
			Title:         n.Title(r),
			PosterImage:   r.PosterOrBackdrop(),
			BackdropImage: r.BackdropOrPoster(),
			Rating:        n.Rating(r),
		})
	}

	if len(movies) == 0 {
		return nil, shared.ErrNoValidContent
	}
	return movies, nil
}

// Title resolves original_title, then title, then [DefaultTitle]. Markup is stripped and
// entities decoded; a title that is empty afterwards counts as absent.
func (n *Normalizer) Title(r models.MovieRecord) string {
	for _, candidate := range []string{r.OriginalTitle, r.Title} {
		if t := n.clean(candidate); t != "" {
			return t
		}
	}
	return DefaultTitle
}

func (n *Normalizer) clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(s)))
}

// Rating returns vote_average, or a synthesized value in [7.0, 9.0) truncated to one decimal
// when it is missing or zero.
func (n *Normalizer) Rating(r models.MovieRecord) float64 {
	if r.VoteAverage != nil && *r.VoteAverage != 0 {
		return *r.VoteAverage
	}
	x := minSynthRating + n.rng.Float64()*(maxSynthRating-minSynthRating)
	// the sum can round up to the bound itself
	return math.Min(math.Floor(x*10), maxSynthRating*10-1) / 10
}
