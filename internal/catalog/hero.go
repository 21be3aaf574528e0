package catalog

import (
	"math/rand/v2"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/player"
)

// Hero is the featured movie at the top of the landing page.
type Hero struct {
	Movie  models.DisplayMovie
	Title  string
	Image  string // backdrop, or the poster when there is none
	Rating float64
	Link   string // primary action, same target as the movie's card
}

// SelectHero picks one movie uniformly at random. It reports false for an empty list.
func SelectHero(movies []models.DisplayMovie, rng *rand.Rand) (Hero, bool) {
	if len(movies) == 0 {
		return Hero{}, false
	}
	if rng == nil {
		rng = NewRand()
	}

	m := movies[rng.IntN(len(movies))]
	return Hero{
		Movie:  m,
		Title:  m.Title,
		Image:  m.PreferredBackdrop(),
		Rating: m.Rating,
		Link:   player.Link(m),
	}, true
}
