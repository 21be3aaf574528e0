package catalog

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/shared"
)

// Image shown when a card's poster cannot be loaded.
const CardFallbackImage = "https://via.placeholder.com/200x300?text=Image+Error"

// Inline messages rendered in place of cards.
const (
	MessageFetchFailed    = "Failed to load content."
	MessageNoValidContent = "No content available with images."
)

// RowID identifies a rendered row.
type RowID string

const (
	RowFeatured RowID = "movie-container"
	RowRecent   RowID = "movie-container-added"
	RowPopular  RowID = "movie-container-popular"
)

// Row describes a rendered row and the navbar section it belongs to.
type Row struct {
	ID    RowID
	Label string
}

// Rows lists the landing page rows in display order.
var Rows = []Row{
	{ID: RowFeatured, Label: "Trending Now"},
	{ID: RowRecent, Label: "Recently Added"},
	{ID: RowPopular, Label: "Popular"},
}

// Card is one movie in a row.
type Card struct {
	Title    string
	Image    string
	Fallback string
	Rating   float64
	Link     string
}

// NewCard projects m into a card; the link opens the player.
func NewCard(m models.DisplayMovie) Card {
	return Card{
		Title:    m.Title,
		Image:    m.PreferredPoster(),
		Fallback: CardFallbackImage,
		Rating:   m.Rating,
		Link:     player.Link(m),
	}
}

// Container is the contents of a row: either cards or an inline message.
type Container struct {
	ID      RowID
	Cards   []Card
	Message string
}

// Board holds the rendered rows of the landing page.
type Board struct {
	mu         sync.RWMutex
	containers map[RowID]*Container
}

// NewBoard creates a board with an empty container for each of [Rows].
func NewBoard() *Board {
	b := &Board{containers: make(map[RowID]*Container, len(Rows))}
	for _, r := range Rows {
		b.containers[r.ID] = &Container{ID: r.ID}
	}
	return b
}

// Render replaces the contents of row id with one card per movie.
func (b *Board) Render(id RowID, movies []models.DisplayMovie) error {
	cards := make([]Card, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, NewCard(m))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.containers[id]
	if !ok {
		return fmt.Errorf("%w: unknown row %q", shared.ErrInvalidArgument, id)
	}
	c.Cards = cards
	c.Message = ""
	return nil
}

// ShowMessage replaces the contents of row id with an inline message.
func (b *Board) ShowMessage(id RowID, message string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.containers[id]
	if !ok {
		return fmt.Errorf("%w: unknown row %q", shared.ErrInvalidArgument, id)
	}
	c.Cards = nil
	c.Message = message
	return nil
}

// RenderAll fills the rows from one movie list: featured in original order, recently added
// shuffled with rng, popular reversed. movies itself is not reordered.
func (b *Board) RenderAll(movies []models.DisplayMovie, rng *rand.Rand) error {
	orderings := map[RowID][]models.DisplayMovie{
		RowFeatured: movies,
		RowRecent:   Shuffled(movies, rng),
		RowPopular:  Reversed(movies),
	}
	for _, r := range Rows {
		if err := b.Render(r.ID, orderings[r.ID]); err != nil {
			return err
		}
	}
	return nil
}

// Container returns a copy of row id.
func (b *Board) Container(id RowID) (Container, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.containers[id]
	if !ok {
		return Container{}, false
	}
	return Container{ID: c.ID, Cards: slices.Clone(c.Cards), Message: c.Message}, true
}

// Shuffled returns a shuffled copy of movies.
func Shuffled(movies []models.DisplayMovie, rng *rand.Rand) []models.DisplayMovie {
	if rng == nil {
		rng = NewRand()
	}
	out := slices.Clone(movies)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Reversed returns a reversed copy of movies.
func Reversed(movies []models.DisplayMovie) []models.DisplayMovie {
	out := slices.Clone(movies)
	slices.Reverse(out)
	return out
}
