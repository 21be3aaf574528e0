package catalog

import (
	"slices"
	"strings"
	"sync"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/player"
	"golang.org/x/text/cases"
)

const (
	DefaultMaxResults   = 8
	SearchFallbackImage = "https://via.placeholder.com/50x75?text=No+Image"
	MessageNoResults    = "No results found"
)

// Corpus is the searchable movie set. It starts empty and is replaced wholesale after each
// successful fetch; every replacement bumps the generation.
type Corpus struct {
	mu         sync.RWMutex
	movies     []models.DisplayMovie
	generation uint64
}

// Replace swaps in a copy of movies and returns the new generation.
func (c *Corpus) Replace(movies []models.DisplayMovie) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = slices.Clone(movies)
	c.generation++
	return c.generation
}

// Snapshot returns the current movies and generation. Callers must not modify the slice.
func (c *Corpus) Snapshot() ([]models.DisplayMovie, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.movies, c.generation
}

// Generation returns the current generation; zero means never filled.
func (c *Corpus) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Len returns the number of movies in the corpus.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}

// SearchResult is one compact row of the search panel.
type SearchResult struct {
	Title    string
	Image    string
	Fallback string
	Rating   float64
	Link     string
}

// Results is the outcome of one query against one corpus generation.
type Results struct {
	Query      string
	Generation uint64
	Items      []SearchResult
}

// Index filters a [Corpus] by title.
type Index struct {
	corpus     *Corpus
	maxResults int
}

// NewIndex creates an index over corpus returning at most maxResults matches (default 8).
func NewIndex(corpus *Corpus, maxResults int) *Index {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Index{corpus: corpus, maxResults: maxResults}
}

// NormalizeQuery trims and case-folds a query.
func NormalizeQuery(q string) string {
	return cases.Fold().String(strings.TrimSpace(q))
}

// Search returns the first matches of query in corpus order. An empty query has no items.
func (ix *Index) Search(query string) Results {
	movies, gen := ix.corpus.Snapshot()
	res := Results{Query: strings.TrimSpace(query), Generation: gen}

	needle := NormalizeQuery(query)
	if needle == "" {
		return res
	}

	// a Caser keeps state between calls
	fold := cases.Fold()
	for _, m := range movies {
		if !strings.Contains(fold.String(m.Title), needle) {
			continue
		}
		res.Items = append(res.Items, SearchResult{
			Title:    m.Title,
			Image:    m.PreferredPoster(),
			Fallback: SearchFallbackImage,
			Rating:   m.Rating,
			Link:     player.Link(m),
		})
		if len(res.Items) == ix.maxResults {
			break
		}
	}
	return res
}

// Panel is the state of the search surface.
type Panel struct {
	index   *Index
	open    bool
	input   string
	results Results
}

// NewPanel creates a closed panel backed by index.
func NewPanel(index *Index) *Panel {
	return &Panel{index: index}
}

// Toggle opens a closed panel and closes an open one.
func (p *Panel) Toggle() {
	if p.open {
		p.Close()
		return
	}
	p.open = true
}

// Close hides the panel and clears both input and results.
func (p *Panel) Close() {
	p.open = false
	p.input = ""
	p.results = Results{}
}

// SetInput records the query text and filters synchronously.
func (p *Panel) SetInput(q string) {
	p.input = q
	p.Apply(p.index.Search(q))
}

// Refresh reruns the current query, e.g. after the corpus was replaced.
func (p *Panel) Refresh() {
	p.Apply(p.index.Search(p.input))
}

// Apply shows res unless it was computed for a different query or an older corpus.
// It reports whether res was accepted.
func (p *Panel) Apply(res Results) bool {
	if !p.open {
		return false
	}
	if res.Query != strings.TrimSpace(p.input) || res.Generation != p.index.corpus.Generation() {
		return false
	}
	p.results = res
	return true
}

func (p *Panel) IsOpen() bool     { return p.open }
func (p *Panel) Input() string    { return p.input }
func (p *Panel) Results() Results { return p.results }

// Message returns the empty-state text, set only when a non-empty query matched nothing.
func (p *Panel) Message() string {
	if p.results.Query != "" && len(p.results.Items) == 0 {
		return MessageNoResults
	}
	return ""
}
