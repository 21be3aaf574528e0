package models

// MovieRecord is a raw catalog entry. Every field is optional and the source gives no
// uniqueness or ordering guarantee.
type MovieRecord struct {
	ID            ID       `json:"id,omitempty"`
	PosterPath    string   `json:"poster_path,omitempty"`
	BackdropPath  string   `json:"backdrop_path,omitempty"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Title         string   `json:"title,omitempty"`
	VoteAverage   *float64 `json:"vote_average,omitempty"`
}

// PosterOrBackdrop resolves the portrait image used by cards.
func (r MovieRecord) PosterOrBackdrop() string {
	if r.PosterPath != "" {
		return r.PosterPath
	}
	return r.BackdropPath
}

// BackdropOrPoster resolves the landscape image used by the hero and the player.
func (r MovieRecord) BackdropOrPoster() string {
	if r.BackdropPath != "" {
		return r.BackdropPath
	}
	return r.PosterPath
}

// MoviePage is one page of the paginated catalog endpoint.
type MoviePage struct {
	Data        []MovieRecord `json:"data"`
	CurrentPage int           `json:"current_page,omitempty"`
	LastPage    int           `json:"last_page,omitempty"`
	PerPage     int           `json:"per_page,omitempty"`
	Total       int           `json:"total,omitempty"`
	NextPageURL string        `json:"next_page_url,omitempty"`
}

// DisplayMovie is the normalized movie every view renders. It is immutable once built.
type DisplayMovie struct {
	Title         string  `json:"title"`
	PosterImage   string  `json:"poster_image,omitempty"`
	BackdropImage string  `json:"backdrop_image,omitempty"`
	Rating        float64 `json:"rating"`
}

// PreferredBackdrop returns the backdrop, falling back to the poster.
func (m DisplayMovie) PreferredBackdrop() string {
	if m.BackdropImage != "" {
		return m.BackdropImage
	}
	return m.PosterImage
}

// PreferredPoster returns the poster, falling back to the backdrop.
func (m DisplayMovie) PreferredPoster() string {
	if m.PosterImage != "" {
		return m.PosterImage
	}
	return m.BackdropImage
}
