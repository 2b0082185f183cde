package games

import "strings"

// Game is the canonical game record exposed by the service.
type Game struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	ReleaseYear *int   `json:"releaseYear,omitempty"`
}

// Draft is the payload accepted when creating a game.
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	Genre       string `json:"genre" yaml:"genre"`
	ReleaseYear *int   `json:"releaseYear,omitempty" yaml:"releaseYear,omitempty"`
}

// Patch is a partial update; nil fields leave the stored value untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Genre       *string `json:"genre,omitempty"`
	ReleaseYear *int    `json:"releaseYear,omitempty"`
}

// Normalize trims surrounding whitespace from the text fields.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Genre = strings.TrimSpace(d.Genre)
	return d
}

// Validate reports the required fields that are missing.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, FieldTitle)
	}
	if strings.TrimSpace(d.Genre) == "" {
		missing = append(missing, FieldGenre)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Normalize trims surrounding whitespace from the text fields that are present.
func (p Patch) Normalize() Patch {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	if p.Genre != nil {
		genre := strings.TrimSpace(*p.Genre)
		p.Genre = &genre
	}
	return p
}

// Validate rejects present-but-blank required fields.
func (p Patch) Validate() error {
	var blank []string
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		blank = append(blank, FieldTitle)
	}
	if p.Genre != nil && strings.TrimSpace(*p.Genre) == "" {
		blank = append(blank, FieldGenre)
	}
	if len(blank) > 0 {
		return &ValidationError{Fields: blank}
	}
	return nil
}

// Apply returns a copy of g with the patch fields written over it. The id is preserved.
func (p Patch) Apply(g Game) Game {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Genre != nil {
		g.Genre = *p.Genre
	}
	if p.ReleaseYear != nil {
		year := *p.ReleaseYear
		g.ReleaseYear = &year
	}
	return g
}

// FromDraft builds a Game with the provided id.
func FromDraft(id int64, d Draft) Game {
	g := Game{ID: id, Title: d.Title, Genre: d.Genre}
	if d.ReleaseYear != nil {
		year := *d.ReleaseYear
		g.ReleaseYear = &year
	}
	return g
}

// Year is a convenience for building optional release years.
func Year(y int) *int {
	return &y
}
