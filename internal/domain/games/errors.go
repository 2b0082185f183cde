package games

import (
	"errors"
	"strings"
)

// Field names reported in validation errors.
const (
	FieldTitle = "title"
	FieldGenre = "genre"
)

var (
	// ErrNotFound indicates no game exists for the requested id.
	ErrNotFound = errors.New("game not found")
	// ErrTitleTaken indicates another game already uses the title.
	ErrTitleTaken = errors.New("title already taken")
	// ErrValidation is the sentinel wrapped by ValidationError.
	ErrValidation = errors.New("invalid game")
)

// ValidationError lists the fields that are missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
