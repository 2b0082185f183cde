package games

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestGameJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}

	gameType := reflect.TypeOf(Game{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Title", "title"},
		{"Genre", "genre"},
		{"ReleaseYear", "releaseYear,omitempty"},
	}

	for _, f := range fields {
		field, ok := gameType.FieldByName(f.name)
		if !ok {
			t.Fatalf("field %s not found", f.name)
		}
		if got := field.Tag.Get("json"); got != f.tag {
			t.Fatalf("expected json tag %q for %s, got %q", f.tag, f.name, got)
		}
	}
}

func TestGameOmitsMissingReleaseYear(t *testing.T) {
	data, err := json.Marshal(Game{ID: 1, Title: "Galaga", Genre: "Arcade"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "releaseYear") {
		t.Fatalf("expected releaseYear omitted, got %s", data)
	}
}

func TestDraftValidate(t *testing.T) {
	cases := []struct {
		name    string
		draft   Draft
		missing []string
	}{
		{"complete", Draft{Title: "Asteroids", Genre: "Arcade", ReleaseYear: Year(1979)}, nil},
		{"no year", Draft{Title: "Galaga", Genre: "Arcade"}, nil},
		{"no genre", Draft{Title: "Ms. Pacman", ReleaseYear: Year(1981)}, []string{FieldGenre}},
		{"no title", Draft{Genre: "Arcade", ReleaseYear: Year(1980)}, []string{FieldTitle}},
		{"blank both", Draft{Title: "  ", Genre: "\t"}, []string{FieldTitle, FieldGenre}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.missing == nil {
				if err != nil {
					t.Fatalf("expected valid draft, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !reflect.DeepEqual(verr.Fields, tc.missing) {
				t.Fatalf("expected fields %v, got %v", tc.missing, verr.Fields)
			}
		})
	}
}

func TestDraftNormalizeTrims(t *testing.T) {
	d := Draft{Title: "  Pong ", Genre: " Arcade"}.Normalize()
	if d.Title != "Pong" || d.Genre != "Arcade" {
		t.Fatalf("unexpected normalized draft %+v", d)
	}
}

func TestPatchIgnoresUnknownFields(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"game":"Pacman","genre":"Arcade-Deluxe","releaseYear":1980}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Title != nil {
		t.Fatalf("expected title untouched, got %q", *p.Title)
	}
	if p.Genre == nil || *p.Genre != "Arcade-Deluxe" {
		t.Fatalf("expected genre patch, got %+v", p.Genre)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected patch to validate, got %v", err)
	}
}

func TestPatchValidateRejectsBlankFields(t *testing.T) {
	blank := " "
	err := Patch{Title: &blank}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPatchApplyPreservesID(t *testing.T) {
	genre := "Arcade-Deluxe"
	orig := Game{ID: 2, Title: "Galaga", Genre: "Arcade"}

	got := Patch{Genre: &genre, ReleaseYear: Year(1981)}.Apply(orig)

	if got.ID != 2 || got.Title != "Galaga" || got.Genre != genre {
		t.Fatalf("unexpected patched game %+v", got)
	}
	if got.ReleaseYear == nil || *got.ReleaseYear != 1981 {
		t.Fatalf("expected release year 1981, got %v", got.ReleaseYear)
	}
	if orig.Genre != "Arcade" {
		t.Fatalf("expected original untouched, got %+v", orig)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []string{FieldTitle, FieldGenre}}
	if err.Error() != "invalid fields: title, genre" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
