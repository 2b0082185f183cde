package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domaingames "game-catalog-service/internal/domain/games"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, domaingames.Draft{Title: "Asteroids", Genre: "Arcade", ReleaseYear: domaingames.Year(1979)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Asteroids" || got.Genre != "Arcade" {
		t.Fatalf("unexpected game %+v", got)
	}
	if got.ReleaseYear == nil || *got.ReleaseYear != 1979 {
		t.Fatalf("release year = %v, want 1979", got.ReleaseYear)
	}
}

func TestInsertWithoutReleaseYear(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	created, err := s.Insert(context.Background(), domaingames.Draft{Title: "Galaga", Genre: "Arcade"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ReleaseYear != nil {
		t.Fatalf("expected nil release year, got %d", *got.ReleaseYear)
	}
}

func TestInsertDuplicateTitleReturnsTitleTaken(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	ctx := context.Background()
	if _, err := s.Insert(ctx, domaingames.Draft{Title: "Asteroids", Genre: "Arcade"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := s.Insert(ctx, domaingames.Draft{Title: "Asteroids", Genre: "Shooter"})
	if !errors.Is(err, domaingames.ErrTitleTaken) {
		t.Fatalf("duplicate insert error = %v, want %v", err, domaingames.ErrTitleTaken)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	if _, err := s.Get(context.Background(), 5); !errors.Is(err, domaingames.ErrNotFound) {
		t.Fatalf("get error = %v, want %v", err, domaingames.ErrNotFound)
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	ctx := context.Background()
	_, _ = s.Insert(ctx, domaingames.Draft{Title: "Pong", Genre: "Arcade"})
	created, _ := s.Insert(ctx, domaingames.Draft{Title: "Galaga", Genre: "Arcade"})

	genre := "Arcade-Deluxe"
	updated, err := s.Update(ctx, created.ID, domaingames.Patch{Genre: &genre, ReleaseYear: domaingames.Year(1980)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.Title != "Galaga" || updated.Genre != genre {
		t.Fatalf("unexpected updated game %+v", updated)
	}

	got, _ := s.Get(ctx, created.ID)
	if got.Genre != genre || got.ReleaseYear == nil || *got.ReleaseYear != 1980 {
		t.Fatalf("update not persisted: %+v", got)
	}

	taken := "Pong"
	if _, err := s.Update(ctx, created.ID, domaingames.Patch{Title: &taken}); !errors.Is(err, domaingames.ErrTitleTaken) {
		t.Fatalf("update error = %v, want %v", err, domaingames.ErrTitleTaken)
	}
	if _, err := s.Update(ctx, 99, domaingames.Patch{Genre: &genre}); !errors.Is(err, domaingames.ErrNotFound) {
		t.Fatalf("update error = %v, want %v", err, domaingames.ErrNotFound)
	}
}

func TestDeleteRemovesAndNeverReusesID(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	ctx := context.Background()
	first, _ := s.Insert(ctx, domaingames.Draft{Title: "Pong", Genre: "Arcade"})

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, first.ID); !errors.Is(err, domaingames.ErrNotFound) {
		t.Fatalf("get after delete error = %v, want %v", err, domaingames.ErrNotFound)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, domaingames.ErrNotFound) {
		t.Fatalf("second delete error = %v, want %v", err, domaingames.ErrNotFound)
	}

	second, err := s.Insert(ctx, domaingames.Draft{Title: "Pong", Genre: "Arcade"})
	if err != nil {
		t.Fatalf("reinsert: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("id %d reused or decreased (first %d)", second.ID, first.ID)
	}
}

func TestListOrdersByID(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	for _, title := range []string{"Pong", "Galaga", "Tempest"} {
		if _, err := s.Insert(ctx, domaingames.Draft{Title: title, Genre: "Arcade"}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Title != "Pong" || list[2].Title != "Tempest" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "games.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Insert(ctx, domaingames.Draft{Title: "Pong", Genre: "Arcade"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if err := reopened.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	list, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Pong" {
		t.Fatalf("expected persisted game, got %+v", list)
	}
}

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	if got := extractUp(content); got != "\nCREATE TABLE a (id INTEGER);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if got := extractUp("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("expected whole content without markers, got %q", got)
	}
}

func TestSeedMarkerPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	ctx := context.Background()

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if seeded, err := first.Seeded(ctx); err != nil || seeded {
		t.Fatalf("expected fresh db unseeded, got (%v, %v)", seeded, err)
	}
	if err := first.MarkSeeded(ctx); err != nil {
		t.Fatalf("mark seeded: %v", err)
	}
	if err := first.MarkSeeded(ctx); err != nil {
		t.Fatalf("second mark seeded: %v", err)
	}
	_ = first.Close()

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if seeded, err := second.Seeded(ctx); err != nil || !seeded {
		t.Fatalf("expected seed marker after reopen, got (%v, %v)", seeded, err)
	}
}

func TestIsUniqueViolationOnlyForTitle(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, domaingames.Draft{Title: "Pong", Genre: "Arcade"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO games (id, title, genre) VALUES (1, 'Galaga', 'Arcade')`)
	if err == nil {
		t.Fatal("expected primary key collision")
	}
	if isUniqueViolation(err) {
		t.Fatalf("id collision must not be reported as a taken title: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO games (title, genre) VALUES ('Pong', 'Arcade')`)
	if !isUniqueViolation(err) {
		t.Fatalf("expected title collision to be a unique violation, got %v", err)
	}
}
