// Package sqlite provides a SQLite-backed game store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	domaingames "game-catalog-service/internal/domain/games"
	"game-catalog-service/internal/store/sqlite/migrations"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists games in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", cleanPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	return s.db.PingContext(ctx)
}

// List returns every game ordered by id.
func (s *Store) List(ctx context.Context) ([]domaingames.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, genre, release_year FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	out := make([]domaingames.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

// Get returns one game by id.
func (s *Store) Get(ctx context.Context, id int64) (domaingames.Game, error) {
	return getGame(ctx, s.db, id)
}

// Insert stores a new game; a taken title maps to domaingames.ErrTitleTaken.
func (s *Store) Insert(ctx context.Context, draft domaingames.Draft) (domaingames.Game, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (title, genre, release_year) VALUES (?, ?, ?)`,
		draft.Title, draft.Genre, nullYear(draft.ReleaseYear),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domaingames.Game{}, domaingames.ErrTitleTaken
		}
		return domaingames.Game{}, fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("insert game id: %w", err)
	}
	return domaingames.FromDraft(id, draft), nil
}

// Update applies patch to the stored game inside a transaction.
func (s *Store) Update(ctx context.Context, id int64, patch domaingames.Patch) (domaingames.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getGame(ctx, tx, id)
	if err != nil {
		return domaingames.Game{}, err
	}
	next := patch.Apply(current)
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET title = ?, genre = ?, release_year = ? WHERE id = ?`,
		next.Title, next.Genre, nullYear(next.ReleaseYear), id,
	); err != nil {
		if isUniqueViolation(err) {
			return domaingames.Game{}, domaingames.ErrTitleTaken
		}
		return domaingames.Game{}, fmt.Errorf("update game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domaingames.Game{}, fmt.Errorf("commit update: %w", err)
	}
	return next, nil
}

// Delete removes a game. AUTOINCREMENT keeps its id from being reissued.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if n == 0 {
		return domaingames.ErrNotFound
	}
	return nil
}

const seededKey = "seeded_at"

// Seeded reports whether the startup catalog has ever been loaded into this database.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = ?`, seededKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read seed marker: %w", err)
	}
	return true, nil
}

// MarkSeeded records that the startup catalog has been loaded.
func (s *Store) MarkSeeded(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO catalog_meta (key, value) VALUES (?, ?)`,
		seededKey, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("write seed marker: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getGame(ctx context.Context, q queryRower, id int64) (domaingames.Game, error) {
	row := q.QueryRowContext(ctx, `SELECT id, title, genre, release_year FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func scanGame(row scanner) (domaingames.Game, error) {
	var (
		g    domaingames.Game
		year sql.NullInt64
	)
	if err := row.Scan(&g.ID, &g.Title, &g.Genre, &year); err != nil {
		return domaingames.Game{}, err
	}
	if year.Valid {
		g.ReleaseYear = domaingames.Year(int(year.Int64))
	}
	return g, nil
}

func nullYear(year *int) sql.NullInt64 {
	if year == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*year), Valid: true}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") && strings.Contains(message, "games.title")
}
