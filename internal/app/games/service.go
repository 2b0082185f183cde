package games

import (
	"context"
	"errors"

	domaingames "game-catalog-service/internal/domain/games"
	"game-catalog-service/internal/metrics"
)

// Store defines the contract for persisting and retrieving games.
// Implementations enforce title uniqueness atomically and never reuse ids.
type Store interface {
	List(ctx context.Context) ([]domaingames.Game, error)
	Get(ctx context.Context, id int64) (domaingames.Game, error)
	Insert(ctx context.Context, draft domaingames.Draft) (domaingames.Game, error)
	Update(ctx context.Context, id int64, patch domaingames.Patch) (domaingames.Game, error)
	Delete(ctx context.Context, id int64) error
}

// Operation names recorded on the metrics recorder.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpSeed   = "seed"
)

// Service coordinates game catalog operations using a Store.
type Service struct {
	store    Store
	recorder *metrics.Recorder
}

// NewService constructs a Service with the provided Store. recorder may be nil.
func NewService(store Store, recorder *metrics.Recorder) *Service {
	return &Service{store: store, recorder: recorder}
}

// Games returns every stored game in id order.
func (s *Service) Games(ctx context.Context) ([]domaingames.Game, error) {
	games, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []domaingames.Game{}
	}
	s.recorder.RecordCatalogSize(len(games))
	return games, nil
}

// GameByID returns a single game or domaingames.ErrNotFound.
func (s *Service) GameByID(ctx context.Context, id int64) (domaingames.Game, error) {
	return s.store.Get(ctx, id)
}

// Create validates the draft and stores it, returning the new id.
func (s *Service) Create(ctx context.Context, draft domaingames.Draft) (int64, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		s.record(OpCreate, err)
		return 0, err
	}
	game, err := s.store.Insert(ctx, draft)
	s.record(OpCreate, err)
	if err != nil {
		return 0, err
	}
	return game.ID, nil
}

// Update applies the patch to an existing game and returns the number of records updated.
func (s *Service) Update(ctx context.Context, id int64, patch domaingames.Patch) (int, error) {
	patch = patch.Normalize()
	if _, err := s.store.Get(ctx, id); err != nil {
		s.record(OpUpdate, err)
		return 0, err
	}
	if err := patch.Validate(); err != nil {
		s.record(OpUpdate, err)
		return 0, err
	}
	_, err := s.store.Update(ctx, id, patch)
	s.record(OpUpdate, err)
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// Delete removes a game and returns the number of records deleted.
func (s *Service) Delete(ctx context.Context, id int64) (int, error) {
	err := s.store.Delete(ctx, id)
	s.record(OpDelete, err)
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// SeedTracker is implemented by stores that remember whether the startup catalog was loaded.
type SeedTracker interface {
	Seeded(ctx context.Context) (bool, error)
	MarkSeeded(ctx context.Context) error
}

// Seed inserts drafts whose titles are not yet stored and returns how many were added.
// Invalid drafts and taken titles are skipped. When the store is a SeedTracker that has
// already been seeded nothing is inserted, so games deleted since stay deleted.
func (s *Service) Seed(ctx context.Context, drafts []domaingames.Draft) (int, error) {
	tracker, tracked := s.store.(SeedTracker)
	if tracked {
		done, err := tracker.Seeded(ctx)
		if err != nil {
			s.record(OpSeed, err)
			return 0, err
		}
		if done {
			return 0, nil
		}
	}

	added := 0
	for _, d := range drafts {
		d = d.Normalize()
		if err := d.Validate(); err != nil {
			s.record(OpSeed, err)
			continue
		}
		_, err := s.store.Insert(ctx, d)
		s.record(OpSeed, err)
		switch {
		case err == nil:
			added++
		case errors.Is(err, domaingames.ErrTitleTaken):
		default:
			return added, err
		}
	}
	if tracked {
		if err := tracker.MarkSeeded(ctx); err != nil {
			return added, err
		}
	}
	return added, nil
}

func (s *Service) record(op string, err error) {
	s.recorder.RecordCatalogOperation(op, Outcome(err))
}

// Outcome classifies an operation error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domaingames.ErrNotFound):
		return "not_found"
	case errors.Is(err, domaingames.ErrValidation):
		return "invalid"
	case errors.Is(err, domaingames.ErrTitleTaken):
		return "conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
