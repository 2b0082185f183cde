package store

import (
	"context"
	"sync"

	domaingames "game-catalog-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe collection of games in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	games   map[int64]domaingames.Game
	byTitle map[string]int64
	order   []int64
	nextID  int64
	seeded  bool
}

// NewMemoryStore constructs an empty MemoryStore. The first id issued is 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:   make(map[int64]domaingames.Game),
		byTitle: make(map[string]int64),
		nextID:  1,
	}
}

// List returns a copy of the stored games in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, copyGame(s.games[id]))
	}
	return result, nil
}

// Get retrieves a game by id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	return copyGame(g), nil
}

// Insert stores a new game under the next id.
func (s *MemoryStore) Insert(ctx context.Context, draft domaingames.Draft) (domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byTitle[draft.Title]; taken {
		return domaingames.Game{}, domaingames.ErrTitleTaken
	}
	g := domaingames.FromDraft(s.nextID, draft)
	s.nextID++
	s.games[g.ID] = g
	s.byTitle[g.Title] = g.ID
	s.order = append(s.order, g.ID)
	return copyGame(g), nil
}

// Update applies patch to the stored game.
func (s *MemoryStore) Update(ctx context.Context, id int64, patch domaingames.Patch) (domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return domaingames.Game{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, domaingames.ErrNotFound
	}
	next := patch.Apply(current)
	if next.Title != current.Title {
		if owner, taken := s.byTitle[next.Title]; taken && owner != id {
			return domaingames.Game{}, domaingames.ErrTitleTaken
		}
		delete(s.byTitle, current.Title)
		s.byTitle[next.Title] = id
	}
	s.games[id] = next
	return copyGame(next), nil
}

// Delete removes a game. Its id is not reissued.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.ErrNotFound
	}
	delete(s.games, id)
	delete(s.byTitle, g.Title)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping reports whether the store can serve requests.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyGame(g domaingames.Game) domaingames.Game {
	if g.ReleaseYear != nil {
		year := *g.ReleaseYear
		g.ReleaseYear = &year
	}
	return g
}

// Seeded reports whether MarkSeeded has been called.
func (s *MemoryStore) Seeded(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded, nil
}

// MarkSeeded records that the startup catalog has been loaded.
func (s *MemoryStore) MarkSeeded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.seeded = true
	s.mu.Unlock()
	return nil
}
