package testutil

import (
	"context"
	"testing"

	"game-catalog-service/internal/app/games"
	domaingames "game-catalog-service/internal/domain/games"
	"game-catalog-service/internal/store"
)

// NewService builds a games service backed by an in-memory store preloaded with drafts.
func NewService(t testing.TB, drafts ...domaingames.Draft) *games.Service {
	t.Helper()
	svc := games.NewService(store.NewMemoryStore(), nil)
	if len(drafts) > 0 {
		if _, err := svc.Seed(context.Background(), drafts); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}
	return svc
}
