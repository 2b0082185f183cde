package testutil

import domaingames "game-catalog-service/internal/domain/games"

// SampleDrafts returns two valid drafts; inserted into an empty store they receive ids 1 and 2.
func SampleDrafts() []domaingames.Draft {
	return []domaingames.Draft{
		{Title: "Pong", Genre: "Arcade", ReleaseYear: domaingames.Year(1972)},
		{Title: "Space Invaders", Genre: "Shooter", ReleaseYear: domaingames.Year(1978)},
	}
}
