// Package seed loads the catalog inserted when the service starts.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domaingames "game-catalog-service/internal/domain/games"
)

//go:embed games.yaml
var defaultCatalog []byte

// Catalog is the YAML document shape.
type Catalog struct {
	Games []domaingames.Draft `yaml:"games"`
}

// Default returns the embedded starter catalog.
func Default() ([]domaingames.Draft, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path; an empty path yields the embedded default.
func Load(path string) ([]domaingames.Draft, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) ([]domaingames.Draft, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("seed: parse yaml: %w", err)
	}
	return catalog.Games, nil
}
