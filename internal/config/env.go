package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays environment variables onto target; unset variables keep their current value.
func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
