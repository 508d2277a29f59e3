package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/trip/internal/store/jsonstore"
)

// Config is read from the environment; root flags override it.
type Config struct {
	DataPath string        // TRIP_DATA
	Theme    string        // TRIP_THEME
	Latency  time.Duration // TRIP_LATENCY, e.g. "400ms"
	Debug    bool          // TRIP_DEBUG
}

// Load reads .env files (when present) and then the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		DataPath: jsonstore.DefaultFileName,
		Theme:    "classic",
	}
	if v := strings.TrimSpace(os.Getenv("TRIP_DATA")); v != "" {
		cfg.DataPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TRIP_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("TRIP_LATENCY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRIP_LATENCY: %w", err)
		}
		cfg.Latency = d
	}
	if v := strings.TrimSpace(os.Getenv("TRIP_DEBUG")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRIP_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	return cfg, nil
}
