// Package config loads application configuration from a TOML file.
//
// All physical constants and generation defaults live here so that no package
// reads mutable globals: the loaded Config (or a section of it) is passed
// explicitly into every function that needs it. Missing file or missing keys
// fall back to defaults, so a zero-configuration run behaves like the
// reference network (25 mmHg pressure drop, blood viscosity, two repair
// passes).
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// =============================================================================
// Sections
// =============================================================================

// Physics holds the physical constants used by simulation prep and metrics.
type Physics struct {
	// Viscosity is the blood dynamic viscosity in Pa·s.
	Viscosity float64 `toml:"viscosity"`

	// PressureDropMMHg is the aggregate source-to-sink pressure drop in mmHg.
	// Metric functions convert it with MMHgToCGS.
	PressureDropMMHg float64 `toml:"pressure_drop_mmhg"`

	// TracerCoefficient scales per-edge tracer mass in the W(t) curve.
	TracerCoefficient float64 `toml:"tracer_coefficient"`
}

// MMHgToCGS converts millimeters of mercury to the cgs-consistent pressure
// unit used throughout the metric functions.
const MMHgToCGS = 133.322387415

// PressureDrop returns the configured pressure drop in cgs units.
func (p Physics) PressureDrop() float64 {
	return p.PressureDropMMHg * MMHgToCGS
}

// Generation holds defaults for network synthesis.
type Generation struct {
	// GammaShape is the shape parameter of the radius distribution.
	GammaShape float64 `toml:"gamma_shape"`

	// RepairPasses is the number of radius-ordering repair sweeps.
	RepairPasses int `toml:"repair_passes"`
}

// Cache configures the generation result cache.
type Cache struct {
	// Enabled toggles caching of generated networks.
	Enabled bool `toml:"enabled"`

	// Dir overrides the file cache directory. Empty uses the XDG default.
	Dir string `toml:"dir"`

	// RedisAddr selects the Redis backend when non-empty (host:port).
	RedisAddr string `toml:"redis_addr"`
}

// Store configures network persistence.
type Store struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty uses the XDG default.
	Dir string `toml:"dir"`

	// MongoURI and MongoDatabase configure the Mongo backend.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Server configures the HTTP API.
type Server struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`
}

// =============================================================================
// Config
// =============================================================================

// Config is the root configuration object.
type Config struct {
	Physics    Physics    `toml:"physics"`
	Generation Generation `toml:"generation"`
	Cache      Cache      `toml:"cache"`
	Store      Store      `toml:"store"`
	Server     Server     `toml:"server"`
}

// Default returns the built-in configuration matching the reference network.
func Default() Config {
	return Config{
		Physics: Physics{
			Viscosity:         3.5e-3,
			PressureDropMMHg:  25.0,
			TracerCoefficient: 65.0,
		},
		Generation: Generation{
			GammaShape:   5.0,
			RepairPasses: 2,
		},
		Cache: Cache{
			Enabled: true,
		},
		Store: Store{
			Backend:       "file",
			MongoDatabase: "hemo",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads a TOML configuration file and overlays it on the defaults.
// A missing file is not an error; any other read or parse failure is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidParameter, err, "parse config %s", path)
	}
	return cfg, nil
}
