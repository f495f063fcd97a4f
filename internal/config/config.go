// Package config loads an optional TOML configuration file for operator
// knobs that sit outside the UCI `setoption` surface (or provide its
// defaults before a GUI connects).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds operator-facing defaults.
type Config struct {
	HashMB   int    `toml:"hash_mb"`
	LogLevel string `toml:"log_level"`
	NullMove bool   `toml:"null_move"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{HashMB: 64, LogLevel: "warning", NullMove: true}
}

// Load reads path, overlaying it onto Default(); a missing file is not an
// error — it simply returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return cfg, err
	}
	return cfg, nil
}
