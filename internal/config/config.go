// Package config loads the settings cmd/olinkbridge needs to stand up
// a node. The core packages never read files or environment variables
// themselves — a Config is purely an application-level convenience.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/go-olink/olink"
)

// Config is the top-level document shape, a single [olink] table.
type Config struct {
	Olink OlinkSection `toml:"olink"`
}

// OlinkSection holds the settings a node needs at startup.
type OlinkSection struct {
	Format   string `toml:"format"`
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{Olink: OlinkSection{Format: "json", LogLevel: "info"}}
}

// Load reads and parses a TOML document from path, filling in
// Default() for any field the document omits.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveFormat parses the configured format string into an
// olink.Format.
func (c Config) ResolveFormat() (olink.Format, error) {
	return olink.ParseFormat(c.Olink.Format)
}
