// SPDX-License-Identifier: EPL-2.0

package config

import (
	"time"

	"pdkserve/internal/discover"
	"pdkserve/internal/install"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Config is the resolved pdkserve configuration.
	Config struct {
		// SearchPaths are local PDK paths pre-seeded into the discovery
		// registry at startup.
		SearchPaths []string `mapstructure:"search_paths"`

		// Installer is the external installer command line.
		Installer string `mapstructure:"installer"`

		// InstallTimeout is the wall-clock limit for one installer run,
		// as a Go duration string.
		InstallTimeout string `mapstructure:"install_timeout"`

		// InstallRoot is the directory installed PDK modules live under.
		InstallRoot string `mapstructure:"install_root"`

		// KnownPDKs maps distributable package names to module names.
		// When set it replaces the built-in table.
		KnownPDKs map[string]string `mapstructure:"known_pdks"`

		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds CLI presentation settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Installer:      install.DefaultCommand,
		InstallTimeout: install.DefaultTimeout.String(),
		UI:             UIConfig{Verbose: false},
	}
}

// Timeout parses InstallTimeout, falling back to the installer default on
// an empty or malformed value.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.InstallTimeout)
	if err != nil || d <= 0 {
		return install.DefaultTimeout
	}
	return d
}

// KnownTable resolves the known-package table: the built-in defaults when
// no override is configured, otherwise the configured mapping in sorted
// package-name order for deterministic discovery output.
func (c *Config) KnownTable() []discover.KnownPDK {
	if len(c.KnownPDKs) == 0 {
		return discover.DefaultKnownPDKs()
	}

	keys := maps.Keys(c.KnownPDKs)
	slices.Sort(keys)

	table := make([]discover.KnownPDK, 0, len(keys))
	for _, pkg := range keys {
		table = append(table, discover.KnownPDK{Package: pkg, Module: c.KnownPDKs[pkg]})
	}
	return table
}
