// SPDX-License-Identifier: EPL-2.0

package pdkfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the build-manifest filename carrying package metadata.
const ManifestFile = "pdk.toml"

type (
	// Manifest is the parsed pdk.toml content.
	Manifest struct {
		Package ManifestPackage `toml:"package"`
	}

	// ManifestPackage is the [package] table of a manifest.
	ManifestPackage struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
	}
)

// ReadManifest parses the manifest at path. A missing manifest is a
// first-class outcome, reported via the boolean rather than an error.
func ReadManifest(path string) (*Manifest, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, true, nil
}

// ScanManifestVersion resolves a version string by scanning the manifest at
// path line by line for a `version = "..."` assignment. Returns "" when the
// file or the assignment is absent.
//
// The scan is deliberately naive about quoting and formatting variations;
// it matches the discovery contract, not full TOML semantics.
func ScanManifestVersion(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "version") {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return ""
}
