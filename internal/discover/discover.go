// SPDX-License-Identifier: EPL-2.0

// Package discover orchestrates PDK discovery across two sources: a static
// table of known installable packages resolved through the install root,
// and a mutable registry of user-added local paths. Local discoveries take
// precedence over installed discoveries of the same logical package, and
// every pass re-imports and re-scans from scratch — there is no cache, so
// installing or editing a package is reflected immediately.
package discover

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"pdkserve/internal/scan"
	"pdkserve/pkg/pdk"
	"pdkserve/pkg/pdkfile"

	"github.com/charmbracelet/log"
)

// PackageSuffix is appended to a local checkout's directory name to guess
// the distributable package name it corresponds to (e.g. a local "gf180"
// suppresses the installed "gf180-pdk").
const PackageSuffix = "-pdk"

// PrimitivesSubmodule is the conventional submodule holding a PDK's core
// device set; local discovery scans it explicitly before the generic
// submodule walk.
const PrimitivesSubmodule = "primitives"

// skipSubmodules are never recursed into.
var skipSubmodules = map[string]bool{
	"test":     true,
	"tests":    true,
	"conftest": true,
}

type (
	// KnownPDK maps a distributable package name to its importable module
	// name. Table order is preserved in discovery output.
	KnownPDK struct {
		Package string
		Module  string
	}

	// Options configures a discovery Service.
	Options struct {
		// Known is the static package table; nil means DefaultKnownPDKs.
		Known []KnownPDK
		// InstallRoot is the directory installed PDK modules live under.
		InstallRoot string
		// Logger receives skip diagnostics; nil discards them.
		Logger *log.Logger
	}

	// Service owns the discovery state. The local-path registry is explicit
	// per-instance state so independent sessions do not interfere; it is
	// empty at startup, grows monotonically, and is never trimmed. The
	// service is not safe for concurrent use — the protocol is strictly
	// request/response on a single goroutine.
	Service struct {
		known       []KnownPDK
		installRoot string
		localPaths  []string
		logger      *log.Logger
	}
)

// DefaultKnownPDKs returns the built-in table of known PDK distributions.
func DefaultKnownPDKs() []KnownPDK {
	return []KnownPDK{
		{Package: "gf180-pdk", Module: "gf180"},
		{Package: "sky130-pdk", Module: "sky130"},
		{Package: "asap7-pdk", Module: "asap7"},
		{Package: "gpdk045-pdk", Module: "gpdk045"},
		{Package: "gpdk090-pdk", Module: "gpdk090"},
	}
}

// New creates a discovery service with an empty local-path registry.
func New(opts Options) *Service {
	known := opts.Known
	if known == nil {
		known = DefaultKnownPDKs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		known:       known,
		installRoot: opts.InstallRoot,
		logger:      logger,
	}
}

// AddPath registers a local PDK path. Duplicate paths are ignored; paths
// are never removed for the life of the service.
func (s *Service) AddPath(path string) bool {
	for _, p := range s.localPaths {
		if p == path {
			return false
		}
	}
	s.localPaths = append(s.localPaths, path)
	return true
}

// Paths returns the registered local paths in registration order.
func (s *Service) Paths() []string {
	out := make([]string, len(s.localPaths))
	copy(out, s.localPaths)
	return out
}

// All runs a full discovery pass. Local paths are scanned first and
// suppress installed packages with overlapping names or modules; only
// packages with at least one device are included. The pass is idempotent
// for an unchanged environment but never cached.
func (s *Service) All() []pdk.Package {
	var pdks []pdk.Package
	seenNames := map[string]bool{}
	seenModules := map[string]bool{}

	for _, path := range s.localPaths {
		p, ok := s.discoverLocal(path)
		if !ok || len(p.Devices) == 0 {
			continue
		}
		pdks = append(pdks, p)

		lower := strings.ToLower(p.Name)
		seenNames[lower] = true
		seenNames[lower+PackageSuffix] = true
		if module, _, _ := strings.Cut(p.Devices[0].ModulePath, "."); module != "" {
			seenModules[strings.ToLower(module)] = true
		}
	}

	for _, kp := range s.known {
		if seenNames[strings.ToLower(kp.Package)] || seenModules[strings.ToLower(kp.Module)] {
			continue
		}
		p, ok := s.discoverInstalled(kp)
		if !ok || len(p.Devices) == 0 {
			continue
		}
		pdks = append(pdks, p)
		seenNames[strings.ToLower(kp.Package)] = true
		seenModules[strings.ToLower(kp.Module)] = true
	}

	return pdks
}

// Device runs a discovery pass and looks up a device by exact package and
// device name.
func (s *Service) Device(pdkName, deviceName string) (pdk.Device, bool) {
	for _, p := range s.All() {
		if p.Name != pdkName {
			continue
		}
		for _, d := range p.Devices {
			if d.Name == deviceName {
				return d, true
			}
		}
	}
	return pdk.Device{}, false
}

// discoverLocal discovers a PDK from a user-added local directory: the
// first subdirectory carrying a pdk.cue marker is the module.
func (s *Service) discoverLocal(path string) (pdk.Package, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		s.logger.Debug("local path is not a directory", "path", path)
		return pdk.Package{}, false
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		s.logger.Debug("failed to read local path", "path", path, "err", err)
		return pdk.Package{}, false
	}

	var mod *pdkfile.Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(path, entry.Name())
		if !pdkfile.IsModule(dir) {
			continue
		}
		m, err := pdkfile.Load(dir, entry.Name())
		if err != nil {
			s.logger.Debug("failed to import local module", "dir", dir, "err", err)
			return pdk.Package{}, false
		}
		mod = m
		break
	}
	if mod == nil {
		return pdk.Package{}, false
	}

	devices := s.scanModule(mod)

	// The primitives submodule is the common PDK layout for core devices;
	// scan it explicitly, then walk the remaining submodules.
	if pdkfile.IsModule(filepath.Join(mod.Path, PrimitivesSubmodule)) {
		if sub, err := mod.LoadSubmodule(PrimitivesSubmodule); err == nil {
			devices = append(devices, s.scanModule(sub)...)
		} else {
			s.logger.Debug("failed to import primitives submodule", "module", mod.Name, "err", err)
		}
	}
	devices = append(devices, s.scanSubmodules(mod, PrimitivesSubmodule)...)

	version := pdkfile.ScanManifestVersion(filepath.Join(path, pdkfile.ManifestFile))
	if version == "" {
		version = "local"
	}

	name := filepath.Base(path)
	description := mod.Description()
	if description == "" {
		description = "Local PDK: " + name
	}

	return pdk.Package{
		Name:        name,
		Version:     version,
		Description: description,
		Devices:     devices,
	}, true
}

// discoverInstalled discovers a known package through the install root.
// A missing module directory or manifest means "not installed" — a
// first-class outcome, not an error.
func (s *Service) discoverInstalled(kp KnownPDK) (pdk.Package, bool) {
	moduleDir := filepath.Join(s.installRoot, kp.Module)

	manifest, found, err := pdkfile.ReadManifest(filepath.Join(moduleDir, pdkfile.ManifestFile))
	if err != nil {
		s.logger.Debug("failed to read manifest", "package", kp.Package, "err", err)
		return pdk.Package{}, false
	}
	if !found {
		return pdk.Package{}, false
	}

	mod, err := pdkfile.Load(moduleDir, kp.Module)
	if err != nil {
		s.logger.Debug("failed to import installed module", "package", kp.Package, "err", err)
		return pdk.Package{}, false
	}

	devices := s.scanModule(mod)
	devices = append(devices, s.scanSubmodules(mod)...)

	description := mod.Description()
	if description == "" {
		description = manifest.Package.Description
	}
	if description == "" {
		description = "PDK: " + kp.Package
	}

	return pdk.Package{
		Name:        kp.Package,
		Version:     manifest.Package.Version,
		Description: description,
		Devices:     devices,
	}, true
}

// scanModule scans one module and logs any skipped members.
func (s *Service) scanModule(mod *pdkfile.Module) []pdk.Device {
	result := scan.Module(mod)
	for _, skip := range result.Skipped {
		s.logger.Debug("skipped device", "module", mod.Name, "member", skip.Member, "reason", skip.Reason)
	}
	return result.Devices
}

// scanSubmodules scans the module's submodules, excluding the fixed
// test-ish skip list plus any extra names. A submodule that fails to import
// contributes nothing and aborts nothing.
func (s *Service) scanSubmodules(mod *pdkfile.Module, extraSkip ...string) []pdk.Device {
	skip := map[string]bool{}
	for _, name := range extraSkip {
		skip[name] = true
	}

	var devices []pdk.Device
	for _, name := range mod.Submodules() {
		if skip[name] || skipSubmodules[name] || strings.HasPrefix(name, "test_") {
			continue
		}
		sub, err := mod.LoadSubmodule(name)
		if err != nil {
			s.logger.Debug("failed to import submodule", "module", mod.Name, "submodule", name, "err", err)
			continue
		}
		devices = append(devices, s.scanModule(sub)...)
	}
	return devices
}
