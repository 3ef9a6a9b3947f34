// SPDX-License-Identifier: EPL-2.0

package pdkfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdkserve/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MarkerFile marks a directory as an importable PDK package, playing the
// role of a package-init file.
const MarkerFile = "pdk.cue"

type (
	// Module is a loaded PDK package (or submodule), ready for scanning.
	Module struct {
		// Name is the dotted module name (e.g., "gf180" or "gf180.primitives").
		Name string
		// Path is the absolute directory the module was loaded from.
		Path string
		// Value is the unified CUE value of all .cue files in the directory.
		Value cue.Value
	}

	// Member is one exported top-level field of a module.
	Member struct {
		// Label is the exported field name.
		Label string
		// Value is the member's CUE value.
		Value cue.Value
	}
)

// IsModule reports whether dir contains a pdk.cue package marker.
func IsModule(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && !info.IsDir()
}

// Load compiles all .cue files in dir into a single module value. Files are
// compiled in lexical filename order and unified; a directory without the
// pdk.cue marker is not a module and fails to load.
func Load(dir, name string) (*Module, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module dir %s: %w", dir, err)
	}

	if !IsModule(absDir) {
		return nil, fmt.Errorf("%s: not a PDK module (missing %s)", absDir, MarkerFile)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read module dir %s: %w", absDir, err)
	}

	ctx := cuecontext.New()
	var unified cue.Value
	compiled := 0

	// os.ReadDir returns entries sorted by filename, which keeps member
	// ordering deterministic across files.
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".cue") {
			continue
		}

		path := filepath.Join(absDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
			return nil, err
		}

		value := ctx.CompileBytes(data, cue.Filename(path))
		if value.Err() != nil {
			return nil, cueutil.FormatError(value.Err(), path)
		}

		if compiled == 0 {
			unified = value
		} else {
			unified = unified.Unify(value)
		}
		compiled++
	}

	if compiled == 0 {
		return nil, fmt.Errorf("%s: no CUE sources found", absDir)
	}
	if unified.Err() != nil {
		return nil, cueutil.FormatError(unified.Err(), absDir)
	}

	return &Module{Name: name, Path: absDir, Value: unified}, nil
}

// Members returns the exported top-level fields of the module in
// declaration order. Hidden fields, optional fields, and definitions are
// excluded by CUE itself; quoted underscore-prefixed labels are excluded
// here to keep the privacy convention airtight.
func (m *Module) Members() ([]Member, error) {
	iter, err := m.Value.Fields()
	if err != nil {
		return nil, fmt.Errorf("module %s is not a struct: %w", m.Name, err)
	}

	var members []Member
	for iter.Next() {
		label := iter.Selector().Unquoted()
		if strings.HasPrefix(label, "_") {
			continue
		}
		members = append(members, Member{Label: label, Value: iter.Value()})
	}
	return members, nil
}

// Description returns the module-level description field, if declared as a
// concrete string.
func (m *Module) Description() string {
	v := m.Value.LookupPath(cue.MakePath(cue.Str("description")))
	if !v.Exists() {
		return ""
	}
	s, err := v.String()
	if err != nil {
		return ""
	}
	return s
}

// Submodules returns the names of subdirectories of the module that are
// themselves PDK modules, in lexical order.
func (m *Module) Submodules() []string {
	entries, err := os.ReadDir(m.Path)
	if err != nil {
		return nil
	}

	var subs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if IsModule(filepath.Join(m.Path, entry.Name())) {
			subs = append(subs, entry.Name())
		}
	}
	return subs
}

// LoadSubmodule loads the named submodule, extending the dotted module name.
func (m *Module) LoadSubmodule(name string) (*Module, error) {
	return Load(filepath.Join(m.Path, name), m.Name+"."+name)
}
