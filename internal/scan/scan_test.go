// SPDX-License-Identifier: EPL-2.0

package scan

import (
	"testing"

	"pdkserve/pkg/pdkfile"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func compile(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	if err := v.Err(); err != nil {
		t.Fatalf("compile fixture: %v", err)
	}
	return v
}

func field(t *testing.T, src, name string) cue.Value {
	t.Helper()
	return compile(t, src).LookupPath(cue.MakePath(cue.Str(name)))
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name string
		// src declares a single field named dev holding the member value.
		src      string
		label    string
		expected bool
	}{
		{
			"marked external device",
			`dev: {kind: "external", name: "nfet_03v3"}`,
			"nfet_03v3",
			true,
		},
		{
			"all four capabilities",
			`dev: {
				name:   "res_poly"
				domain: "gf180"
				ports: [{name: "p"}, {name: "n"}]
				params: {r: 1000}
			}`,
			"dev",
			true,
		},
		{
			"missing domain",
			`dev: {
				name:   "res_poly"
				ports: [{name: "p"}, {name: "n"}]
				params: {}
			}`,
			"dev",
			false,
		},
		{
			"marked but no resolvable ports",
			`dev: {kind: "external", name: "mystery"}`,
			"dev",
			false,
		},
		{
			// An explicit empty port list means "no terminals", and no
			// heuristic may overrule that.
			"declared empty ports list",
			`dev: {kind: "external", name: "nmos_hv", ports: []}`,
			"dev",
			false,
		},
		{
			"empty ports list with all four capabilities",
			`dev: {
				name:   "nmos_hv"
				domain: "gf180"
				ports: []
				params: {}
			}`,
			"dev",
			false,
		},
		{
			"kind other than external",
			`dev: {kind: "internal", name: "helper"}`,
			"dev",
			false,
		},
		{
			"non-struct member",
			`dev: "1.0.0"`,
			"dev",
			false,
		},
		{
			"underscore label",
			`dev: {kind: "external", name: "nfet_03v3"}`,
			"_dev",
			false,
		},
		{
			"definition label",
			`dev: {kind: "external", name: "nfet_03v3"}`,
			"#Device",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := field(t, tt.src, "dev")
			if got := IsCandidate(tt.label, v); got != tt.expected {
				t.Errorf("IsCandidate(%q) = %v, want %v", tt.label, got, tt.expected)
			}
		})
	}
}

func TestModule(t *testing.T) {
	value := compile(t, `
		description: "test pdk"
		_helper: {name: "hidden"}

		nfet_03v3: {
			kind:   "external"
			name:   "nfet_03v3"
			params: {w: 0.28, l: 0.28}
		}

		res_poly_1k: {
			name:   "res_poly_1k"
			domain: "gf180"
			ports: [{name: "p"}, {name: "n"}]
			params: {r: 1000}
		}

		version: "1.0.0"
	`)

	result := Module(&pdkfile.Module{Name: "gf180", Value: value})

	if len(result.Devices) != 2 {
		t.Fatalf("got %d devices %v, want 2", len(result.Devices), result.Devices)
	}

	nfet := result.Devices[0]
	if nfet.Name != "nfet_03v3" {
		t.Errorf("Name = %q, want nfet_03v3", nfet.Name)
	}
	if nfet.ModulePath != "gf180.nfet_03v3" {
		t.Errorf("ModulePath = %q, want gf180.nfet_03v3", nfet.ModulePath)
	}
	if nfet.Category != "transistors" {
		t.Errorf("Category = %q, want transistors", nfet.Category)
	}
	if nfet.SymbolType != "Nmos" {
		t.Errorf("SymbolType = %q, want Nmos", nfet.SymbolType)
	}
	if len(nfet.Ports) != 4 {
		t.Errorf("got %d ports, want 4 from the MOS heuristic", len(nfet.Ports))
	}
	if len(nfet.Params) != 2 {
		t.Errorf("got %d params, want 2", len(nfet.Params))
	}

	res := result.Devices[1]
	if res.SymbolType != "Res" {
		t.Errorf("res SymbolType = %q, want Res", res.SymbolType)
	}
	if res.Category != "passives" {
		t.Errorf("res Category = %q, want passives", res.Category)
	}
	if len(res.Ports) != 2 || res.Ports[0].Name != "p" || res.Ports[1].Name != "n" {
		t.Errorf("unexpected res ports: %v", res.Ports)
	}
}

func TestModule_DeclarationOrder(t *testing.T) {
	value := compile(t, `
		zzz: {kind: "external", name: "zzz_nfet"}
		aaa: {kind: "external", name: "aaa_pfet"}
	`)

	result := Module(&pdkfile.Module{Name: "m", Value: value})
	if len(result.Devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(result.Devices))
	}
	if result.Devices[0].Name != "zzz" || result.Devices[1].Name != "aaa" {
		t.Errorf("got order %q, %q; want declaration order zzz, aaa",
			result.Devices[0].Name, result.Devices[1].Name)
	}
}

func TestModule_NotAStruct(t *testing.T) {
	v := cuecontext.New().CompileString(`[1, 2, 3]`)
	result := Module(&pdkfile.Module{Name: "broken", Value: v})
	if len(result.Devices) != 0 {
		t.Errorf("got %d devices from a non-struct module, want 0", len(result.Devices))
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(result.Skipped))
	}
	if result.Skipped[0].Member != "broken" {
		t.Errorf("skip member = %q, want the module name", result.Skipped[0].Member)
	}
}
