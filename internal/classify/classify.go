// SPDX-License-Identifier: EPL-2.0

// Package classify maps device names to display categories and schematic
// symbol types. Classification is pure string matching over ordered rule
// tables: the first rule with a keyword contained in the lowercased name
// wins, so rule order encodes precedence.
package classify

import "strings"

// Symbol type labels understood by the schematic editor.
const (
	SymbolNmos    = "Nmos"
	SymbolPmos    = "Pmos"
	SymbolNpn     = "Npn"
	SymbolPnp     = "Pnp"
	SymbolCap     = "Cap"
	SymbolRes     = "Res"
	SymbolRes3    = "Res3"
	SymbolInd     = "Ind"
	SymbolDiode   = "Diode"
	SymbolVsource = "Vsource"
	SymbolIsource = "Isource"
)

// Display categories used to group devices in the editor palette.
const (
	CategoryTransistors = "transistors"
	CategoryDiodes      = "diodes"
	CategoryPassives    = "passives"
	CategorySources     = "sources"
	CategoryOther       = "other"
)

// rule pairs a keyword set with the label resolved when any keyword is a
// substring of the device name.
type rule struct {
	keywords []string
	label    string
}

// symbolRules resolve symbol types. More specific patterns come first: BJT
// keywords must be checked before generic fet patterns that can also appear
// in BJT names.
var symbolRules = []rule{
	{[]string{"nfet", "nmos", "nch"}, SymbolNmos},
	{[]string{"pfet", "pmos", "pch"}, SymbolPmos},
	{[]string{"npn"}, SymbolNpn},
	{[]string{"pnp"}, SymbolPnp},
	{[]string{"mim", "cap_", "cap"}, SymbolCap},
	{[]string{"nplus", "pplus", "nwell", "polyf", "rm1", "rm2", "rm3", "tm6k", "tm9k", "tm11k", "tm30k", "res"}, SymbolRes3},
	{[]string{"ind", "inductor"}, SymbolInd},
	{[]string{"diode", "nd2ps", "pd2nw", "nw2ps", "pw2dw", "dw2ps", "schottky", "sc_diode"}, SymbolDiode},
	{[]string{"vsource", "vdc", "vpulse"}, SymbolVsource},
	{[]string{"isource", "idc", "ipulse"}, SymbolIsource},
}

// categoryRules resolve display categories, same first-match-wins contract.
var categoryRules = []rule{
	{[]string{"npn", "pnp", "bjt"}, CategoryTransistors},
	{[]string{"nfet", "pfet", "nmos", "pmos", "nch", "pch", "fet"}, CategoryTransistors},
	{[]string{"diode", "nd2ps", "pd2nw", "nw2ps", "pw2dw", "dw2ps", "schottky", "sc_diode"}, CategoryDiodes},
	{[]string{"mim", "cap_", "cap"}, CategoryPassives},
	{[]string{"nplus", "pplus", "nwell", "polyf", "rm1", "rm2", "rm3", "tm6k", "tm9k", "tm11k", "tm30k", "res"}, CategoryPassives},
	{[]string{"ind", "inductor"}, CategoryPassives},
	{[]string{"vsource", "isource", "vdc", "idc"}, CategorySources},
}

func matches(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Symbol returns the schematic symbol type for a device name and port count.
// Resistor matches are special-cased post-match: two-terminal resistors
// render as Res, anything with more ports as Res3. Unmatched names fall back
// to the two-terminal MOS symbol — an explicit default the editor relies on,
// not a failure.
func Symbol(name string, numPorts int) string {
	lower := strings.ToLower(name)
	for _, r := range symbolRules {
		if !matches(lower, r.keywords) {
			continue
		}
		if r.label == SymbolRes3 {
			if numPorts <= 2 {
				return SymbolRes
			}
			return SymbolRes3
		}
		return r.label
	}
	return SymbolNmos
}

// Category returns the display category for a device name, defaulting to
// "other" when no rule matches.
func Category(name string) string {
	lower := strings.ToLower(name)
	for _, r := range categoryRules {
		if matches(lower, r.keywords) {
			return r.label
		}
	}
	return CategoryOther
}
