// SPDX-License-Identifier: EPL-2.0

// Package introspect extracts port and parameter descriptors from device
// values. Extraction is capability-probed rather than schema-checked:
// devices may be fully described instances, schema declarations, or bare
// named objects, and each extractor tries a fixed, ordered set of variants.
// Extraction never fails for a well-formed device; malformed pieces degrade
// to skipped entries, and outright extraction failures are the caller's
// concern.
package introspect

import (
	"fmt"
	"strings"

	"pdkserve/pkg/pdk"

	"cuelang.org/go/cue"
)

// Well-known device capability fields.
const (
	FieldName   = "name"
	FieldDomain = "domain"
	FieldKind   = "kind"
	FieldPorts  = "ports"
	FieldParams = "params"
)

// lookup fetches a named field of a value.
func lookup(v cue.Value, field string) cue.Value {
	return v.LookupPath(cue.MakePath(cue.Str(field)))
}

// Name resolves a device's declared name, falling back to the exported
// label it was found under.
func Name(v cue.Value, fallback string) string {
	nv := lookup(v, FieldName)
	if nv.Exists() {
		if s, err := nv.String(); err == nil && s != "" {
			return s
		}
	}
	return fallback
}

// Ports extracts port descriptors from a device value. Variants are probed
// in order:
//
//  1. An enumerable, non-empty "ports" list: one port per entry, named by
//     the entry's own name field.
//  2. A "ports" struct declaration (the class-with-port-schema case): one
//     port per declared field, optional fields included.
//  3. A name-pattern heuristic keyed on the device name (or fallbackName
//     when no name is declared), for definitions that expose no explicit
//     port metadata at all.
//
// Direction always resolves to inout at discovery time.
func Ports(v cue.Value, fallbackName string) []pdk.Port {
	pv := lookup(v, FieldPorts)

	if pv.Exists() {
		if ports := portsFromList(pv); len(ports) > 0 {
			return ports
		}
		if ports := portsFromDecl(pv); len(ports) > 0 {
			return ports
		}
	}

	return heuristicPorts(Name(v, fallbackName))
}

// portsFromList handles the enumerable port-list capability.
func portsFromList(pv cue.Value) []pdk.Port {
	if pv.Kind() != cue.ListKind {
		return nil
	}

	iter, err := pv.List()
	if err != nil {
		return nil
	}

	var ports []pdk.Port
	for iter.Next() {
		nv := lookup(iter.Value(), FieldName)
		if !nv.Exists() {
			continue
		}
		name, err := nv.String()
		if err != nil || name == "" {
			continue
		}
		ports = append(ports, pdk.NewPort(name))
	}
	return ports
}

// portsFromDecl handles a struct-shaped ports declaration, enumerating the
// declared field names.
func portsFromDecl(pv cue.Value) []pdk.Port {
	if pv.IncompleteKind() != cue.StructKind {
		return nil
	}

	iter, err := pv.Fields(cue.Optional(true))
	if err != nil {
		return nil
	}

	var ports []pdk.Port
	for iter.Next() {
		ports = append(ports, pdk.NewPort(iter.Selector().Unquoted()))
	}
	return ports
}

// heuristicPorts synthesizes canonical port sets for devices that expose a
// name but no port metadata. Keyword sets and resulting terminals mirror
// the common device families: 4-terminal MOS, 2-terminal RLC, 2-terminal
// diode, 3-terminal BJT.
func heuristicPorts(name string) []pdk.Port {
	lower := strings.ToLower(name)

	contains := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("nmos", "pmos", "nch", "pch", "nfet", "pfet", "fet"):
		return []pdk.Port{pdk.NewPort("d"), pdk.NewPort("g"), pdk.NewPort("s"), pdk.NewPort("b")}
	case contains("res", "cap", "ind"):
		return []pdk.Port{pdk.NewPort("p"), pdk.NewPort("n")}
	case contains("diode"):
		return []pdk.Port{pdk.NewPort("p"), pdk.NewPort("n")}
	case contains("npn", "pnp", "bjt"):
		return []pdk.Port{pdk.NewPort("c"), pdk.NewPort("b"), pdk.NewPort("e")}
	}
	return nil
}

// Params extracts parameter descriptors from a device value. With a
// "params" schema struct present, each declared parameter resolves a type
// name, default, and description; without one, the device's own remaining
// fields are scanned as parameter declarations with the same rules.
func Params(v cue.Value) []pdk.Param {
	sv := lookup(v, FieldParams)
	if sv.Exists() && sv.IncompleteKind() == cue.StructKind {
		return paramsFromSchema(sv)
	}
	return paramsFromFields(v)
}

// paramsFromSchema enumerates a parameter-schema struct.
func paramsFromSchema(sv cue.Value) []pdk.Param {
	iter, err := sv.Fields(cue.Optional(true))
	if err != nil {
		return nil
	}

	var params []pdk.Param
	for iter.Next() {
		name := iter.Selector().Unquoted()
		pv := iter.Value()

		if pv.IncompleteKind() != cue.StructKind || isWrapper(pv) {
			// Shorthand form: the declared value is the default itself.
			params = append(params, pdk.Param{
				Name:        name,
				DType:       kindName(pv),
				Default:     defaultValue(pv),
				Description: "",
			})
			continue
		}

		var def any
		dtype := "Any"
		if dv := lookup(pv, "default"); dv.Exists() {
			def = defaultValue(dv)
			dtype = kindName(dv)
		}
		if tv := lookup(pv, "dtype"); tv.Exists() {
			if s, err := tv.String(); err == nil {
				dtype = s
			}
		}

		desc := ""
		if dv := lookup(pv, "desc"); dv.Exists() {
			if s, err := dv.String(); err == nil {
				desc = s
			}
		}

		params = append(params, pdk.Param{
			Name:        name,
			DType:       dtype,
			Default:     def,
			Description: desc,
		})
	}
	return params
}

// paramsFromFields falls back to scanning the device's own declared fields,
// excluding the well-known capability fields.
func paramsFromFields(v cue.Value) []pdk.Param {
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil
	}

	reserved := map[string]bool{
		FieldName:     true,
		FieldDomain:   true,
		FieldKind:     true,
		FieldPorts:    true,
		FieldParams:   true,
		"desc":        true,
		"description": true,
	}

	var params []pdk.Param
	for iter.Next() {
		name := iter.Selector().Unquoted()
		if reserved[name] {
			continue
		}
		pv := iter.Value()
		params = append(params, pdk.Param{
			Name:        name,
			DType:       kindName(pv),
			Default:     defaultValue(pv),
			Description: "",
		})
	}
	return params
}

// defaultValue normalizes a declared default to a wire-serializable scalar
// or nil. One level of default/value wrapper is unwrapped; the known opaque
// wrapper shapes reduce to their string forms; anything else that is not a
// concrete scalar — factories, expressions, open structs, lists — becomes
// nil rather than a live value reference.
func defaultValue(v cue.Value) any {
	v = unwrap(v)

	if s, ok := wrapperString(v); ok {
		return s
	}

	if !v.IsConcrete() {
		return nil
	}

	switch v.Kind() {
	case cue.StringKind:
		if s, err := v.String(); err == nil {
			return s
		}
	case cue.BoolKind:
		if b, err := v.Bool(); err == nil {
			return b
		}
	case cue.IntKind:
		if i, err := v.Int64(); err == nil {
			return i
		}
	case cue.FloatKind, cue.NumberKind:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return nil
}

// unwrap strips one level of default/value wrapper from a descriptor-shaped
// default.
func unwrap(v cue.Value) cue.Value {
	if v.IncompleteKind() != cue.StructKind {
		return v
	}
	if dv := lookup(v, "default"); dv.Exists() {
		return dv
	}
	if dv := lookup(v, "value"); dv.Exists() {
		return dv
	}
	return v
}

// wrapperString reduces the known opaque wrapper shapes to string form: a
// literal wrapper carries an opaque expression string, a prefixed wrapper
// carries a number with an SI prefix (e.g. 220 + "n" -> "220n").
func wrapperString(v cue.Value) (string, bool) {
	if v.IncompleteKind() != cue.StructKind {
		return "", false
	}

	if lv := lookup(v, "literal"); lv.Exists() {
		if s, err := lv.String(); err == nil {
			return s, true
		}
	}

	nv, pv := lookup(v, "num"), lookup(v, "prefix")
	if nv.Exists() && pv.Exists() {
		prefix, err := pv.String()
		if err != nil {
			return "", false
		}
		if i, err := nv.Int64(); err == nil {
			return fmt.Sprintf("%d%s", i, prefix), true
		}
		if f, err := nv.Float64(); err == nil {
			return fmt.Sprintf("%v%s", f, prefix), true
		}
	}
	return "", false
}

// isWrapper reports whether a struct is one of the recognized default
// wrapper shapes rather than a parameter descriptor.
func isWrapper(v cue.Value) bool {
	if v.IncompleteKind() != cue.StructKind {
		return false
	}
	if lookup(v, "literal").Exists() {
		return true
	}
	return lookup(v, "num").Exists() && lookup(v, "prefix").Exists()
}

// kindName resolves a human-readable type name for a declared value.
func kindName(v cue.Value) string {
	v = unwrap(v)
	if s, ok := wrapperString(v); ok && s != "" {
		return "string"
	}

	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string"
	case cue.BoolKind:
		return "bool"
	case cue.IntKind:
		return "int"
	case cue.FloatKind, cue.NumberKind:
		return "float"
	case cue.NullKind:
		return "null"
	case cue.ListKind:
		return "list"
	case cue.StructKind:
		return "struct"
	}
	return "Any"
}
