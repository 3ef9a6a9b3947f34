// SPDX-License-Identifier: EPL-2.0

// Package scan walks a loaded PDK module's exported members and builds
// device descriptors for every member that qualifies as a discoverable
// device. Scanning is best-effort at device granularity: a member that
// fails extraction is recorded as skipped and never aborts the rest of the
// module.
package scan

import (
	"fmt"
	"strings"

	"pdkserve/internal/classify"
	"pdkserve/internal/introspect"
	"pdkserve/pkg/pdk"
	"pdkserve/pkg/pdkfile"

	"cuelang.org/go/cue"
)

// ExternalKind is the marker value identifying an external-device instance,
// the primary target of PDK discovery.
const ExternalKind = "external"

type (
	// Skip records one member that was excluded from a scan, keeping the
	// best-effort behavior observable instead of truly silent.
	Skip struct {
		// Member is the exported label that was skipped.
		Member string
		// Reason describes why.
		Reason string
	}

	// Result is the outcome of scanning one module: the devices that were
	// successfully extracted plus the members that were skipped.
	Result struct {
		Devices []pdk.Device
		Skipped []Skip
	}
)

// IsCandidate reports whether an exported member qualifies as a
// discoverable device. Definitions and underscore-prefixed labels are
// library schema, never devices. A member qualifies when it either carries
// the external-device marker or simultaneously exposes a port list, a
// parameter schema slot, a domain identifier, and a name — and in both
// cases its extractable port list must be non-empty. A declared-but-empty
// port list disqualifies outright: the name heuristic fills in terminals
// only for devices that say nothing about ports, never for devices that
// explicitly say they have none.
func IsCandidate(label string, v cue.Value) bool {
	if strings.HasPrefix(label, "_") || strings.HasPrefix(label, "#") {
		return false
	}
	if v.IncompleteKind() != cue.StructKind {
		return false
	}

	has := func(field string) bool {
		return v.LookupPath(cue.MakePath(cue.Str(field))).Exists()
	}

	marked := false
	if kv := v.LookupPath(cue.MakePath(cue.Str(introspect.FieldKind))); kv.Exists() {
		if s, err := kv.String(); err == nil && s == ExternalKind {
			marked = true
		}
	}

	if !marked {
		if !has(introspect.FieldPorts) || !has(introspect.FieldParams) ||
			!has(introspect.FieldDomain) || !has(introspect.FieldName) {
			return false
		}
	}

	if pv := v.LookupPath(cue.MakePath(cue.Str(introspect.FieldPorts))); pv.Exists() && pv.Kind() == cue.ListKind {
		iter, err := pv.List()
		if err != nil || !iter.Next() {
			return false
		}
	}

	return len(introspect.Ports(v, label)) > 0
}

// Module scans all exported members of a module in declaration order. Each
// candidate produces one descriptor: the member's declared name is its
// canonical identity, the exported label is the display name used for
// classification and the module path.
func Module(mod *pdkfile.Module) Result {
	var result Result

	members, err := mod.Members()
	if err != nil {
		result.Skipped = append(result.Skipped, Skip{
			Member: mod.Name,
			Reason: fmt.Sprintf("module is not scannable: %v", err),
		})
		return result
	}

	for _, member := range members {
		if !IsCandidate(member.Label, member.Value) {
			continue
		}

		device, err := extract(member, mod.Name)
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Member: member.Label, Reason: err.Error()})
			continue
		}
		result.Devices = append(result.Devices, device)
	}

	return result
}

// extract builds one device descriptor from a candidate member.
func extract(member pdkfile.Member, moduleName string) (pdk.Device, error) {
	if err := member.Value.Err(); err != nil {
		return pdk.Device{}, fmt.Errorf("member value error: %w", err)
	}

	// The exported label is what the editor displays and classifies on;
	// the declared name stays recoverable through the module value itself.
	displayName := member.Label

	ports := introspect.Ports(member.Value, member.Label)
	if len(ports) == 0 {
		return pdk.Device{}, fmt.Errorf("no ports resolved")
	}

	return pdk.Device{
		Name:       displayName,
		ModulePath: moduleName + "." + member.Label,
		Category:   classify.Category(displayName),
		Ports:      ports,
		Params:     introspect.Params(member.Value),
		SymbolType: classify.Symbol(displayName, len(ports)),
	}, nil
}
