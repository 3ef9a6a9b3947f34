// SPDX-License-Identifier: EPL-2.0

// Package pdk defines the wire-format descriptors exchanged with the
// schematic editor: ports, parameters, devices, and PDK packages.
package pdk

// DirectionInout is the only port direction resolved at discovery time.
// The source format does not yet distinguish directions; the field is kept
// for forward compatibility.
const DirectionInout = "inout"

type (
	// Port describes a named terminal of a device.
	Port struct {
		Name      string `json:"name"`
		Direction string `json:"direction"`
	}

	// Param describes a named, typed, defaultable configuration value of a
	// device. Default is always a JSON-serializable scalar or nil — never a
	// live value reference.
	Param struct {
		Name        string `json:"name"`
		DType       string `json:"dtype"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}

	// Device is a complete device descriptor. Ports and Params preserve the
	// declaration order of the scanned package; order is display-significant.
	Device struct {
		Name       string  `json:"name"`
		ModulePath string  `json:"module_path"`
		Category   string  `json:"category"`
		Ports      []Port  `json:"ports"`
		Params     []Param `json:"params"`
		SymbolType string  `json:"symbol_type"`
	}

	// Package describes one discovered PDK package and its devices.
	Package struct {
		Name        string   `json:"name"`
		Version     string   `json:"version"`
		Description string   `json:"description"`
		Devices     []Device `json:"devices"`
	}
)

// NewPort returns a Port with the default inout direction.
func NewPort(name string) Port {
	return Port{Name: name, Direction: DirectionInout}
}
