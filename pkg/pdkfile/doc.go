// SPDX-License-Identifier: EPL-2.0

// Package pdkfile loads PDK device-definition packages from disk.
//
// A PDK package is a directory containing a pdk.cue marker file plus any
// number of additional .cue files. The top-level regular fields of the
// compiled package are the exported members; concrete struct members are
// device candidates, CUE definitions (#Name) are library schemas and are
// never exported. Subdirectories that themselves contain a pdk.cue marker
// are submodules.
//
// Package metadata lives in an optional pdk.toml manifest next to the
// package directory (for local checkouts) or inside it (for installed
// packages):
//
//	[package]
//	name = "gf180"
//	version = "0.3.1"
//	description = "GF 180nm open PDK"
//
// Compiling a package evaluates pure CUE data. Unlike discovery systems
// that import executable package code, no third-party code runs during
// loading; the trust boundary is a data parser with a file-size cap.
package pdkfile
