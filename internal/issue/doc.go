// SPDX-License-Identifier: EPL-2.0

// Package issue provides user-facing error context: structured errors that
// carry the failed operation, the resource involved, and suggestions for
// fixing the problem. Protocol responses never expose these directly — the
// dispatcher reduces everything to status/message pairs — but CLI surfaces
// render the full context.
package issue
