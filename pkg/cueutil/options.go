// SPDX-License-Identifier: EPL-2.0

package cueutil

// DefaultMaxFileSize is the default maximum file size for CUE parsing (5MB).
// PDK definition files come from arbitrary local paths, so a hard cap keeps
// a runaway file from exhausting memory during compilation.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024
