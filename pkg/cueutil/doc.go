// SPDX-License-Identifier: EPL-2.0

// Package cueutil provides shared helpers for working with CUE sources:
// size limits for untrusted input and user-facing error formatting with
// JSON-path context.
package cueutil
