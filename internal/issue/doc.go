// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and fix
// suggestions. It may point at an entry of the markdown issue catalog, which
// the CLI renders with glamour below the error.
package issue
