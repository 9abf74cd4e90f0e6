// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types used by the data model and the
// document builder. These are foundation types that carry semantic meaning and
// validation but have no domain-specific dependencies.
//
// This package is a leaf dependency: domain packages import it; it never imports
// domain packages.
package types
