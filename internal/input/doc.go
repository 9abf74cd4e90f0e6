// SPDX-License-Identifier: MPL-2.0

// Package input loads report requests and responses from CUE, JSON, YAML and
// TOML files. Every format is checked against the same embedded CUE schema
// before it is decoded, so equivalent files yield equal values.
package input
