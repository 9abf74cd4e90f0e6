// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both report inputs and the CLI configuration go through the same 3-step
// flow:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed request_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseAndDecode[eagri.Request](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Request",
//	    cueutil.WithFilename("report.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return result.Value, nil
//
// Inputs that were already parsed by another decoder (YAML, TOML) are
// checked against the same schema with EncodeAndDecode.
package cueutil
