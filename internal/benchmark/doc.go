// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of a persephone run:
//   - decoding report files through the CUE schema in every input format
//   - building request documents, from the sample report up to large reports
//   - the end-to-end load, audit and build pipeline
//
// To generate a PGO profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
