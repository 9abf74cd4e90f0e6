// SPDX-License-Identifier: MPL-2.0

// Package document renders eagri.Request and eagri.Response values as
// EH_PEH02A XML documents.
//
// Rendering is a pure function of its input: no I/O, no shared state, and the
// same input always yields the same bytes, so any number of builds may run in
// parallel. Optional values that are not set produce no element at all, and
// empty record sections produce no wrapper. Element order follows the
// ministry schema exactly.
//
// A build either returns the whole document or fails with no output:
//   - invalid codes fail with an error wrapping eagri.ErrInvalidEnumValue;
//   - text that cannot be written as UTF-8 XML fails with ErrEncoding;
//   - an inconsistent internal tree fails with ErrSerialization.
package document
