// SPDX-License-Identifier: MPL-2.0

// Package platform holds operating-system names and the Windows file name
// rules persephone checks before writing documents.
package platform
