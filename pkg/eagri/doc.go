// SPDX-License-Identifier: MPL-2.0

// Package eagri models the EH_PEH02A agricultural reporting request: field
// (Osev) records with their areas and cultivations, fertilizer applications,
// harvests, grazing events, and the Request/Response envelopes.
//
// Every enumerated field is a string type holding the short wire code the
// reporting system expects (crop type MAIN is "HLA"). Decimal fields use
// types.Decimal2 or types.Decimal3, so their rounding scale is fixed by the
// field's type and applied when the value is created.
//
// Optional fields use their zero value for "absent": "" for strings and codes,
// the zero types.Date and types.Decimal, nil for *int and *bool.
package eagri
