// SPDX-License-Identifier: MPL-2.0

package eagri

import (
	"errors"

	"github.com/persephone/persephone/pkg/types"
)

type (
	// Request is the EH_PEH02A submission envelope. Collections keep their
	// order; the document lists records in exactly this order.
	Request struct {
		Type             RequestType         `json:"type" yaml:"type"`
		PeriodFrom       types.Date          `json:"period_from,omitempty" yaml:"period_from,omitempty"`
		PeriodTo         types.Date          `json:"period_to,omitempty" yaml:"period_to,omitempty"`
		AgriculturalYear *int                `json:"agricultural_year,omitempty" yaml:"agricultural_year,omitempty"`
		CallMode         CallMode            `json:"call_mode,omitempty" yaml:"call_mode,omitempty"`
		Scopes           []DataScope         `json:"scopes,omitempty" yaml:"scopes,omitempty"`
		Fields           []FieldRecord       `json:"fields" yaml:"fields"`
		Applications     []ApplicationRecord `json:"applications,omitempty" yaml:"applications,omitempty"`
		Harvests         []HarvestRecord     `json:"harvests,omitempty" yaml:"harvests,omitempty"`
		Grazing          []GrazingRecord     `json:"grazing,omitempty" yaml:"grazing,omitempty"`
	}

	// Response carries the GUID the reporting system assigned to a submission.
	Response struct {
		GUID types.SubmissionGUID `json:"guid" yaml:"guid"`
	}
)

// IsValid returns whether every code in the request and its records is a
// known code. Required codes must be set. Structural completeness (for
// example a non-empty field list) is reported by Audit, not here.
func (r Request) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, codeErrors("type", r.Type, true)...)
	errs = append(errs, codeErrors("call_mode", r.CallMode, false)...)
	for i, s := range r.Scopes {
		valid, sErrs := s.IsValid()
		errs = append(errs, nested("scopes", i, valid, sErrs)...)
	}
	for i, f := range r.Fields {
		valid, fErrs := f.IsValid()
		errs = append(errs, nested("fields", i, valid, fErrs)...)
	}
	for i, a := range r.Applications {
		valid, aErrs := a.IsValid()
		errs = append(errs, nested("applications", i, valid, aErrs)...)
	}
	for i, h := range r.Harvests {
		valid, hErrs := h.IsValid()
		errs = append(errs, nested("harvests", i, valid, hErrs)...)
	}
	for i, g := range r.Grazing {
		valid, gErrs := g.IsValid()
		errs = append(errs, nested("grazing", i, valid, gErrs)...)
	}
	return recordResult("request", errs)
}

// Validate returns the joined validation errors, or nil.
func (r Request) Validate() error {
	if valid, errs := r.IsValid(); !valid {
		return errors.Join(errs...)
	}
	return nil
}

// IsValid returns whether the response GUID is usable.
func (r Response) IsValid() (bool, []error) {
	if valid, errs := r.GUID.IsValid(); !valid {
		return recordResult("response", errs)
	}
	return true, nil
}

// Validate returns the joined validation errors, or nil.
func (r Response) Validate() error {
	if valid, errs := r.IsValid(); !valid {
		return errors.Join(errs...)
	}
	return nil
}
