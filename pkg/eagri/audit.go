// SPDX-License-Identifier: MPL-2.0

package eagri

import (
	"fmt"
	"strings"

	"github.com/persephone/persephone/pkg/types"
)

type (
	// Finding is a structural problem that does not stop a document from
	// being built but that the reporting system is likely to reject.
	Finding struct {
		Path    string
		Message string
	}

	auditor struct {
		findings []Finding
	}
)

// String returns "path: message".
func (f Finding) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// Audit reports missing required values, empty required sequences, reversed
// date ranges, scope declarations that do not match the request content, and
// harvests that reference unknown cultivations. A request with findings can
// still be built.
func (r Request) Audit() []Finding {
	a := &auditor{}

	if r.Type == "" {
		a.add("type", "request type is not set")
	}
	a.dateRange("", "period_from", r.PeriodFrom, "period_to", r.PeriodTo)
	if len(r.Fields) == 0 {
		a.add("fields", "request has no field records")
	}

	declared := make(map[ScopeCode]bool, len(r.Scopes))
	for i, s := range r.Scopes {
		if declared[s.Code] {
			a.add(fmt.Sprintf("scopes[%d]", i), fmt.Sprintf("scope %q is declared more than once", s.Code))
		}
		declared[s.Code] = true
	}
	if len(r.Scopes) > 0 {
		a.scope(declared, ScopeCrops, len(r.Fields), "fields")
		a.scope(declared, ScopeFertilizer, len(r.Applications), "applications")
		a.scope(declared, ScopeHarvest, len(r.Harvests), "harvests")
		a.scope(declared, ScopeGrazing, len(r.Grazing), "grazing")
	}

	cultivations := make(map[string]bool)
	for i, f := range r.Fields {
		a.field(fmt.Sprintf("fields[%d]", i), f)
		for _, c := range f.Cultivations {
			cultivations[c.ID] = true
		}
	}
	for i, app := range r.Applications {
		a.application(fmt.Sprintf("applications[%d]", i), app, cultivations)
	}
	for i, h := range r.Harvests {
		a.harvest(fmt.Sprintf("harvests[%d]", i), h, cultivations)
	}
	for i, g := range r.Grazing {
		a.grazing(fmt.Sprintf("grazing[%d]", i), g)
	}
	return a.findings
}

// Audit flags a GUID that is not in canonical UUID form.
func (r Response) Audit() []Finding {
	a := &auditor{}
	if strings.TrimSpace(r.GUID.String()) == "" {
		a.add("guid", "submission GUID is not set")
	} else if !r.GUID.IsCanonical() {
		a.add("guid", fmt.Sprintf("submission GUID %q is not a canonical UUID", r.GUID))
	}
	return a.findings
}

func (a *auditor) add(path, message string) {
	a.findings = append(a.findings, Finding{Path: path, Message: message})
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (a *auditor) text(prefix, name, value string) {
	if strings.TrimSpace(value) == "" {
		a.add(join(prefix, name), "required value is blank")
	}
}

func (a *auditor) date(prefix, name string, value types.Date) {
	if value.IsZero() {
		a.add(join(prefix, name), "required date is not set")
	}
}

func (a *auditor) dateRange(prefix, fromName string, from types.Date, toName string, to types.Date) {
	if from.IsZero() || to.IsZero() {
		return
	}
	if to.Before(from) {
		a.add(join(prefix, toName), fmt.Sprintf("%s is before %s %s", to, fromName, from))
	}
}

func (a *auditor) scope(declared map[ScopeCode]bool, code ScopeCode, count int, section string) {
	switch {
	case count > 0 && !declared[code]:
		a.add("scopes", fmt.Sprintf("%s present but scope %s (%s) is not declared", section, code, code.Name()))
	case count == 0 && declared[code]:
		a.add("scopes", fmt.Sprintf("scope %s (%s) is declared but %s is empty", code, code.Name(), section))
	}
}

func (a *auditor) field(path string, f FieldRecord) {
	a.text(path, "code", f.Code)
	a.text(path, "grid_square", f.GridSquare)
	a.text(path, "parcel_id", f.ParcelID)
	a.date(path, "valid_from", f.ValidFrom)
	a.dateRange(path, "valid_from", f.ValidFrom, "valid_to", f.ValidTo)
	if len(f.Areas) == 0 {
		a.add(join(path, "areas"), "field record has no area measurements")
	}
	for i, m := range f.Areas {
		p := fmt.Sprintf("%s.areas[%d]", path, i)
		if m.Area.IsZero() {
			a.add(join(p, "area"), "required amount is not set")
		}
		a.date(p, "valid_from", m.ValidFrom)
		a.dateRange(p, "valid_from", m.ValidFrom, "valid_to", m.ValidTo)
	}
	seen := make(map[string]bool, len(f.Cultivations))
	for i, c := range f.Cultivations {
		p := fmt.Sprintf("%s.cultivations[%d]", path, i)
		a.text(p, "id", c.ID)
		if c.ID != "" && seen[c.ID] {
			a.add(join(p, "id"), fmt.Sprintf("cultivation id %q is repeated", c.ID))
		}
		seen[c.ID] = true
		a.date(p, "started_on", c.StartedOn)
		a.date(p, "valid_from", c.ValidFrom)
		a.dateRange(p, "started_on", c.StartedOn, "ended_on", c.EndedOn)
		a.dateRange(p, "valid_from", c.ValidFrom, "valid_to", c.ValidTo)
	}
}

func (a *auditor) application(path string, app ApplicationRecord, cultivations map[string]bool) {
	a.date(path, "started_on", app.StartedOn)
	a.dateRange(path, "started_on", app.StartedOn, "incorporated_on", app.IncorporatedOn)
	if app.CropArea.IsZero() {
		a.add(join(path, "crop_area"), "required amount is not set")
	}
	if app.AppliedArea.IsZero() {
		a.add(join(path, "applied_area"), "required amount is not set")
	}
	if (!app.TotalAmount.IsZero() || !app.AmountPerHectare.IsZero()) && app.Unit == "" {
		a.add(join(path, "unit"), "amount given without a unit")
	}
	if app.CultivationID != "" && !cultivations[app.CultivationID] {
		a.add(join(path, "cultivation_id"), fmt.Sprintf("no cultivation with id %q", app.CultivationID))
	}
}

func (a *auditor) harvest(path string, h HarvestRecord, cultivations map[string]bool) {
	a.text(path, "cultivation_id", h.CultivationID)
	if h.CultivationID != "" && !cultivations[h.CultivationID] {
		a.add(join(path, "cultivation_id"), fmt.Sprintf("no cultivation with id %q", h.CultivationID))
	}
	if h.HarvestedArea.IsZero() {
		a.add(join(path, "harvested_area"), "required amount is not set")
	}
}

func (a *auditor) grazing(path string, g GrazingRecord) {
	a.text(path, "parcel_id", g.ParcelID)
	a.text(path, "animal_species_id", g.AnimalSpeciesID)
	if g.HeadCount.IsZero() {
		a.add(join(path, "head_count"), "required amount is not set")
	}
	if g.LivestockUnits.IsZero() {
		a.add(join(path, "livestock_units"), "required amount is not set")
	}
	a.date(path, "started_on", g.StartedOn)
	a.date(path, "ended_on", g.EndedOn)
	a.dateRange(path, "started_on", g.StartedOn, "ended_on", g.EndedOn)
	if !g.AmountPerHectare.IsZero() && g.Unit == "" {
		a.add(join(path, "unit"), "amount given without a unit")
	}
}
