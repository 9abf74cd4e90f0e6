// SPDX-License-Identifier: MPL-2.0

package eagri

import (
	"errors"
	"fmt"

	"github.com/persephone/persephone/pkg/types"
)

// ErrInvalidRecord is the sentinel error wrapped by InvalidRecordError.
var ErrInvalidRecord = errors.New("invalid record")

type (
	// AreaMeasurement is one validity interval of a field's area (Vymera).
	AreaMeasurement struct {
		Area      types.Decimal2 `json:"area" yaml:"area"`
		ValidFrom types.Date     `json:"valid_from" yaml:"valid_from"`
		ValidTo   types.Date     `json:"valid_to,omitempty" yaml:"valid_to,omitempty"`
	}

	// Cultivation is one crop-growing episode on a field (Pestovani).
	Cultivation struct {
		ID               string     `json:"id" yaml:"id"`
		CropID           int        `json:"crop_id" yaml:"crop_id"`
		UsageDirectionID *int       `json:"usage_direction_id,omitempty" yaml:"usage_direction_id,omitempty"`
		MultiYear        bool       `json:"multi_year" yaml:"multi_year"`
		AgriculturalYear *int       `json:"agricultural_year,omitempty" yaml:"agricultural_year,omitempty"`
		CropType         CropType   `json:"crop_type,omitempty" yaml:"crop_type,omitempty"`
		StartedOn        types.Date `json:"started_on" yaml:"started_on"`
		EndedOn          types.Date `json:"ended_on,omitempty" yaml:"ended_on,omitempty"`
		ValidFrom        types.Date `json:"valid_from" yaml:"valid_from"`
		ValidTo          types.Date `json:"valid_to,omitempty" yaml:"valid_to,omitempty"`
	}

	// FieldRecord is one parcel/crop-code's seeded area and cultivations for
	// the reporting period (Osev).
	FieldRecord struct {
		Code         string            `json:"code" yaml:"code"`
		GridSquare   string            `json:"grid_square" yaml:"grid_square"`
		ParcelID     string            `json:"parcel_id" yaml:"parcel_id"`
		ParcelName   string            `json:"parcel_name,omitempty" yaml:"parcel_name,omitempty"`
		ValidFrom    types.Date        `json:"valid_from" yaml:"valid_from"`
		ValidTo      types.Date        `json:"valid_to,omitempty" yaml:"valid_to,omitempty"`
		Areas        []AreaMeasurement `json:"areas" yaml:"areas"`
		Cultivations []Cultivation     `json:"cultivations,omitempty" yaml:"cultivations,omitempty"`
	}

	// ApplicationRecord is one fertilizer, sludge, grazing-manure or soil
	// substance application (Aplikace).
	ApplicationRecord struct {
		Type               ApplicationType   `json:"type" yaml:"type"`
		StartedOn          types.Date        `json:"started_on" yaml:"started_on"`
		IncorporatedOn     types.Date        `json:"incorporated_on,omitempty" yaml:"incorporated_on,omitempty"`
		IncorporationTime  IncorporationTime `json:"incorporation_time,omitempty" yaml:"incorporation_time,omitempty"`
		CultivationID      string            `json:"cultivation_id,omitempty" yaml:"cultivation_id,omitempty"`
		ParcelID           string            `json:"parcel_id,omitempty" yaml:"parcel_id,omitempty"`
		CropID             int               `json:"crop_id" yaml:"crop_id"`
		CropArea           types.Decimal2    `json:"crop_area" yaml:"crop_area"`
		AppliedArea        types.Decimal2    `json:"applied_area" yaml:"applied_area"`
		TotalAmount        types.Decimal3    `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
		AmountPerHectare   types.Decimal3    `json:"amount_per_hectare,omitempty" yaml:"amount_per_hectare,omitempty"`
		Unit               Unit              `json:"unit,omitempty" yaml:"unit,omitempty"`
		FertilizerID       *int              `json:"fertilizer_id,omitempty" yaml:"fertilizer_id,omitempty"`
		FertilizerName     string            `json:"fertilizer_name,omitempty" yaml:"fertilizer_name,omitempty"`
		NitrogenCategory   *int              `json:"nitrogen_category,omitempty" yaml:"nitrogen_category,omitempty"`
		FertilizerKind     *int              `json:"fertilizer_kind,omitempty" yaml:"fertilizer_kind,omitempty"`
		FertilizerTypeID   *int              `json:"fertilizer_type_id,omitempty" yaml:"fertilizer_type_id,omitempty"`
		NutrientMethod     NutrientMethod    `json:"nutrient_method,omitempty" yaml:"nutrient_method,omitempty"`
		SupplyN            types.Decimal2    `json:"supply_n,omitempty" yaml:"supply_n,omitempty"`
		SupplyP            types.Decimal2    `json:"supply_p,omitempty" yaml:"supply_p,omitempty"`
		SupplyK            types.Decimal2    `json:"supply_k,omitempty" yaml:"supply_k,omitempty"`
		SupplyMg           types.Decimal2    `json:"supply_mg,omitempty" yaml:"supply_mg,omitempty"`
		SupplyCa           types.Decimal2    `json:"supply_ca,omitempty" yaml:"supply_ca,omitempty"`
		SupplyS            types.Decimal2    `json:"supply_s,omitempty" yaml:"supply_s,omitempty"`
		StrawDecomposition *bool             `json:"straw_decomposition,omitempty" yaml:"straw_decomposition,omitempty"`
	}

	// HarvestRecord is one yield report tied to a cultivation (Sklizen).
	HarvestRecord struct {
		CultivationID    string         `json:"cultivation_id" yaml:"cultivation_id"`
		ProductID        int            `json:"product_id" yaml:"product_id"`
		ProductType      ProductType    `json:"product_type,omitempty" yaml:"product_type,omitempty"`
		AgriculturalYear int            `json:"agricultural_year" yaml:"agricultural_year"`
		HarvestedArea    types.Decimal3 `json:"harvested_area" yaml:"harvested_area"`
		TotalAmount      types.Decimal3 `json:"total_amount,omitempty" yaml:"total_amount,omitempty"`
		AmountPerHectare types.Decimal3 `json:"amount_per_hectare,omitempty" yaml:"amount_per_hectare,omitempty"`
		Unit             Unit           `json:"unit" yaml:"unit"`
		DryMatter        *int           `json:"dry_matter,omitempty" yaml:"dry_matter,omitempty"`
	}

	// GrazingRecord is one livestock grazing event with optional manure
	// nutrient accounting (Pastva).
	GrazingRecord struct {
		ParcelID         string         `json:"parcel_id" yaml:"parcel_id"`
		AnimalSpeciesID  string         `json:"animal_species_id" yaml:"animal_species_id"`
		AnimalCategoryID *int           `json:"animal_category_id,omitempty" yaml:"animal_category_id,omitempty"`
		CustomCategory   string         `json:"custom_category,omitempty" yaml:"custom_category,omitempty"`
		HeadCount        types.Decimal3 `json:"head_count" yaml:"head_count"`
		LivestockUnits   types.Decimal3 `json:"livestock_units" yaml:"livestock_units"`
		StartedOn        types.Date     `json:"started_on" yaml:"started_on"`
		EndedOn          types.Date     `json:"ended_on" yaml:"ended_on"`
		HoursPerDay      *int           `json:"hours_per_day,omitempty" yaml:"hours_per_day,omitempty"`
		GrazedArea       types.Decimal2 `json:"grazed_area,omitempty" yaml:"grazed_area,omitempty"`
		AmountPerHectare types.Decimal3 `json:"amount_per_hectare,omitempty" yaml:"amount_per_hectare,omitempty"`
		Unit             Unit           `json:"unit,omitempty" yaml:"unit,omitempty"`
		FertilizerID     *int           `json:"fertilizer_id,omitempty" yaml:"fertilizer_id,omitempty"`
		FertilizerName   string         `json:"fertilizer_name,omitempty" yaml:"fertilizer_name,omitempty"`
		NutrientMethod   NutrientMethod `json:"nutrient_method,omitempty" yaml:"nutrient_method,omitempty"`
		SupplyN          types.Decimal2 `json:"supply_n,omitempty" yaml:"supply_n,omitempty"`
		SupplyP          types.Decimal2 `json:"supply_p,omitempty" yaml:"supply_p,omitempty"`
		SupplyK          types.Decimal2 `json:"supply_k,omitempty" yaml:"supply_k,omitempty"`
	}

	// DataScope declares one category of data present in a request (RozsahDat).
	// Its text form is the bare scope code.
	DataScope struct {
		Code ScopeCode
	}

	// InvalidRecordError is returned when a record has invalid fields. It
	// collects field-level errors; errors.Is matches ErrInvalidRecord as well
	// as every collected error's own sentinel.
	InvalidRecordError struct {
		Kind        string
		FieldErrors []error
	}

	validatable interface {
		~string
		IsValid() (bool, []error)
	}
)

// Error implements the error interface for InvalidRecordError.
func (e *InvalidRecordError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid %s: %v", e.Kind, e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid %s: %d field error(s)", e.Kind, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRecord followed by the field errors.
func (e *InvalidRecordError) Unwrap() []error {
	return append([]error{ErrInvalidRecord}, e.FieldErrors...)
}

// codeErrors validates a code field. Optional codes are only checked when set.
func codeErrors[T validatable](field string, v T, required bool) []error {
	if v == "" && !required {
		return nil
	}
	valid, errs := v.IsValid()
	if valid {
		return nil
	}
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = fmt.Errorf("%s: %w", field, err)
	}
	return out
}

func recordResult(kind string, errs []error) (bool, []error) {
	if len(errs) > 0 {
		return false, []error{&InvalidRecordError{Kind: kind, FieldErrors: errs}}
	}
	return true, nil
}

// nested prefixes each error of a child record with its position.
func nested(prefix string, index int, valid bool, errs []error) []error {
	if valid {
		return nil
	}
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = fmt.Errorf("%s[%d]: %w", prefix, index, err)
	}
	return out
}

// IsValid returns whether the cultivation's codes are valid.
func (c Cultivation) IsValid() (bool, []error) {
	return recordResult("cultivation", codeErrors("crop_type", c.CropType, false))
}

// IsValid returns whether the field record and its cultivations are valid.
// Area measurements carry no codes and are always valid.
func (f FieldRecord) IsValid() (bool, []error) {
	var errs []error
	for i, c := range f.Cultivations {
		valid, cErrs := c.IsValid()
		errs = append(errs, nested("cultivations", i, valid, cErrs)...)
	}
	return recordResult("field record", errs)
}

// IsValid returns whether the application's codes are valid.
func (a ApplicationRecord) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, codeErrors("type", a.Type, true)...)
	errs = append(errs, codeErrors("incorporation_time", a.IncorporationTime, false)...)
	errs = append(errs, codeErrors("unit", a.Unit, false)...)
	errs = append(errs, codeErrors("nutrient_method", a.NutrientMethod, false)...)
	return recordResult("application record", errs)
}

// IsValid returns whether the harvest's codes are valid.
func (h HarvestRecord) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, codeErrors("product_type", h.ProductType, false)...)
	errs = append(errs, codeErrors("unit", h.Unit, true)...)
	return recordResult("harvest record", errs)
}

// IsValid returns whether the grazing record's codes are valid.
func (g GrazingRecord) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, codeErrors("unit", g.Unit, false)...)
	errs = append(errs, codeErrors("nutrient_method", g.NutrientMethod, false)...)
	return recordResult("grazing record", errs)
}

// IsValid returns whether the scope code is valid.
func (d DataScope) IsValid() (bool, []error) {
	return recordResult("data scope", codeErrors("code", d.Code, true))
}

// String returns the scope's wire code.
func (d DataScope) String() string { return string(d.Code) }

// MarshalText implements encoding.TextMarshaler.
func (d DataScope) MarshalText() ([]byte, error) {
	return []byte(d.Code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The code is checked by
// IsValid, not here, so that every invalid code in a request is reported.
func (d *DataScope) UnmarshalText(text []byte) error {
	d.Code = ScopeCode(text)
	return nil
}
