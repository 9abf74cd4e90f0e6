// SPDX-License-Identifier: MPL-2.0

package eagri

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnumValue is the sentinel error wrapped by InvalidEnumValueError.
var ErrInvalidEnumValue = errors.New("invalid enum value")

const (
	RequestTypeControl    RequestType = "K"
	RequestTypeStatistics RequestType = "S"
	RequestTypeBalance    RequestType = "B"
)

const (
	CallModeProduction CallMode = "P"
	CallModeTest       CallMode = "T"
)

const (
	ScopeCrops      ScopeCode = "O"
	ScopeFertilizer ScopeCode = "H"
	ScopeGrazing    ScopeCode = "P"
	ScopeHarvest    ScopeCode = "S"
)

const (
	CropTypeMain      CropType = "HLA"
	CropTypeSecondary CropType = "VED"
	CropTypeHelper    CropType = "POM"
	CropTypeUndersown CropType = "POD"
	CropTypeCover     CropType = "KRY"
)

const (
	ApplicationFertilization ApplicationType = "H"
	ApplicationSludge        ApplicationType = "K"
	ApplicationGrazing       ApplicationType = "P"
	ApplicationAuxSubstance  ApplicationType = "S"
)

const (
	IncorporationImmediate IncorporationTime = "I"
	IncorporationWithin12h IncorporationTime = "12"
	IncorporationWithin24h IncorporationTime = "24"
	IncorporationWithin48h IncorporationTime = "48"
	IncorporationAfter48h  IncorporationTime = "48+"
)

const (
	UnitTon   Unit = "t"
	UnitKg    Unit = "kg"
	UnitLiter Unit = "l"
)

const (
	NutrientElemental NutrientMethod = "P"
	NutrientOxide     NutrientMethod = "O"
)

const (
	ProductMain      ProductType = "H"
	ProductSecondary ProductType = "V"
)

type (
	// RequestType is the kind of data requested (Typ).
	RequestType string

	// CallMode selects the production or test endpoint behavior (RezimVolani).
	CallMode string

	// ScopeCode is a category of data present in a request (RozsahDat/Kod).
	ScopeCode string

	// CropType classifies a cultivation (TypPlodiny).
	CropType string

	// ApplicationType classifies an application event (Aplikace/Typ).
	ApplicationType string

	// IncorporationTime is how soon an applied fertilizer was worked into
	// the soil (DobaZapraveni).
	IncorporationTime string

	// Unit is the unit of an amount (MernaJednotka).
	Unit string

	// NutrientMethod tells whether nutrient supplies are stated as elements
	// or as oxides (MetodaZivin).
	NutrientMethod string

	// ProductType distinguishes main and secondary harvest products (TypProduktu).
	ProductType string

	// InvalidEnumValueError is returned when a value is not one of the codes
	// of its code set.
	InvalidEnumValueError struct {
		Kind  string
		Value string
		Valid []string
	}

	// Code describes one member of a code set.
	Code struct {
		Value       string
		Name        string
		Description string
	}

	// CodeTable lists the members of one code set.
	CodeTable struct {
		Kind  string
		Field string
		Codes []Code
	}

	codeTable[T ~string] struct {
		kind  string
		field string
		codes []Code
	}
)

var (
	requestTypes = codeTable[RequestType]{kind: "request type", field: "Typ", codes: []Code{
		{"K", "CONTROL", "control data"},
		{"S", "STATISTICS", "statistical data"},
		{"B", "BALANCE", "nutrient balance data"},
	}}
	callModes = codeTable[CallMode]{kind: "call mode", field: "RezimVolani", codes: []Code{
		{"P", "PRODUCTION", "production submission"},
		{"T", "TEST", "test submission, not recorded"},
	}}
	scopeCodes = codeTable[ScopeCode]{kind: "data scope", field: "RozsahDat/Kod", codes: []Code{
		{"O", "CROPS", "field and cultivation records"},
		{"H", "FERTILIZER", "fertilizer applications"},
		{"P", "GRAZING", "grazing events"},
		{"S", "HARVEST", "harvests"},
	}}
	cropTypes = codeTable[CropType]{kind: "crop type", field: "TypPlodiny", codes: []Code{
		{"HLA", "MAIN", "main crop"},
		{"VED", "SECONDARY", "secondary crop"},
		{"POM", "HELPER", "helper crop"},
		{"POD", "UNDERSOWN", "undersown crop"},
		{"KRY", "COVER", "cover crop"},
	}}
	applicationTypes = codeTable[ApplicationType]{kind: "application type", field: "Aplikace/Typ", codes: []Code{
		{"H", "FERTILIZATION", "fertilizer application"},
		{"K", "SLUDGE", "sewage sludge application"},
		{"P", "GRAZING", "manure deposited by grazing"},
		{"S", "AUX_SUBSTANCE", "auxiliary soil substance"},
	}}
	incorporationTimes = codeTable[IncorporationTime]{kind: "incorporation time", field: "DobaZapraveni", codes: []Code{
		{"I", "IMMEDIATE", "incorporated immediately"},
		{"12", "WITHIN_12H", "incorporated within 12 hours"},
		{"24", "WITHIN_24H", "incorporated within 12 to 24 hours"},
		{"48", "WITHIN_48H", "incorporated within 24 to 48 hours"},
		{"48+", "AFTER_48H", "incorporated after more than 48 hours"},
	}}
	units = codeTable[Unit]{kind: "unit", field: "MernaJednotka", codes: []Code{
		{"t", "TON", "metric tons"},
		{"kg", "KG", "kilograms"},
		{"l", "LITER", "liters"},
	}}
	nutrientMethods = codeTable[NutrientMethod]{kind: "nutrient method", field: "MetodaZivin", codes: []Code{
		{"P", "ELEMENTAL", "nutrients stated as pure elements"},
		{"O", "OXIDE", "nutrients stated as oxides"},
	}}
	productTypes = codeTable[ProductType]{kind: "product type", field: "TypProduktu", codes: []Code{
		{"H", "MAIN", "main product"},
		{"V", "SECONDARY", "secondary product"},
	}}
)

// CodeTables returns every code set in wire order.
func CodeTables() []CodeTable {
	return []CodeTable{
		requestTypes.public(),
		callModes.public(),
		scopeCodes.public(),
		cropTypes.public(),
		applicationTypes.public(),
		incorporationTimes.public(),
		units.public(),
		nutrientMethods.public(),
		productTypes.public(),
	}
}

func (t codeTable[T]) public() CodeTable {
	codes := make([]Code, len(t.codes))
	copy(codes, t.codes)
	return CodeTable{Kind: t.kind, Field: t.field, Codes: codes}
}

func (t codeTable[T]) lookup(v T) (Code, bool) {
	for _, c := range t.codes {
		if c.Value == string(v) {
			return c, true
		}
	}
	return Code{}, false
}

// parse accepts the wire code (exact) or the symbolic name (any case).
func (t codeTable[T]) parse(s string) (T, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range t.codes {
		if c.Value == trimmed {
			return T(c.Value), nil
		}
	}
	for _, c := range t.codes {
		if strings.EqualFold(c.Name, trimmed) {
			return T(c.Value), nil
		}
	}
	return "", t.invalid(s)
}

func (t codeTable[T]) isValid(v T) (bool, []error) {
	if _, ok := t.lookup(v); !ok {
		return false, []error{t.invalid(string(v))}
	}
	return true, nil
}

func (t codeTable[T]) name(v T) string {
	if c, ok := t.lookup(v); ok {
		return c.Name
	}
	return ""
}

func (t codeTable[T]) invalid(value string) error {
	valid := make([]string, len(t.codes))
	for i, c := range t.codes {
		valid[i] = c.Value
	}
	return &InvalidEnumValueError{Kind: t.kind, Value: value, Valid: valid}
}

// Error implements the error interface.
func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Kind, e.Value, strings.Join(e.Valid, ", "))
}

// Unwrap returns ErrInvalidEnumValue for errors.Is() compatibility.
func (e *InvalidEnumValueError) Unwrap() error { return ErrInvalidEnumValue }

// ParseRequestType parses a wire code ("S") or name ("STATISTICS").
func ParseRequestType(s string) (RequestType, error) { return requestTypes.parse(s) }

// String returns the wire code.
func (v RequestType) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v RequestType) Name() string { return requestTypes.name(v) }

// IsValid returns whether v is a known request type.
func (v RequestType) IsValid() (bool, []error) { return requestTypes.isValid(v) }

// ParseCallMode parses a wire code ("T") or name ("TEST").
func ParseCallMode(s string) (CallMode, error) { return callModes.parse(s) }

// String returns the wire code.
func (v CallMode) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v CallMode) Name() string { return callModes.name(v) }

// IsValid returns whether v is a known call mode.
func (v CallMode) IsValid() (bool, []error) { return callModes.isValid(v) }

// ParseScopeCode parses a wire code ("O") or name ("CROPS").
func ParseScopeCode(s string) (ScopeCode, error) { return scopeCodes.parse(s) }

// String returns the wire code.
func (v ScopeCode) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v ScopeCode) Name() string { return scopeCodes.name(v) }

// IsValid returns whether v is a known scope code.
func (v ScopeCode) IsValid() (bool, []error) { return scopeCodes.isValid(v) }

// ParseCropType parses a wire code ("KRY") or name ("COVER").
func ParseCropType(s string) (CropType, error) { return cropTypes.parse(s) }

// String returns the wire code.
func (v CropType) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v CropType) Name() string { return cropTypes.name(v) }

// IsValid returns whether v is a known crop type.
func (v CropType) IsValid() (bool, []error) { return cropTypes.isValid(v) }

// ParseApplicationType parses a wire code ("H") or name ("FERTILIZATION").
func ParseApplicationType(s string) (ApplicationType, error) { return applicationTypes.parse(s) }

// String returns the wire code.
func (v ApplicationType) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v ApplicationType) Name() string { return applicationTypes.name(v) }

// IsValid returns whether v is a known application type.
func (v ApplicationType) IsValid() (bool, []error) { return applicationTypes.isValid(v) }

// ParseIncorporationTime parses a wire code ("24") or name ("WITHIN_24H").
func ParseIncorporationTime(s string) (IncorporationTime, error) {
	return incorporationTimes.parse(s)
}

// String returns the wire code.
func (v IncorporationTime) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v IncorporationTime) Name() string { return incorporationTimes.name(v) }

// IsValid returns whether v is a known incorporation time.
func (v IncorporationTime) IsValid() (bool, []error) { return incorporationTimes.isValid(v) }

// ParseUnit parses a wire code ("kg") or name ("KG").
func ParseUnit(s string) (Unit, error) { return units.parse(s) }

// String returns the wire code.
func (v Unit) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v Unit) Name() string { return units.name(v) }

// IsValid returns whether v is a known unit.
func (v Unit) IsValid() (bool, []error) { return units.isValid(v) }

// ParseNutrientMethod parses a wire code ("O") or name ("OXIDE").
func ParseNutrientMethod(s string) (NutrientMethod, error) { return nutrientMethods.parse(s) }

// String returns the wire code.
func (v NutrientMethod) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v NutrientMethod) Name() string { return nutrientMethods.name(v) }

// IsValid returns whether v is a known nutrient method.
func (v NutrientMethod) IsValid() (bool, []error) { return nutrientMethods.isValid(v) }

// ParseProductType parses a wire code ("V") or name ("SECONDARY").
func ParseProductType(s string) (ProductType, error) { return productTypes.parse(s) }

// String returns the wire code.
func (v ProductType) String() string { return string(v) }

// Name returns the symbolic name, or "" for an unknown code.
func (v ProductType) Name() string { return productTypes.name(v) }

// IsValid returns whether v is a known product type.
func (v ProductType) IsValid() (bool, []error) { return productTypes.isValid(v) }
