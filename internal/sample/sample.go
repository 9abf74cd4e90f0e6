// SPDX-License-Identifier: MPL-2.0

// Package sample holds a realistic EH_PEH02A statistics request: a wheat field
// followed by a cover crop, a pasture, two fertilizer applications, grain and
// straw harvests, and one cattle grazing season. The CLI prints it as a
// starting point for new input files and tests build it as a golden document.
package sample

import (
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

// ResponseGUID is the GUID used by Response.
const ResponseGUID = "12345678-1234-1234-1234-123456789012"

// Request returns a fresh copy of the sample request.
func Request() eagri.Request {
	d := types.MustParseDate
	d2 := types.MustDecimal2
	d3 := types.MustDecimal3

	wheat := eagri.Cultivation{
		ID:               "WHEAT_2025_001",
		CropID:           111,
		UsageDirectionID: intPtr(1),
		MultiYear:        false,
		AgriculturalYear: intPtr(2025),
		CropType:         eagri.CropTypeMain,
		StartedOn:        d("2025-03-15"),
		EndedOn:          d("2025-08-31"),
		ValidFrom:        d("2025-03-15"),
		ValidTo:          d("2025-08-31"),
	}
	cover := eagri.Cultivation{
		ID:        "COVER_2025_001",
		CropID:    234,
		MultiYear: false,
		CropType:  eagri.CropTypeCover,
		StartedOn: d("2025-09-01"),
		EndedOn:   d("2025-11-30"),
		ValidFrom: d("2025-09-01"),
		ValidTo:   d("2025-11-30"),
	}

	return eagri.Request{
		Type:             eagri.RequestTypeStatistics,
		AgriculturalYear: intPtr(2025),
		CallMode:         eagri.CallModeTest,
		Scopes: []eagri.DataScope{
			{Code: eagri.ScopeCrops},
			{Code: eagri.ScopeFertilizer},
			{Code: eagri.ScopeHarvest},
			{Code: eagri.ScopeGrazing},
		},
		Fields: []eagri.FieldRecord{
			{
				Code:       "FIELD_A_2025",
				GridSquare: "A1",
				ParcelID:   "CZ_LPIS_12345",
				ParcelName: "Severní pole - pšenice",
				ValidFrom:  d("2025-01-01"),
				ValidTo:    d("2025-12-31"),
				Areas: []eagri.AreaMeasurement{
					{Area: d2("15.75"), ValidFrom: d("2025-01-01"), ValidTo: d("2025-12-31")},
				},
				Cultivations: []eagri.Cultivation{wheat, cover},
			},
			{
				Code:       "FIELD_B_2025",
				GridSquare: "B2",
				ParcelID:   "CZ_LPIS_12346",
				ParcelName: "Jižní pole - pastva",
				ValidFrom:  d("2025-01-01"),
				Areas: []eagri.AreaMeasurement{
					{Area: d2("12.5"), ValidFrom: d("2025-01-01")},
				},
			},
		},
		Applications: []eagri.ApplicationRecord{
			{
				Type:               eagri.ApplicationFertilization,
				StartedOn:          d("2025-04-15"),
				IncorporatedOn:     d("2025-04-16"),
				IncorporationTime:  eagri.IncorporationWithin24h,
				CultivationID:      "WHEAT_2025_001",
				ParcelID:           "CZ_LPIS_12345",
				CropID:             111,
				CropArea:           d2("15.75"),
				AppliedArea:        d2("15.75"),
				TotalAmount:        d3("1200"),
				AmountPerHectare:   d3("76.19047"),
				Unit:               eagri.UnitKg,
				FertilizerID:       intPtr(1001),
				NutrientMethod:     eagri.NutrientOxide,
				SupplyN:            d2("30"),
				SupplyP:            d2("0"),
				SupplyK:            d2("0"),
				StrawDecomposition: boolPtr(false),
			},
			{
				Type:               eagri.ApplicationFertilization,
				StartedOn:          d("2025-03-01"),
				IncorporationTime:  eagri.IncorporationImmediate,
				CultivationID:      "WHEAT_2025_001",
				ParcelID:           "CZ_LPIS_12345",
				CropID:             111,
				CropArea:           d2("15.75"),
				AppliedArea:        d2("15.75"),
				TotalAmount:        d3("15.75"),
				AmountPerHectare:   d3("1"),
				Unit:               eagri.UnitTon,
				FertilizerName:     "Chlévský hnůj skot",
				NitrogenCategory:   intPtr(1),
				FertilizerKind:     intPtr(115),
				NutrientMethod:     eagri.NutrientOxide,
				SupplyN:            d2("4.5"),
				SupplyP:            d2("2.1"),
				SupplyK:            d2("5.8"),
				SupplyCa:           d2("3.2"),
				StrawDecomposition: boolPtr(false),
			},
		},
		Harvests: []eagri.HarvestRecord{
			{
				CultivationID:    "WHEAT_2025_001",
				ProductID:        2001,
				ProductType:      eagri.ProductMain,
				AgriculturalYear: 2025,
				HarvestedArea:    d3("15.75"),
				TotalAmount:      d3("94.5"),
				AmountPerHectare: d3("6"),
				Unit:             eagri.UnitTon,
				DryMatter:        intPtr(86),
			},
			{
				CultivationID:    "WHEAT_2025_001",
				ProductID:        2002,
				ProductType:      eagri.ProductSecondary,
				AgriculturalYear: 2025,
				HarvestedArea:    d3("15.75"),
				TotalAmount:      d3("47.25"),
				AmountPerHectare: d3("3"),
				Unit:             eagri.UnitTon,
				DryMatter:        intPtr(85),
			},
		},
		Grazing: []eagri.GrazingRecord{
			{
				ParcelID:         "CZ_LPIS_12346",
				AnimalSpeciesID:  "CATTLE",
				AnimalCategoryID: intPtr(101),
				HeadCount:        d3("20"),
				LivestockUnits:   d3("20"),
				StartedOn:        d("2025-05-01"),
				EndedOn:          d("2025-10-31"),
				HoursPerDay:      intPtr(12),
				GrazedArea:       d2("12.5"),
				AmountPerHectare: d3("25"),
				Unit:             eagri.UnitKg,
				FertilizerName:   "Výkaly skot pastva",
				NutrientMethod:   eagri.NutrientElemental,
				SupplyN:          d2("0.45"),
				SupplyP:          d2("0.11"),
				SupplyK:          d2("0.4"),
			},
		},
	}
}

// Response returns the sample response.
func Response() eagri.Response {
	return eagri.Response{GUID: ResponseGUID}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }
