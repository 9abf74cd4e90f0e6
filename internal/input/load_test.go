// SPDX-License-Identifier: MPL-2.0

package input

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/persephone/persephone/pkg/cueutil"
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func wantRequest() *eagri.Request {
	d := types.MustParseDate
	return &eagri.Request{
		Type:             eagri.RequestTypeStatistics,
		AgriculturalYear: intPtr(2025),
		CallMode:         eagri.CallModeTest,
		Scopes: []eagri.DataScope{
			{Code: eagri.ScopeCrops},
			{Code: eagri.ScopeFertilizer},
			{Code: eagri.ScopeHarvest},
			{Code: eagri.ScopeGrazing},
		},
		Fields: []eagri.FieldRecord{{
			Code:       "FIELD_A_2025",
			GridSquare: "A1",
			ParcelID:   "CZ_LPIS_12345",
			ParcelName: "Severní pole",
			ValidFrom:  d("2025-01-01"),
			Areas: []eagri.AreaMeasurement{
				{Area: types.MustDecimal2("15.75"), ValidFrom: d("2025-01-01"), ValidTo: d("2025-12-31")},
			},
			Cultivations: []eagri.Cultivation{{
				ID:        "WHEAT_2025_001",
				CropID:    111,
				CropType:  eagri.CropTypeMain,
				StartedOn: d("2025-03-15"),
				ValidFrom: d("2025-03-15"),
			}},
		}},
		Applications: []eagri.ApplicationRecord{{
			Type:               eagri.ApplicationFertilization,
			StartedOn:          d("2025-04-15"),
			IncorporationTime:  eagri.IncorporationWithin24h,
			CultivationID:      "WHEAT_2025_001",
			CropID:             111,
			CropArea:           types.MustDecimal2("15.75"),
			AppliedArea:        types.MustDecimal2("15.75"),
			TotalAmount:        types.MustDecimal3("1200"),
			Unit:               eagri.UnitKg,
			FertilizerID:       intPtr(1001),
			NutrientMethod:     eagri.NutrientOxide,
			SupplyN:            types.MustDecimal2("30"),
			StrawDecomposition: boolPtr(false),
		}},
		Harvests: []eagri.HarvestRecord{{
			CultivationID:    "WHEAT_2025_001",
			ProductID:        2001,
			ProductType:      eagri.ProductMain,
			AgriculturalYear: 2025,
			HarvestedArea:    types.MustDecimal3("15.75"),
			TotalAmount:      types.MustDecimal3("94.5"),
			Unit:             eagri.UnitTon,
			DryMatter:        intPtr(86),
		}},
		Grazing: []eagri.GrazingRecord{{
			ParcelID:        "CZ_LPIS_12346",
			AnimalSpeciesID: "CATTLE",
			HeadCount:       types.MustDecimal3("20"),
			LivestockUnits:  types.MustDecimal3("20"),
			StartedOn:       d("2025-05-01"),
			EndedOn:         d("2025-10-31"),
			HoursPerDay:     intPtr(12),
			SupplyK:         types.MustDecimal2("0.4"),
		}},
	}
}

func TestLoadRequestFormatsAgree(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"request.cue", "request.json", "request.yaml", "request.toml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadRequest(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("LoadRequest() unexpected error: %v", err)
			}
			if diff := cmp.Diff(wantRequest(), got); diff != "" {
				t.Errorf("LoadRequest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadResponse(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"response.cue", "response.yaml"} {
		got, err := LoadResponse(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("LoadResponse(%s) unexpected error: %v", name, err)
		}
		if got.GUID != "12345678-1234-1234-1234-123456789012" {
			t.Errorf("LoadResponse(%s).GUID = %q", name, got.GUID)
		}
	}
}

func TestDecodeRequestRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   Format
		data     string
		sentinel error
		mention  string
	}{
		{
			name:     "unknown crop type in cue",
			format:   FormatCUE,
			data:     `type: "S", fields: [{code: "A", grid_square: "A", parcel_id: "A", valid_from: "2025-01-01", cultivations: [{id: "C", crop_id: 1, crop_type: "XYZ", started_on: "2025-01-01", valid_from: "2025-01-01"}]}]`,
			sentinel: cueutil.ErrValidation,
			mention:  "crop_type",
		},
		{
			name:     "unknown field in yaml",
			format:   FormatYAML,
			data:     "type: S\ncolour: red\n",
			sentinel: cueutil.ErrValidation,
			mention:  "colour",
		},
		{
			name:     "malformed decimal in toml",
			format:   FormatTOML,
			data:     "type = \"S\"\n[[fields]]\ncode = \"A\"\ngrid_square = \"A\"\nparcel_id = \"A\"\nvalid_from = 2025-01-01\n[[fields.areas]]\narea = \"ten\"\nvalid_from = 2025-01-01\n",
			sentinel: cueutil.ErrValidation,
			mention:  "area",
		},
		{
			name:     "missing request type in json",
			format:   FormatJSON,
			data:     `{"fields": []}`,
			sentinel: cueutil.ErrValidation,
			mention:  "type",
		},
		{
			name:    "broken yaml",
			format:  FormatYAML,
			data:    "type: [S\n",
			mention: "in.yaml",
		},
		{
			name:     "unsupported format",
			format:   Format("xml"),
			data:     "<Request/>",
			sentinel: ErrUnsupportedFormat,
			mention:  "xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeRequest([]byte(tt.data), tt.format, "in."+string(tt.format))
			if err == nil {
				t.Fatalf("DecodeRequest() = %+v, want error", got)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("DecodeRequest() error = %v, want %v", err, tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("DecodeRequest() error %q does not mention %q", err, tt.mention)
			}
		})
	}
}

func TestDecodeRequestDefaults(t *testing.T) {
	t.Parallel()

	got, err := DecodeRequest([]byte(`type: "K"`), FormatCUE, "min.cue")
	if err != nil {
		t.Fatalf("DecodeRequest() unexpected error: %v", err)
	}
	if got.Type != eagri.RequestTypeControl || len(got.Fields) != 0 || got.CallMode != "" {
		t.Errorf("DecodeRequest() = %+v", got)
	}
}

func TestLoadRequestMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadRequest(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadRequest() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadRequestOversizedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.yaml")
	data := []byte("type: S\n# " + strings.Repeat("x", int(cueutil.DefaultMaxFileSize)) + "\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRequest(path); !errors.Is(err, cueutil.ErrFileTooLarge) {
		t.Errorf("LoadRequest() error = %v, want ErrFileTooLarge", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "report.cue", want: FormatCUE},
		{path: "report.JSON", want: FormatJSON},
		{path: "dir/report.yml", want: FormatYAML},
		{path: "report.yaml", want: FormatYAML},
		{path: "report.toml", want: FormatTOML},
		{path: "report.xml", wantErr: true},
		{path: "report", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error does not wrap ErrUnsupportedFormat", tt.path)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
