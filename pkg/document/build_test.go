// SPDX-License-Identifier: MPL-2.0

package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/persephone/persephone/internal/sample"
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

func minimalRequest() eagri.Request {
	return eagri.Request{
		Type: eagri.RequestTypeStatistics,
		Fields: []eagri.FieldRecord{{
			Code:       "TEST01",
			GridSquare: "A1",
			ParcelID:   "POZEMEK001",
			ValidFrom:  types.MustParseDate("2025-01-01"),
			Areas: []eagri.AreaMeasurement{{
				Area:      types.MustDecimal2("10.50"),
				ValidFrom: types.MustParseDate("2025-01-01"),
			}},
		}},
	}
}

func TestBuildRequestGolden(t *testing.T) {
	t.Parallel()

	want, err := os.ReadFile(filepath.Join("testdata", "sample_request.xml"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	got, err := BuildRequest(sample.Request())
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("BuildRequest() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRequestMinimal(t *testing.T) {
	t.Parallel()

	got, err := BuildRequest(minimalRequest())
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}

	want := `<?xml version="1.0" encoding="utf-8"?>
<Request>
  <Typ>S</Typ>
  <Osevy>
    <Osev>
      <Zkod>TEST01</Zkod>
      <Ctverec>A1</Ctverec>
      <IdPozemek>POZEMEK001</IdPozemek>
      <PlatnostOd>2025-01-01</PlatnostOd>
      <Vymery>
        <Vymera>
          <Vymera>10.50</Vymera>
          <PlatnostOd>2025-01-01</PlatnostOd>
        </Vymera>
      </Vymery>
    </Osev>
  </Osevy>
</Request>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildRequest() mismatch (-want +got):\n%s", diff)
	}
	for _, absent := range []string{"<Aplikace>", "<Sklizne>", "<Pastvy>", "<RozsahDat>", "<Pestovani>", "NazevPozemek"} {
		if strings.Contains(got, absent) {
			t.Errorf("output contains %s", absent)
		}
	}
}

func TestBuildResponse(t *testing.T) {
	t.Parallel()

	got, err := BuildResponse(eagri.Response{GUID: "12345678-1234-1234-1234-123456789012"})
	if err != nil {
		t.Fatalf("BuildResponse() unexpected error: %v", err)
	}
	want := `<?xml version="1.0" encoding="utf-8"?>
<Response>
  <GuidPodani>12345678-1234-1234-1234-123456789012</GuidPodani>
</Response>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildResponse() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildResponseRejectsBlankGUID(t *testing.T) {
	t.Parallel()

	got, err := BuildResponse(eagri.Response{})
	if !errors.Is(err, types.ErrInvalidSubmissionGUID) {
		t.Errorf("BuildResponse() error = %v, want ErrInvalidSubmissionGUID", err)
	}
	if got != "" {
		t.Errorf("BuildResponse() returned output %q with error", got)
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	req := sample.Request()
	req.Fields[0].ParcelName = ""
	req.Fields[1].ParcelName = ""
	req.Applications[0].StrawDecomposition = nil
	req.Applications[1].StrawDecomposition = nil
	req.Harvests[0].DryMatter = nil
	req.Harvests[1].DryMatter = nil
	req.Grazing[0].SupplyK = types.Decimal2{}
	req.AgriculturalYear = nil

	got, err := BuildRequest(req)
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	for _, absent := range []string{"<NazevPozemek>", "<RozkladSlamy>", "<Susina>", "<PrivodK>0.40", "<HospRok>2025</HospRok>\n  <RezimVolani>"} {
		if strings.Contains(got, absent) {
			t.Errorf("output contains %q after clearing it", absent)
		}
	}
}

func TestEmptySectionsOmitted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*eagri.Request)
		absent  string
		present []string
	}{
		{
			name:    "no applications",
			mutate:  func(r *eagri.Request) { r.Applications = nil },
			absent:  "<Aplikace>",
			present: []string{"<Osevy>", "<Sklizne>", "<Pastvy>"},
		},
		{
			name:    "no harvests",
			mutate:  func(r *eagri.Request) { r.Harvests = []eagri.HarvestRecord{} },
			absent:  "<Sklizne>",
			present: []string{"<Aplikace>", "<Pastvy>"},
		},
		{
			name:    "no grazing",
			mutate:  func(r *eagri.Request) { r.Grazing = nil },
			absent:  "<Pastvy>",
			present: []string{"<Sklizne>"},
		},
		{
			name: "no cultivations",
			mutate: func(r *eagri.Request) {
				r.Fields[0].Cultivations = nil
			},
			absent:  "<Pestovani>",
			present: []string{"<Vymery>"},
		},
		{
			name:    "no scopes",
			mutate:  func(r *eagri.Request) { r.Scopes = nil },
			absent:  "<RozsahDat>",
			present: []string{"<Osevy>"},
		},
		{
			name:    "no fields",
			mutate:  func(r *eagri.Request) { r.Fields = nil },
			absent:  "<Osevy>",
			present: []string{"<Aplikace>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := sample.Request()
			tt.mutate(&req)
			got, err := BuildRequest(req)
			if err != nil {
				t.Fatalf("BuildRequest() unexpected error: %v", err)
			}
			if strings.Contains(got, tt.absent) {
				t.Errorf("output contains %s", tt.absent)
			}
			for _, p := range tt.present {
				if !strings.Contains(got, p) {
					t.Errorf("output is missing %s", p)
				}
			}
		})
	}
}

func TestAreaWrapperAlwaysPresent(t *testing.T) {
	t.Parallel()

	req := minimalRequest()
	req.Fields[0].Areas = nil

	got, err := BuildRequest(req)
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	if !strings.Contains(got, "      <Vymery/>\n") {
		t.Errorf("output lacks an empty <Vymery/>:\n%s", got)
	}
}

func TestCodesUseWireValues(t *testing.T) {
	t.Parallel()

	req := minimalRequest()
	req.Type = eagri.RequestTypeControl
	req.CallMode = eagri.CallModeProduction
	req.Fields[0].Cultivations = []eagri.Cultivation{{
		ID:        "P1",
		CropID:    1,
		MultiYear: true,
		CropType:  eagri.CropTypeCover,
		StartedOn: types.MustParseDate("2025-09-01"),
		ValidFrom: types.MustParseDate("2025-09-01"),
	}}
	req.Applications = []eagri.ApplicationRecord{{
		Type:              eagri.ApplicationAuxSubstance,
		StartedOn:         types.MustParseDate("2025-04-01"),
		IncorporationTime: eagri.IncorporationAfter48h,
		CropID:            1,
		CropArea:          types.MustDecimal2("1"),
		AppliedArea:       types.MustDecimal2("1"),
		Unit:              eagri.UnitLiter,
	}}

	got, err := BuildRequest(req)
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	for _, want := range []string{
		"<Typ>K</Typ>",
		"<RezimVolani>P</RezimVolani>",
		"<TypPlodiny>KRY</TypPlodiny>",
		"<Viceleta>true</Viceleta>",
		"<Typ>S</Typ>",
		"<DobaZapraveni>48+</DobaZapraveni>",
		"<MernaJednotka>l</MernaJednotka>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %s", want)
		}
	}
	for _, name := range []string{"CONTROL", "PRODUCTION", "COVER", "AUX_SUBSTANCE", "AFTER_48H", "LITER"} {
		if strings.Contains(got, name) {
			t.Errorf("output contains symbolic name %s", name)
		}
	}
}

func TestDecimalsKeepScale(t *testing.T) {
	t.Parallel()

	req := minimalRequest()
	req.Fields[0].Areas = []eagri.AreaMeasurement{
		{Area: types.MustDecimal2("10.123456"), ValidFrom: types.MustParseDate("2025-01-01")},
		{Area: types.MustDecimal2("15.999"), ValidFrom: types.MustParseDate("2025-01-01")},
		{Area: types.MustDecimal2("0"), ValidFrom: types.MustParseDate("2025-01-01")},
	}
	req.Grazing = []eagri.GrazingRecord{{
		ParcelID:        "P",
		AnimalSpeciesID: "SHEEP",
		HeadCount:       types.MustDecimal3("40"),
		LivestockUnits:  types.MustDecimal3("6.0005"),
		StartedOn:       types.MustParseDate("2025-05-01"),
		EndedOn:         types.MustParseDate("2025-06-01"),
	}}

	got, err := BuildRequest(req)
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	for _, want := range []string{
		"<Vymera>10.12</Vymera>",
		"<Vymera>16.00</Vymera>",
		"<Vymera>0.00</Vymera>",
		"<PocetKs>40.000</PocetKs>",
		"<PocetDJ>6.000</PocetDJ>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %s", want)
		}
	}
}

func TestBuildRequestWellFormed(t *testing.T) {
	t.Parallel()

	got, err := BuildRequest(sample.Request())
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}

	dec := xml.NewDecoder(strings.NewReader(got))
	var root string
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("output is not well-formed XML: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				root = el.Name.Local
			}
			if len(el.Attr) != 0 || el.Name.Space != "" {
				t.Errorf("element %s has attributes or a namespace", el.Name.Local)
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if root != "Request" {
		t.Errorf("root element = %q, want Request", root)
	}
	if depth != 0 {
		t.Errorf("unbalanced elements, depth %d", depth)
	}
}

func TestBuildRequestInvalidCode(t *testing.T) {
	t.Parallel()

	req := sample.Request()
	req.Fields[0].Cultivations[0].CropType = "XYZ"

	got, err := BuildRequest(req)
	if !errors.Is(err, eagri.ErrInvalidEnumValue) {
		t.Errorf("BuildRequest() error = %v, want ErrInvalidEnumValue", err)
	}
	if got != "" {
		t.Errorf("BuildRequest() returned partial output %q", got)
	}
}

func TestBuildRequestEncodingFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*eagri.Request)
		element string
	}{
		{
			name:    "invalid utf-8 in parcel name",
			mutate:  func(r *eagri.Request) { r.Fields[1].ParcelName = "Pole \xff" },
			element: "NazevPozemek",
		},
		{
			name:    "control character in fertilizer name",
			mutate:  func(r *eagri.Request) { r.Grazing[0].FertilizerName = "bad\x07name" },
			element: "NazevHnojivo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := sample.Request()
			tt.mutate(&req)

			got, err := BuildRequest(req)
			if !errors.Is(err, ErrEncoding) {
				t.Fatalf("BuildRequest() error = %v, want ErrEncoding", err)
			}
			if got != "" {
				t.Errorf("BuildRequest() returned partial output")
			}
			var encErr *EncodingError
			if !errors.As(err, &encErr) || encErr.Element != tt.element {
				t.Errorf("EncodingError = %v, want element %s", encErr, tt.element)
			}
			if errors.Is(err, ErrSerialization) {
				t.Error("encoding failure also reports ErrSerialization")
			}
		})
	}
}

type unsupportedValue struct{}

func (unsupportedValue) isValue() {}

func TestUnsupportedValueIsSerializationFailure(t *testing.T) {
	t.Parallel()

	root := minimalTree()
	w := &elementWriter{}
	w.add(root, "Typ", unsupportedValue{})
	w.add(root, "Zkod", text("after the failure"))

	if !errors.Is(w.err, ErrSerialization) {
		t.Fatalf("elementWriter error = %v, want ErrSerialization", w.err)
	}
	var serErr *SerializationError
	if !errors.As(w.err, &serErr) || serErr.Element != "Typ" {
		t.Errorf("SerializationError = %v, want element Typ", serErr)
	}
	if len(root.Children) != 0 {
		t.Errorf("writer kept adding after an error: %d children", len(root.Children))
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   value
		want string
	}{
		{"text", text("Severní pole"), "Severní pole"},
		{"integer", integer(111), "111"},
		{"negative integer", integer(-5), "-5"},
		{"true", boolean(true), "true"},
		{"false", boolean(false), "false"},
		{"decimal", decimal(types.MustDecimal3("1.5")), "1.500"},
		{"date", date(types.MustParseDate("2025-03-15")), "2025-03-15"},
		{"code", code(eagri.CropTypeMain), "HLA"},
	}

	for _, tt := range tests {
		got, err := format(tt.in)
		if err != nil {
			t.Errorf("format(%s) unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("format(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAbsentValues(t *testing.T) {
	t.Parallel()

	absent := map[string]value{
		"empty text":    text(""),
		"nil int":       optInt(nil),
		"nil bool":      optBool(nil),
		"unset decimal": decimal(types.Decimal2{}),
		"unset date":    date(types.Date{}),
		"empty code":    code(eagri.Unit("")),
	}
	for name, v := range absent {
		if v != nil {
			t.Errorf("%s = %#v, want nil", name, v)
		}
	}

	zero := 0
	no := false
	if optInt(&zero) == nil || optBool(&no) == nil {
		t.Error("zero-valued pointers must still be present")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	want, err := BuildRequest(sample.Request())
	if err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}

	const workers = 16
	req := sample.Request()
	results := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = BuildRequest(req)
		}()
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !bytes.Equal([]byte(results[i]), []byte(want)) {
			t.Errorf("worker %d produced different output", i)
		}
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	req := sample.Request()
	if _, err := BuildRequest(req); err != nil {
		t.Fatalf("BuildRequest() unexpected error: %v", err)
	}
	if diff := cmp.Diff(sample.Request(), req); diff != "" {
		t.Errorf("BuildRequest() changed its input (-want +got):\n%s", diff)
	}
}
