// SPDX-License-Identifier: MPL-2.0

package input

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"started_on": time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		"valid_from": toml.LocalDate{Year: 2025, Month: 1, Day: 2},
		"stamp":      toml.LocalDateTime{LocalDate: toml.LocalDate{Year: 2024, Month: 12, Day: 31}},
		"nested":     map[any]any{"ended_on": toml.LocalDate{Year: 2025, Month: 8, Day: 31}, 7: "seven"},
		"list":       []any{map[string]any{"valid_to": time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)}},
		"tables":     []map[string]any{{"code": "A"}},
		"area":       15.75,
	}
	want := map[string]any{
		"started_on": "2025-03-15",
		"valid_from": "2025-01-02",
		"stamp":      "2024-12-31",
		"nested":     map[string]any{"ended_on": "2025-08-31", "7": "seven"},
		"list":       []any{map[string]any{"valid_to": "2025-12-31"}},
		"tables":     []any{map[string]any{"code": "A"}},
		"area":       15.75,
	}

	if diff := cmp.Diff(want, normalize(in)); diff != "" {
		t.Errorf("normalize() mismatch (-want +got):\n%s", diff)
	}
}
