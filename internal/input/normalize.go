// SPDX-License-Identifier: MPL-2.0

package input

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/persephone/persephone/pkg/types"
)

// normalize rewrites values that YAML and TOML decode into Go types CUE
// cannot encode as input text. Dates become "YYYY-MM-DD" strings and
// map[any]any becomes map[string]any.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case time.Time:
		return types.DateOf(v).String()
	case toml.LocalDate:
		return v.String()
	case toml.LocalDateTime:
		return v.LocalDate.String()
	default:
		return v
	}
}
