// SPDX-License-Identifier: MPL-2.0

package input

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/persephone/persephone/pkg/eagri"
)

// EncodeRequest writes req as an input file that LoadRequest reads back to an
// equal request. Only YAML can be emitted: the JSON and TOML encoders cannot
// drop unset dates and decimals, which the schema would then reject.
func EncodeRequest(w io.Writer, req eagri.Request, format Format) error {
	if format != FormatYAML {
		return &UnsupportedFormatError{Value: string(format)}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return enc.Close()
}
