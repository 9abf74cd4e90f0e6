// SPDX-License-Identifier: MPL-2.0

package input

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/persephone/persephone/pkg/cueutil"
	"github.com/persephone/persephone/pkg/eagri"
)

//go:embed request_schema.cue
var requestSchema []byte

// LoadRequest reads and decodes a request file. The format comes from the
// file extension.
func LoadRequest(path string) (*eagri.Request, error) {
	format, data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(data, format, path)
}

// DecodeRequest decodes request content in the given format. name is used in
// error messages. Codes are validated after decoding.
func DecodeRequest(data []byte, format Format, name string) (*eagri.Request, error) {
	req, err := decode[eagri.Request](data, format, name, "#Request")
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return req, nil
}

// LoadResponse reads and decodes a response file.
func LoadResponse(path string) (*eagri.Response, error) {
	format, data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(data, format, path)
}

// DecodeResponse decodes response content in the given format.
func DecodeResponse(data []byte, format Format, name string) (*eagri.Response, error) {
	resp, err := decode[eagri.Response](data, format, name, "#Response")
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return resp, nil
}

func readFile(path string) (Format, []byte, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read input at %s: %w", path, err)
	}
	slog.Debug("loaded input file", "path", path, "format", format, "bytes", len(data))
	return format, data, nil
}

// decode runs data through the schema at schemaPath. CUE and JSON are
// compiled directly; YAML and TOML are parsed into plain values first.
func decode[T any](data []byte, format Format, name, schemaPath string) (*T, error) {
	if valid, errs := format.IsValid(); !valid {
		return nil, errs[0]
	}

	opts := []cueutil.Option{cueutil.WithFilename(name)}
	switch format {
	case FormatCUE, FormatJSON:
		result, err := cueutil.ParseAndDecode[T](requestSchema, data, schemaPath, opts...)
		if err != nil {
			return nil, err
		}
		return result.Value, nil
	default:
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, name); err != nil {
			return nil, err
		}
		doc, err := parseDocument(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result, err := cueutil.EncodeAndDecode[T](requestSchema, doc, schemaPath, opts...)
		if err != nil {
			return nil, err
		}
		return result.Value, nil
	}
}

func parseDocument(data []byte, format Format) (map[string]any, error) {
	doc := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	}
	out, _ := normalize(doc).(map[string]any)
	return out, nil
}
