// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests verify Go struct JSON tags match CUE schema field names, so a
// renamed key cannot be silently ignored by the loader.

func cueFieldNames(t *testing.T, def string) map[string]bool {
	t.Helper()

	schema := cuecontext.New().CompileBytes(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	val := schema.LookupPath(cue.ParsePath(def))
	if val.Err() != nil {
		t.Fatalf("failed to lookup CUE definition %s: %v", def, val.Err())
	}

	iter, err := val.Fields(cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}
	fields := make(map[string]bool)
	for iter.Next() {
		fields[strings.TrimSuffix(iter.Selector().String(), "?")] = true
	}
	return fields
}

func goFieldNames(typ reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := range typ.NumField() {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{"#Config", reflect.TypeFor[Config]()},
		{"#UIConfig", reflect.TypeFor[UIConfig]()},
		{"#BuildConfig", reflect.TypeFor[BuildConfig]()},
	}

	for _, tt := range tests {
		cueFields := cueFieldNames(t, tt.def)
		goFields := goFieldNames(tt.typ)
		for f := range cueFields {
			if !goFields[f] {
				t.Errorf("[%s] CUE field %q not found in Go struct", tt.def, f)
			}
		}
		for f := range goFields {
			if !cueFields[f] {
				t.Errorf("[%s] Go JSON tag %q not found in CUE schema", tt.def, f)
			}
		}
		// Every key reachable by env overrides must be declared too.
		for _, key := range keys {
			section, _, _ := strings.Cut(key, ".")
			if tt.def == "#Config" && !cueFields[section] {
				t.Errorf("key %q has no section in #Config", key)
			}
		}
	}
}
