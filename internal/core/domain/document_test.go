package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "requests", wantErr: false},
		{name: "hyphen", input: "python-dateutil", wantErr: false},
		{name: "underscore", input: "typing_extensions", wantErr: false},
		{name: "dot", input: "zope.interface", wantErr: false},
		{name: "mixed case and digits", input: "PyYAML6", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "single dot", input: ".", wantErr: true},
		{name: "double dot", input: "..", wantErr: true},
		{name: "path traversal", input: "../etc/passwd", wantErr: true},
		{name: "slash", input: "foo/bar", wantErr: true},
		{name: "backslash", input: `foo\bar`, wantErr: true},
		{name: "space", input: "foo bar", wantErr: true},
		{name: "null byte", input: "foo\x00", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 215), wantErr: true},
		{name: "max length", input: strings.Repeat("a", 214), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPackageName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPackageDocument_JSONFieldNames(t *testing.T) {
	doc := PackageDocument{
		Name:         "requests",
		Version:      "2.32.3",
		Installation: "pip install requests",
		Description:  "HTTP for Humans.",
		ExampleUsage: "import requests",
		KeyVariables: []KeyVariable{{Name: "timeout", Description: "Seconds to wait"}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"name", "version", "installation", "description", "example_usage", "key_variables"} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 6)
}

func TestPackageDocument_MissingFieldsDecodeToZeroValues(t *testing.T) {
	var doc PackageDocument
	err := json.Unmarshal([]byte(`{"name": "partial"}`), &doc)

	require.NoError(t, err)
	assert.Equal(t, "partial", doc.Name)
	assert.Empty(t, doc.Version)
	assert.Nil(t, doc.KeyVariables)
}

func TestPackageDocument_LenientFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PackageDocument
	}{
		{
			name: "number version keeps literal text",
			in:   `{"name": "x", "version": 1.0}`,
			want: PackageDocument{Name: "x", Version: "1.0"},
		},
		{
			name: "bool and null",
			in:   `{"name": true, "description": null}`,
			want: PackageDocument{Name: "true"},
		},
		{
			name: "object becomes compact json",
			in:   `{"example_usage": {"cmd": "run", "args": [1, 2]}}`,
			want: PackageDocument{ExampleUsage: `{"cmd":"run","args":[1,2]}`},
		},
		{
			name: "key variables as strings",
			in:   `{"key_variables": ["a", "b"]}`,
			want: PackageDocument{KeyVariables: []KeyVariable{{Name: "a"}, {Name: "b"}}},
		},
		{
			name: "key variables as object keep order",
			in:   `{"key_variables": {"zeta": "last letter", "alpha": 1}}`,
			want: PackageDocument{KeyVariables: []KeyVariable{
				{Name: "zeta", Description: "last letter"},
				{Name: "alpha", Description: "1"},
			}},
		},
		{
			name: "mixed key variable entries",
			in:   `{"key_variables": [{"name": "timeout", "description": 30}, 7]}`,
			want: PackageDocument{KeyVariables: []KeyVariable{
				{Name: "timeout", Description: "30"},
				{Name: "7"},
			}},
		},
		{
			name: "empty key variables list",
			in:   `{"key_variables": []}`,
			want: PackageDocument{KeyVariables: []KeyVariable{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc PackageDocument
			require.NoError(t, json.Unmarshal([]byte(tt.in), &doc))
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestPackageDocument_InvalidJSONStillFails(t *testing.T) {
	var doc PackageDocument
	assert.Error(t, json.Unmarshal([]byte(`{"name": "trunc`), &doc))
}

func TestMarshalDocument_KeepsCodeReadable(t *testing.T) {
	data, err := MarshalDocument(&PackageDocument{
		Name:         "requests",
		ExampleUsage: "if a < b && c > d:\n    print('<ok>')",
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "if a < b && c > d:")
	assert.Contains(t, out, "'<ok>'")
	assert.NotContains(t, out, `\u003c`)
	assert.Contains(t, out, "\n  \"name\": \"requests\"")
}
