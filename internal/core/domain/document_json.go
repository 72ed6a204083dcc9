package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON accepts any JSON value in the text fields. Numbers and
// booleans keep their literal text, so "version": 1.0 reads as "1.0";
// objects and arrays are kept as compact JSON. key_variables may be a list
// of objects or strings, or an object mapping names to descriptions.
func (d *PackageDocument) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         looseString       `json:"name"`
		Version      looseString       `json:"version"`
		Installation looseString       `json:"installation"`
		Description  looseString       `json:"description"`
		ExampleUsage looseString       `json:"example_usage"`
		KeyVariables looseKeyVariables `json:"key_variables"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = PackageDocument{
		Name:         string(raw.Name),
		Version:      string(raw.Version),
		Installation: string(raw.Installation),
		Description:  string(raw.Description),
		ExampleUsage: string(raw.ExampleUsage),
		KeyVariables: raw.KeyVariables,
	}
	return nil
}

// MarshalDocument encodes doc as 2-space indented JSON without escaping
// <, > and &, which are common in example code.
func MarshalDocument(doc *PackageDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// looseString decodes any JSON value into text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case data[0] == '{' || data[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*s = looseString(buf.String())
	default:
		*s = looseString(data)
	}
	return nil
}

type looseKeyVariables []KeyVariable

func (kv *looseKeyVariables) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*kv = nil
	case data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]KeyVariable, 0, len(items))
		for _, item := range items {
			v, err := keyVariableFrom(item)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*kv = out
	case data[0] == '{':
		out, err := keyVariablesFromObject(data)
		if err != nil {
			return err
		}
		*kv = out
	default:
		var name looseString
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*kv = []KeyVariable{{Name: string(name)}}
	}
	return nil
}

// keyVariableFrom reads one list entry: an object with name and description,
// or any other value taken as the name.
func keyVariableFrom(item json.RawMessage) (KeyVariable, error) {
	item = bytes.TrimSpace(item)
	if len(item) > 0 && item[0] == '{' {
		var v struct {
			Name        looseString `json:"name"`
			Description looseString `json:"description"`
		}
		if err := json.Unmarshal(item, &v); err != nil {
			return KeyVariable{}, err
		}
		return KeyVariable{Name: string(v.Name), Description: string(v.Description)}, nil
	}
	var name looseString
	if err := json.Unmarshal(item, &name); err != nil {
		return KeyVariable{}, err
	}
	return KeyVariable{Name: string(name)}, nil
}

// keyVariablesFromObject reads {"timeout": "seconds", ...} in document order.
func keyVariablesFromObject(data []byte) ([]KeyVariable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var out []KeyVariable
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("key_variables: unexpected key %v", tok)
		}
		var desc looseString
		if err := dec.Decode(&desc); err != nil {
			return nil, err
		}
		out = append(out, KeyVariable{Name: key, Description: string(desc)})
	}
	return out, nil
}
