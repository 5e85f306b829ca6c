package deepaccess

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Document helpers: thin wrappers that decode a serialized document into a
// traversable root, run one of the three operations, and (for writes)
// re-encode the result. Paths use the ParsePath string grammar, so all
// semantics, including Absent and the error split, match Exists/Get/Set.

// FromJSON decodes a JSON document into a traversable root of maps, slices
// and primitives.
func FromJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrDocument)
	}
	return gjson.ParseBytes(data).Value(), nil
}

// FromYAML decodes a YAML document into a traversable root.
func FromYAML(data []byte) (any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, err)
	}
	return root, nil
}

// GetJSON resolves a path string against a raw JSON document.
func GetJSON(data []byte, path string) (any, bool, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	root, err := FromJSON(data)
	if err != nil {
		return nil, false, err
	}
	return Get(root, pathArgs(segs)...)
}

// ExistsJSON reports whether a path string resolves against a raw JSON
// document.
func ExistsJSON(data []byte, path string) (bool, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return false, err
	}
	root, err := FromJSON(data)
	if err != nil {
		return false, err
	}
	return Exists(root, pathArgs(segs)...)
}

// SetJSON stores v at a path string inside a raw JSON document and returns
// the re-encoded document. Vivified sparse sequence slots encode as null.
func SetJSON(data []byte, path string, v any) ([]byte, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	root, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	args := append(pathArgs(segs), v)
	if _, err := Set(&root, args...); err != nil {
		return nil, err
	}
	out, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, err)
	}
	return out, nil
}

// SetYAML is SetJSON for YAML documents.
func SetYAML(data []byte, path string, v any) ([]byte, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	root, err := FromYAML(data)
	if err != nil {
		return nil, err
	}
	args := append(pathArgs(segs), v)
	if _, err := Set(&root, args...); err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(normalizeAbsent(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, err)
	}
	return out, nil
}

// normalizeAbsent rewrites Absent sentinels to nil so YAML encoding renders
// sparse slots as null rather than as an opaque struct.
func normalizeAbsent(v any) any {
	switch t := v.(type) {
	case absentValue:
		return nil
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeAbsent(e)
		}
		return t
	case map[any]any:
		for k, e := range t {
			t[k] = normalizeAbsent(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeAbsent(e)
		}
		return t
	default:
		return v
	}
}
