// Package deepaccess provides traversal, read and write access into
// arbitrarily nested heterogeneous structures (maps, slices, and objects
// exposing methods) through a uniform path of segments.
//
// The three operations share one walk:
//   - Exists(root, path...): existence test; absence is false, never an error
//   - Get(root, path...): read; absence is (nil, false), never an error
//   - Set(root, path..., value): write, vivifying absent intermediates
//
// A path element is either a bare key, whose target kind is inferred from
// the node it resolves against (method-bearing object first, then mapping,
// then sequence), or an explicit override built with MapKey, Index, Method
// or LvalueMethod. Bare values in a path are shorthand for Key:
//
//	root := map[string]any{}
//	deepaccess.Set(root, "foo", "bar", 42) // root["foo"]["bar"] == 42, "foo" vivified
//	v, ok, _ := deepaccess.Get(root, "foo", "bar")
//	ok, _ = deepaccess.Exists(root, "foo", deepaccess.Index(2))
//
// Writes vivify missing intermediate containers: an empty map[string]any by
// default, an empty []any when the next segment is a sequence index.
// Sequence extension fills skipped positions with the Absent sentinel, so a
// never-written slot stays distinguishable from a stored nil. Method
// targets are never vivified.
//
// Two error kinds cover all failures: ErrConfiguration for structurally
// invalid paths (caller bugs) and ErrTraversal for paths that conflict with
// the shape of existing data. Both surface via errors.Is; absence is
// reported through return values, never as an error.
//
// GetSlot returns a mutable handle bound to the final position of a write
// walk, for callers that want to read and write one deep slot repeatedly.
// ParsePath compiles string paths ("users.3.name", "a[2]", "m()") for
// callers that hold paths as data, and the document helpers (GetJSON,
// SetJSON, FromYAML, ...) apply the same operations to raw JSON and YAML
// documents.
//
// The package keeps no state and provides no synchronization; callers
// sharing a root across goroutines must serialize access themselves, since
// a write may vivify nested containers in place.
package deepaccess
