package deepaccess

import "reflect"

// Kind classifies how a node is traversed at one path segment. It is a
// closed set: a node is exactly one of these at any given segment, either
// inferred from its runtime shape or forced by an Override descriptor.
type Kind int

const (
	// KindInferred is the zero Kind. A segment with KindInferred resolves
	// against the runtime shape of the current node.
	KindInferred Kind = iota

	// KindMapping treats the node as a key/value mapping (any map type).
	KindMapping

	// KindSequence treats the node as an ordered sequence (slice or array).
	KindSequence

	// KindMethod treats the node as an object and the key as the name of an
	// exported method: called with no arguments to descend or read, and with
	// the new value as its single argument on a final write.
	KindMethod

	// KindLvalueMethod treats the key as the name of an exported method
	// returning a pointer; reads dereference the pointer and writes assign
	// through it.
	KindLvalueMethod

	// KindUndefined marks an absent or nil node. Never carried by a segment;
	// produced only by shape inference.
	KindUndefined

	// KindScalar marks a concrete non-container node. Never carried by a
	// segment; produced only by shape inference.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindInferred:
		return "inferred"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindMethod:
		return "method"
	case KindLvalueMethod:
		return "lvalue-method"
	case KindUndefined:
		return "undefined"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// absentValue is the type of the Absent sentinel.
type absentValue struct{}

// MarshalJSON encodes an absent slot as null so that sparse sequences
// survive re-encoding of a mutated document.
func (absentValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (absentValue) String() string { return "<absent>" }

// Absent is the sentinel distinguishing "no value at this path" from a
// stored nil. Sequence extension fills skipped positions with it, and a slot
// holding Absent is treated as missing by all three operations.
var Absent any = absentValue{}

// reflect.Type constants for vivified containers.
var (
	anyType      = reflect.TypeOf((*any)(nil)).Elem()
	emptyMapType = reflect.TypeOf(map[string]any{})
	emptySeqType = reflect.TypeOf([]any{})
)
