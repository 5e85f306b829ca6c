package deepaccess

// Segment is one unit of a traversal path: either a bare key whose target
// kind is inferred from the current node at walk time, or an explicit
// override built by MapKey, Index, Method or LvalueMethod.
type Segment struct {
	key  any
	kind Kind // KindInferred for bare keys
}

// Key returns a bare segment. Its kind is inferred per node: method-bearing
// objects dispatch by method name, then mappings by key, then sequences by
// index.
func Key(v any) Segment { return Segment{key: v} }

// MapKey returns a segment forced to mapping lookup under k.
func MapKey(k any) Segment { return Segment{key: k, kind: KindMapping} }

// Index returns a segment forced to sequence access at i. Negative indices
// resolve from the end of the sequence.
func Index(i int) Segment { return Segment{key: i, kind: KindSequence} }

// Method returns a segment forced to a method call on the exported method
// name.
func Method(name string) Segment { return Segment{key: name, kind: KindMethod} }

// LvalueMethod returns a segment forced to an assignable method call: name
// must be an exported method returning a pointer, which reads dereference
// and writes assign through.
func LvalueMethod(name string) Segment { return Segment{key: name, kind: KindLvalueMethod} }

// Kind reports the segment's forced kind, or KindInferred for a bare key.
func (s Segment) Kind() Kind { return s.kind }

// Value reports the segment's key, index or method name.
func (s Segment) Value() any { return s.key }

// Override is the descriptor form of a forced segment, for callers that
// build paths from data rather than through the constructor functions.
// Exactly one field must be set; zero or more than one is ErrConfiguration.
type Override struct {
	MappingKey       any
	SequenceIndex    *int
	MethodName       string
	LvalueMethodName string
}

// segment validates the descriptor and converts it to a Segment.
func (o Override) segment() (Segment, error) {
	var (
		seg Segment
		n   int
	)
	if o.MappingKey != nil {
		seg = MapKey(o.MappingKey)
		n++
	}
	if o.SequenceIndex != nil {
		seg = Index(*o.SequenceIndex)
		n++
	}
	if o.MethodName != "" {
		seg = Method(o.MethodName)
		n++
	}
	if o.LvalueMethodName != "" {
		seg = LvalueMethod(o.LvalueMethodName)
		n++
	}
	if n != 1 {
		return Segment{}, configErrorf(
			"override must set exactly one of MappingKey/SequenceIndex/MethodName/LvalueMethodName, got %d", n)
	}
	return seg, nil
}

// normalizePath converts the mixed elements accepted by the public
// operations into segments. Each element may be a Segment, an Override (or
// pointer to one), or any other value, which is shorthand for Key(element).
func normalizePath(path []any) ([]Segment, error) {
	segs := make([]Segment, 0, len(path))
	for i, elem := range path {
		switch e := elem.(type) {
		case Segment:
			segs = append(segs, e)
		case *Segment:
			segs = append(segs, *e)
		case Override:
			seg, err := e.segment()
			if err != nil {
				return nil, segmentErrorf(i, err)
			}
			segs = append(segs, seg)
		case *Override:
			seg, err := e.segment()
			if err != nil {
				return nil, segmentErrorf(i, err)
			}
			segs = append(segs, seg)
		default:
			segs = append(segs, Key(elem))
		}
	}
	return segs, nil
}
