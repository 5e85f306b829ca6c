package deepaccess

import (
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Slots
///////////////////////////////////////////////////////////////////////////////

// nodeSlot is one location in the structure being walked: the root itself or
// the position selected by the previous segment. Write walks vivify missing
// containers by storing through the slot of the node that should hold them.
type nodeSlot interface {
	// value returns the node currently held by the slot and whether the slot
	// holds a defined value.
	value() (reflect.Value, bool)
	// store coerces v and writes it into the slot. Read-only slots (a
	// non-pointer root, a plain method return) report ErrTraversal.
	store(v any) error
}

// fixedSlot holds a node with no writable backing: a non-pointer root or the
// return value of a plain method call.
type fixedSlot struct {
	v reflect.Value
}

func (s fixedSlot) value() (reflect.Value, bool) { return s.v, !isUndefined(s.v) }

func (s fixedSlot) store(any) error {
	return traversalErrorf("position is not writable; pass a pointer root or use an lvalue method")
}

// rootPtrSlot adapts a pointer root so the root value itself can be replaced
// during vivification or sequence extension.
type rootPtrSlot struct {
	p reflect.Value
}

// value returns the pointer, not the pointee, so that method-set inference
// sees pointer-receiver methods on object roots. Shape checks dereference.
func (s rootPtrSlot) value() (reflect.Value, bool) { return s.p, true }

func (s rootPtrSlot) store(v any) error {
	out, err := coerceAssign(v, s.p.Type().Elem())
	if err != nil {
		return err
	}
	s.p.Elem().Set(out)
	return nil
}

// mapSlot is the value slot under one key of a mapping.
type mapSlot struct {
	m reflect.Value
	k reflect.Value
}

func (s mapSlot) value() (reflect.Value, bool) {
	v := s.m.MapIndex(s.k)
	if !v.IsValid() || isAbsentValue(v) {
		return reflect.Value{}, false
	}
	return v, true
}

func (s mapSlot) store(v any) error {
	out, err := coerceAssign(v, s.m.Type().Elem())
	if err != nil {
		return err
	}
	s.m.SetMapIndex(s.k, out)
	return nil
}

// seqSlot is one element slot of a sequence. The index is already resolved
// and in range.
type seqSlot struct {
	s reflect.Value
	i int
}

func (s seqSlot) value() (reflect.Value, bool) {
	v := s.s.Index(s.i)
	if isAbsentValue(v) {
		return reflect.Value{}, false
	}
	return v, true
}

func (s seqSlot) store(v any) error {
	elem := s.s.Index(s.i)
	if !elem.CanSet() {
		return traversalErrorf("cannot write into %s", s.s.Type())
	}
	out, err := coerceAssign(v, elem.Type())
	if err != nil {
		return err
	}
	elem.Set(out)
	return nil
}

// lvalueSlot writes through the pointer returned by an lvalue method.
type lvalueSlot struct {
	p reflect.Value
}

func (s lvalueSlot) value() (reflect.Value, bool) {
	if !s.p.IsValid() || s.p.IsNil() {
		return reflect.Value{}, false
	}
	v := s.p.Elem()
	if isUndefined(v) || isAbsentValue(v) {
		return v, false
	}
	return v, true
}

func (s lvalueSlot) store(v any) error {
	if !s.p.IsValid() || s.p.IsNil() {
		return traversalErrorf("lvalue method returned a nil pointer")
	}
	out, err := coerceAssign(v, s.p.Type().Elem())
	if err != nil {
		return err
	}
	s.p.Elem().Set(out)
	return nil
}

func newRootSlot(root any) nodeSlot {
	rv := reflect.ValueOf(root)
	if rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rootPtrSlot{p: rv}
	}
	return fixedSlot{v: rv}
}

///////////////////////////////////////////////////////////////////////////////
// Method helpers
///////////////////////////////////////////////////////////////////////////////

// lookupMethod finds an exported method on v, falling back to the pointer
// method set when v is addressable.
func lookupMethod(v reflect.Value, name string) reflect.Value {
	v = unwrap(v)
	if !v.IsValid() {
		return reflect.Value{}
	}
	m := v.MethodByName(name)
	if !m.IsValid() && v.CanAddr() {
		m = v.Addr().MethodByName(name)
	}
	return m
}

// callGetter invokes a member with no arguments and returns its first
// result, or an invalid value for a void member.
func callGetter(m reflect.Value, name string) (reflect.Value, error) {
	if m.Type().NumIn() != 0 {
		return reflect.Value{}, traversalErrorf("method %s requires arguments and cannot be traversed", name)
	}
	out := m.Call(nil)
	if len(out) == 0 {
		return reflect.Value{}, nil
	}
	return out[0], nil
}

// callSetter invokes a member with the new value as its single argument and
// returns the member's own return value, which decides what was stored.
func callSetter(m reflect.Value, name string, v any) (any, error) {
	mt := m.Type()
	if mt.NumIn() != 1 || mt.IsVariadic() {
		return nil, traversalErrorf("method %s does not take exactly one argument", name)
	}
	arg, err := coerceAssign(v, mt.In(0))
	if err != nil {
		return nil, err
	}
	out := m.Call([]reflect.Value{arg})
	if len(out) == 0 {
		return nil, nil
	}
	return valueOrNil(out[0]), nil
}

// callLvalue invokes a member with no arguments and requires a pointer
// result.
func callLvalue(m reflect.Value, name string) (reflect.Value, error) {
	out, err := callGetter(m, name)
	if err != nil {
		return reflect.Value{}, err
	}
	out = unwrap(out)
	if !out.IsValid() || out.Kind() != reflect.Pointer {
		return reflect.Value{}, traversalErrorf("lvalue method %s must return a pointer", name)
	}
	return out, nil
}

///////////////////////////////////////////////////////////////////////////////
// Read walk
///////////////////////////////////////////////////////////////////////////////

// walkRead resolves segments left to right without mutating anything. It
// returns the resolved value and whether the full path exists. invokeFinal
// controls whether a final method segment is called for its value (Get) or
// only checked for presence (Exists).
func walkRead(root any, segs []Segment, invokeFinal bool) (reflect.Value, bool, error) {
	cur := reflect.ValueOf(root)
	for i, seg := range segs {
		cur = unwrap(cur)
		if isUndefined(cur) {
			return reflect.Value{}, false, nil
		}
		last := i == len(segs)-1

		kind := seg.kind
		if kind == KindInferred {
			switch kind = inferKind(cur); kind {
			case KindUndefined:
				kind = KindMapping
			case KindScalar:
				return reflect.Value{}, false, segmentErrorf(i,
					traversalErrorf("cannot traverse a non-container %s", cur.Type()))
			}
		}

		switch kind {
		case KindMapping:
			m := derefAll(cur)
			if !m.IsValid() || m.Kind() != reflect.Map {
				return reflect.Value{}, false, segmentErrorf(i,
					traversalErrorf("expected a mapping, found %s", typeName(cur)))
			}
			k, err := coerceMapKey(seg.key, m.Type().Key())
			if err != nil {
				return reflect.Value{}, false, segmentErrorf(i, err)
			}
			v := reflect.Value{}
			if !m.IsNil() {
				v = m.MapIndex(k)
			}
			if !v.IsValid() || isAbsentValue(v) {
				return reflect.Value{}, false, nil
			}
			cur = v

		case KindSequence:
			s := derefAll(cur)
			if !s.IsValid() || (s.Kind() != reflect.Slice && s.Kind() != reflect.Array) {
				return reflect.Value{}, false, segmentErrorf(i,
					traversalErrorf("expected a sequence, found %s", typeName(cur)))
			}
			idx, err := coerceIndex(seg.key)
			if err != nil {
				return reflect.Value{}, false, segmentErrorf(i, err)
			}
			if idx < 0 {
				idx += s.Len()
			}
			if idx < 0 || idx >= s.Len() {
				return reflect.Value{}, false, nil
			}
			v := s.Index(idx)
			if isAbsentValue(v) {
				return reflect.Value{}, false, nil
			}
			cur = v

		case KindMethod, KindLvalueMethod:
			name, err := methodKey(seg.key)
			if err != nil {
				return reflect.Value{}, false, segmentErrorf(i, err)
			}
			m := lookupMethod(cur, name)
			if !m.IsValid() {
				return reflect.Value{}, false, nil
			}
			if last && !invokeFinal {
				// Existence of a member does not require calling it.
				return reflect.Value{}, true, nil
			}
			out, err := callGetter(m, name)
			if err != nil {
				return reflect.Value{}, false, segmentErrorf(i, err)
			}
			if kind == KindLvalueMethod {
				ptr := unwrap(out)
				if !ptr.IsValid() || ptr.Kind() != reflect.Pointer {
					return reflect.Value{}, false, segmentErrorf(i,
						traversalErrorf("lvalue method %s must return a pointer", name))
				}
				if ptr.IsNil() {
					return reflect.Value{}, false, nil
				}
				out = ptr.Elem()
			}
			cur = out
		}
	}
	cur = unwrap(cur)
	if isAbsentValue(cur) {
		return reflect.Value{}, false, nil
	}
	return cur, true, nil
}

///////////////////////////////////////////////////////////////////////////////
// Write walk
///////////////////////////////////////////////////////////////////////////////

// walkSlot resolves segments against root the way a write does, vivifying
// absent intermediate containers, and returns a handle bound to the final
// position. Vivification creates an empty mapping by default; a sequence or
// method target is created or rejected according to the segment that
// addresses it.
func walkSlot(root any, segs []Segment) (*Slot, error) {
	if len(segs) == 0 {
		return nil, configErrorf("empty path has no target slot")
	}
	loc := newRootSlot(root)
	for i, seg := range segs {
		cur, _ := loc.value()
		cur = unwrap(cur)
		last := i == len(segs)-1

		kind := seg.kind
		if kind == KindInferred {
			switch kind = inferKind(cur); kind {
			case KindUndefined:
				kind = KindMapping
			case KindScalar:
				return nil, segmentErrorf(i,
					traversalErrorf("cannot traverse a non-container %s", cur.Type()))
			}
		}

		switch kind {
		case KindMapping:
			m := derefAll(cur)
			if m.IsValid() && m.Kind() == reflect.Map && m.IsNil() {
				// A typed nil map vivifies as its own type.
				created := reflect.MakeMap(m.Type())
				if err := loc.store(created.Interface()); err != nil {
					return nil, segmentErrorf(i, err)
				}
				m = created
			} else if !m.IsValid() || isAbsentValue(m) {
				created := reflect.MakeMap(emptyMapType)
				if err := loc.store(created.Interface()); err != nil {
					return nil, segmentErrorf(i, err)
				}
				m = created
			} else if m.Kind() != reflect.Map {
				return nil, segmentErrorf(i,
					traversalErrorf("expected a mapping, found %s", typeName(cur)))
			}
			k, err := coerceMapKey(seg.key, m.Type().Key())
			if err != nil {
				return nil, segmentErrorf(i, err)
			}
			next := mapSlot{m: m, k: k}
			if last {
				return slotHandle(next), nil
			}
			loc = next

		case KindSequence:
			s := derefAll(cur)
			if s.IsValid() && s.Kind() == reflect.Slice && s.IsNil() {
				created := reflect.MakeSlice(s.Type(), 0, 0)
				if err := loc.store(created.Interface()); err != nil {
					return nil, segmentErrorf(i, err)
				}
				s = created
			} else if !s.IsValid() || isAbsentValue(s) {
				created := reflect.MakeSlice(emptySeqType, 0, 0)
				if err := loc.store(created.Interface()); err != nil {
					return nil, segmentErrorf(i, err)
				}
				s = created
			} else if s.Kind() != reflect.Slice {
				// Arrays cannot grow and arrive as unwritable copies.
				return nil, segmentErrorf(i,
					traversalErrorf("expected a growable sequence, found %s", typeName(cur)))
			}
			idx, err := coerceIndex(seg.key)
			if err != nil {
				return nil, segmentErrorf(i, err)
			}
			if idx < 0 {
				idx += s.Len()
				if idx < 0 {
					return nil, segmentErrorf(i,
						traversalErrorf("index %v resolves before the start of the sequence", seg.key))
				}
			}
			if idx >= s.Len() {
				grown := growSequence(s, idx+1)
				if err := loc.store(grown.Interface()); err != nil {
					return nil, segmentErrorf(i, err)
				}
				s = grown
			}
			next := seqSlot{s: s, i: idx}
			if last {
				return slotHandle(next), nil
			}
			loc = next

		case KindMethod, KindLvalueMethod:
			if isUndefined(cur) || !derefAll(cur).IsValid() {
				return nil, segmentErrorf(i,
					configErrorf("cannot vivify a %s target", kind))
			}
			name, err := methodKey(seg.key)
			if err != nil {
				return nil, segmentErrorf(i, err)
			}
			m := lookupMethod(cur, name)
			if !m.IsValid() {
				return nil, segmentErrorf(i,
					traversalErrorf("%s does not expose method %s", typeName(cur), name))
			}
			if kind == KindLvalueMethod {
				ptr, err := callLvalue(m, name)
				if err != nil {
					return nil, segmentErrorf(i, err)
				}
				next := lvalueSlot{p: ptr}
				if last {
					return slotHandle(next), nil
				}
				loc = next
			} else {
				if last {
					return methodHandle(m, name), nil
				}
				out, err := callGetter(m, name)
				if err != nil {
					return nil, segmentErrorf(i, err)
				}
				loc = fixedSlot{v: out}
			}
		}
	}
	panic("unreachable")
}

// growSequence extends s so that it has length n. Skipped positions are
// filled with the Absent sentinel when the element type can hold it, so that
// extension never fabricates present zero values.
func growSequence(s reflect.Value, n int) reflect.Value {
	fill := reflect.Zero(s.Type().Elem())
	if s.Type().Elem() == anyType {
		fill = reflect.ValueOf(Absent)
	}
	for s.Len() < n {
		s = reflect.Append(s, fill)
	}
	return s
}

// typeName names a node's dynamic type for error messages.
func typeName(v reflect.Value) string {
	v = unwrap(v)
	if !v.IsValid() {
		return "undefined"
	}
	return v.Type().String()
}
