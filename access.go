package deepaccess

import "reflect"

// Exists walks path against root and reports whether a value (or, for a
// final method segment, a callable member) exists at that path. An empty
// path is always true. Absence at any prefix is false, never an error;
// a shape conflict against existing data is ErrTraversal. Exists never
// mutates root, though it may call zero-argument members to descend.
func Exists(root any, path ...any) (bool, error) {
	segs, err := normalizePath(path)
	if err != nil {
		return false, err
	}
	_, found, err := walkRead(root, segs, false)
	return found, err
}

// Get walks path against root and returns the resolved value. ok is false
// exactly when no value exists at the path, in which case the value is nil;
// a stored nil comes back as (nil, true). An empty path returns root
// itself. Shape conflicts are ErrTraversal, never folded into absence.
func Get(root any, path ...any) (any, bool, error) {
	segs, err := normalizePath(path)
	if err != nil {
		return nil, false, err
	}
	v, found, err := walkRead(root, segs, true)
	if err != nil || !found {
		return nil, false, err
	}
	return valueOrNil(v), true, nil
}

// Set walks all but the last element of args as the path and stores the
// last element at the resolved position, vivifying absent intermediate
// containers along the way: an empty mapping by default, an empty sequence
// when the next segment is a sequence index, never a method target. It
// returns the value actually stored, which for a final method segment is
// the member's own return value.
//
// Maps mutate in place; pass a pointer root (for example *any) when the
// root itself may need to be replaced, as sequence extension reallocates.
func Set(root any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, configErrorf("missing value to store")
	}
	path, value := args[:len(args)-1], args[len(args)-1]
	segs, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	slot, err := walkSlot(root, segs)
	if err != nil {
		return nil, err
	}
	return slot.Set(value)
}

// GetSlot walks path like Set does, vivifying absent intermediates, and
// returns a mutable handle bound to the final position. Writing through the
// handle is equivalent to calling Set at the same path.
func GetSlot(root any, path ...any) (*Slot, error) {
	segs, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	return walkSlot(root, segs)
}

// Slot is a mutable handle to one resolved position in a structure: a
// mapping key, a sequence index, or a method target. It is valid only while
// the containers it was resolved against remain unchanged.
type Slot struct {
	get func() (any, bool)
	set func(v any) (any, error)
}

// Get returns the value currently at the position, with ok reporting
// whether the position holds a defined value.
func (s *Slot) Get() (any, bool) { return s.get() }

// Set stores v at the position and returns the value actually stored.
func (s *Slot) Set(v any) (any, error) { return s.set(v) }

// slotHandle binds a Slot to a container position.
func slotHandle(loc nodeSlot) *Slot {
	return &Slot{
		get: func() (any, bool) {
			v, ok := loc.value()
			if !ok {
				return nil, false
			}
			return valueOrNil(v), true
		},
		set: func(v any) (any, error) {
			if err := loc.store(v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// methodHandle binds a Slot to a final method target: reads call the member
// with no arguments, writes call it with the new value.
func methodHandle(m reflect.Value, name string) *Slot {
	return &Slot{
		get: func() (any, bool) {
			out, err := callGetter(m, name)
			if err != nil {
				return nil, false
			}
			if isAbsentValue(out) {
				return nil, false
			}
			return valueOrNil(out), true
		},
		set: func(v any) (any, error) {
			return callSetter(m, name, v)
		},
	}
}
