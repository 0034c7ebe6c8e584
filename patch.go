package deepdiff

import (
	"errors"
	"fmt"
	"strconv"
)

// PathMismatchError is returned in strict mode when a change's path does not
// resolve against the target structure
type PathMismatchError struct {
	// Path is the full path that failed to resolve
	Path Path
	// Step is the index of the offending step within Path
	Step int
}

func (e *PathMismatchError) Error() string {
	return fmt.Sprintf("path %q does not resolve at step %d", e.Path.String(), e.Step)
}

// PatchConfig are the configuration parameters for applying and reverting
// changes
type PatchConfig struct {
	// StrictPaths makes apply and revert fail with a PathMismatchError when
	// a path step does not match the structure it traverses, instead of
	// silently coercing containers into place
	StrictPaths bool
}

// PatchOption is a function that adjusts a patch config
type PatchOption func(cfg *PatchConfig)

// OptionStrictPaths enables strict path resolution
func OptionStrictPaths() PatchOption {
	return func(cfg *PatchConfig) {
		cfg.StrictPaths = true
	}
}

// AcceptFunc decides whether ApplyDiff applies a given record
type AcceptFunc func(target, source interface{}, c *Change) bool

// ApplyChange applies one change record to target, mutating it in place.
// target must be a pointer: *interface{}, *map[string]interface{} or
// *[]interface{}; a bare map or slice is accepted as long as the change
// doesn't replace the root itself. source is unused and kept for signature
// compatibility, with one historical accommodation: when c is nil and
// source holds a change record, source is taken as the edit.
//
// Intermediate containers that the path names but the target lacks are
// created on the way down: an integer step creates an array slot, a string
// step creates an object key. With OptionStrictPaths the engine instead
// refuses any step that doesn't match the existing structure.
func ApplyChange(target, source interface{}, c *Change, opts ...PatchOption) error {
	cfg := &PatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	root, done, err := patchRoot(target)
	if err != nil {
		return err
	}
	ch, err := resolveChange(source, c)
	if err != nil {
		return err
	}
	if err := applyChangeAt(root, ch, nil, cfg.StrictPaths); err != nil {
		return err
	}
	return done()
}

// RevertChange undoes one change record against target, mutating it in
// place. Reverting every record of a diff, in the order they were emitted,
// restores the pre-diff structure. source follows the same contract as in
// ApplyChange.
func RevertChange(target, source interface{}, c *Change, opts ...PatchOption) error {
	cfg := &PatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	root, done, err := patchRoot(target)
	if err != nil {
		return err
	}
	ch, err := resolveChange(source, c)
	if err != nil {
		return err
	}
	if err := revertChangeAt(root, ch, nil, cfg.StrictPaths); err != nil {
		return err
	}
	return done()
}

// ApplyDiff diffs target against source and applies every resulting record
// to target in emission order, making target structurally equal to source.
// accept, if non-nil, is consulted per record; records it rejects are
// skipped. Errors don't stop the walk; all are joined into the return.
func ApplyDiff(target, source interface{}, accept AcceptFunc, opts ...PatchOption) error {
	cfg := &PatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	root, done, err := patchRoot(target)
	if err != nil {
		return err
	}
	changes, err := Diff(*root, source)
	if err != nil {
		return err
	}
	var errs []error
	for _, c := range changes {
		if accept != nil && !accept(target, source, c) {
			continue
		}
		if err := applyChangeAt(root, c, nil, cfg.StrictPaths); err != nil {
			errs = append(errs, err)
		}
	}
	if err := done(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// resolveChange performs the historical argument shuffle: a nil change with
// a record in the source position takes the source as the edit
func resolveChange(source interface{}, c *Change) (*Change, error) {
	if c == nil {
		switch x := source.(type) {
		case *Change:
			c = x
		case Change:
			c = &x
		}
	}
	if err := c.Valid(); err != nil {
		return nil, err
	}
	return c, nil
}

// patchRoot normalizes the accepted target forms down to a *interface{}
// the engine can rebuild through. done writes the possibly-replaced root
// back out to typed pointer targets.
func patchRoot(target interface{}) (root *interface{}, done func() error, err error) {
	noop := func() error { return nil }
	switch t := target.(type) {
	case *interface{}:
		return t, noop, nil
	case *map[string]interface{}:
		var node interface{} = *t
		return &node, func() error {
			m, ok := node.(map[string]interface{})
			if !ok {
				return fmt.Errorf("patch replaced the root with %T; pass a *interface{} target to allow that", node)
			}
			*t = m
			return nil
		}, nil
	case *[]interface{}:
		var node interface{} = *t
		return &node, func() error {
			s, ok := node.([]interface{})
			if !ok {
				return fmt.Errorf("patch replaced the root with %T; pass a *interface{} target to allow that", node)
			}
			*t = s
			return nil
		}, nil
	case map[string]interface{}, []interface{}:
		// mutable through the reference, but the root itself can't be
		// swapped without a pointer
		var node interface{} = t
		return &node, func() error {
			if !sameReference(node, t) {
				return fmt.Errorf("change replaces the root; pass a pointer target")
			}
			return nil
		}, nil
	}
	return nil, nil, fmt.Errorf("cannot patch %T; pass a *interface{}, *map[string]interface{} or *[]interface{}", target)
}

// applyChangeAt applies c with its path interpreted relative to prefix
func applyChangeAt(root *interface{}, c *Change, prefix Path, strict bool) error {
	if err := c.Valid(); err != nil {
		return err
	}
	full := joinPath(prefix, c.Path)
	switch c.Kind {
	case ChangeNew, ChangeEdited:
		return setAtPath(root, full, c.Rhs, strict)
	case ChangeDeleted:
		return deleteAtPath(root, full, strict)
	case ChangeArray:
		slot := joinPath(full, Path{c.Index})
		item := c.Item
		if item.Kind != ChangeArray && len(item.Path) == 0 {
			// the record is about the slot itself
			switch item.Kind {
			case ChangeDeleted:
				return spliceAt(root, full, c.Index, strict)
			default:
				return setAtPath(root, slot, item.Rhs, strict)
			}
		}
		return applyChangeAt(root, item, slot, strict)
	}
	return fmt.Errorf("%w: unknown kind %q", ErrMalformedChange, string(c.Kind))
}

// revertChangeAt undoes c with its path interpreted relative to prefix
func revertChangeAt(root *interface{}, c *Change, prefix Path, strict bool) error {
	if err := c.Valid(); err != nil {
		return err
	}
	full := joinPath(prefix, c.Path)
	switch c.Kind {
	case ChangeNew:
		return deleteAtPath(root, full, strict)
	case ChangeDeleted, ChangeEdited:
		return setAtPath(root, full, c.Lhs, strict)
	case ChangeArray:
		slot := joinPath(full, Path{c.Index})
		item := c.Item
		if item.Kind != ChangeArray && len(item.Path) == 0 {
			switch item.Kind {
			case ChangeNew:
				// undoing an appended slot removes it
				return spliceAt(root, full, c.Index, strict)
			default:
				return setAtPath(root, slot, item.Lhs, strict)
			}
		}
		return revertChangeAt(root, item, slot, strict)
	}
	return fmt.Errorf("%w: unknown kind %q", ErrMalformedChange, string(c.Kind))
}

func joinPath(prefix, p Path) Path {
	if len(prefix) == 0 {
		return p
	}
	out := make(Path, 0, len(prefix)+len(p))
	out = append(out, prefix...)
	return append(out, p...)
}

// setAtPath writes v at path, rebuilding the chain of containers on the way
// down. Each step's own type decides what gets created when the structure
// runs out: integer steps make arrays, string steps make objects.
func setAtPath(root *interface{}, path Path, v interface{}, strict bool) error {
	node, err := setAt(*root, path, v, strict, path)
	if err != nil {
		return err
	}
	*root = node
	return nil
}

func setAt(node interface{}, path Path, v interface{}, strict bool, full Path) (interface{}, error) {
	if len(path) == 0 {
		return v, nil
	}
	step := len(full) - len(path)
	switch s := path[0].(type) {
	case int:
		if s < 0 {
			return nil, &PathMismatchError{Path: full, Step: step}
		}
		if m, isMap := node.(map[string]interface{}); isMap {
			if strict {
				return nil, &PathMismatchError{Path: full, Step: step}
			}
			// an integer step against an object writes the stringified key
			// instead of replacing the container
			key := strconv.Itoa(s)
			child, err := setAt(m[key], path[1:], v, strict, full)
			if err != nil {
				return nil, err
			}
			m[key] = child
			return m, nil
		}
		arr, ok := node.([]interface{})
		if !ok {
			if strict {
				return nil, &PathMismatchError{Path: full, Step: step}
			}
			arr = nil
		}
		if s >= len(arr) {
			if strict {
				return nil, &PathMismatchError{Path: full, Step: step}
			}
			arr = growTo(arr, s+1)
		}
		child, err := setAt(arr[s], path[1:], v, strict, full)
		if err != nil {
			return nil, err
		}
		arr[s] = child
		return arr, nil
	case string:
		obj, ok := node.(map[string]interface{})
		if !ok {
			if strict {
				return nil, &PathMismatchError{Path: full, Step: step}
			}
			obj = map[string]interface{}{}
		}
		child, err := setAt(obj[s], path[1:], v, strict, full)
		if err != nil {
			return nil, err
		}
		obj[s] = child
		return obj, nil
	}
	return nil, fmt.Errorf("%w: path step %v is neither a string nor an int", ErrMalformedChange, path[0])
}

// deleteAtPath removes the value at path: map keys are deleted, array slots
// are cleared to nil (slot removal is the splice operation, used only when
// a record says the slot itself is gone). Deleting the root clears it.
func deleteAtPath(root *interface{}, path Path, strict bool) error {
	if len(path) == 0 {
		*root = nil
		return nil
	}
	parent, err := resolve(*root, path[:len(path)-1], strict, path)
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	switch s := last.(type) {
	case string:
		if m, ok := parent.(map[string]interface{}); ok {
			delete(m, s)
			return nil
		}
	case int:
		if arr, ok := parent.([]interface{}); ok {
			if s >= 0 && s < len(arr) {
				arr[s] = nil
			} else if strict {
				return &PathMismatchError{Path: path, Step: len(path) - 1}
			}
			return nil
		}
		if m, ok := parent.(map[string]interface{}); ok && !strict {
			delete(m, strconv.Itoa(s))
			return nil
		}
	}
	if strict {
		return &PathMismatchError{Path: path, Step: len(path) - 1}
	}
	return nil
}

// spliceAt removes slot index from the array at arrPath, shifting the tail
// left
func spliceAt(root *interface{}, arrPath Path, index int, strict bool) error {
	node, err := resolve(*root, arrPath, strict, arrPath)
	if err != nil {
		return err
	}
	arr, ok := node.([]interface{})
	if !ok {
		if strict {
			return &PathMismatchError{Path: arrPath, Step: len(arrPath)}
		}
		return nil
	}
	if index < 0 || index >= len(arr) {
		if strict {
			return &PathMismatchError{Path: arrPath, Step: len(arrPath)}
		}
		return nil
	}
	arr = append(arr[:index], arr[index+1:]...)
	return setAtPath(root, arrPath, arr, strict)
}

// resolve walks path without modifying anything, returning the node it
// lands on. Unresolvable steps are nil in loose mode, an error in strict.
func resolve(node interface{}, path Path, strict bool, full Path) (interface{}, error) {
	for i, step := range path {
		switch s := step.(type) {
		case string:
			m, ok := node.(map[string]interface{})
			if !ok {
				if strict {
					return nil, &PathMismatchError{Path: full, Step: i}
				}
				return nil, nil
			}
			node = m[s]
		case int:
			arr, ok := node.([]interface{})
			if !ok {
				if m, isMap := node.(map[string]interface{}); isMap && !strict {
					node = m[strconv.Itoa(s)]
					continue
				}
				if strict {
					return nil, &PathMismatchError{Path: full, Step: i}
				}
				return nil, nil
			}
			if s < 0 || s >= len(arr) {
				if strict {
					return nil, &PathMismatchError{Path: full, Step: i}
				}
				return nil, nil
			}
			node = arr[s]
		default:
			return nil, fmt.Errorf("%w: path step %v is neither a string nor an int", ErrMalformedChange, step)
		}
	}
	return node, nil
}

func growTo(arr []interface{}, n int) []interface{} {
	if cap(arr) >= n {
		ext := arr[:n]
		// cells past the old length may hold leftovers from an earlier splice
		for i := len(arr); i < n; i++ {
			ext[i] = nil
		}
		return ext
	}
	out := make([]interface{}, n)
	copy(out, arr)
	return out
}
