package deepdiff

import (
	"math"
	"reflect"
	"sort"
	"time"
)

// DiffConfig are the configuration parameters for calculating diffs
type DiffConfig struct {
	// OrderIndependent treats arrays as unordered multisets: both inputs
	// are sorted in place by OrderIndependentHash before comparison, so a
	// permutation of the same elements yields no changes. This mutates the
	// arrays being compared.
	OrderIndependent bool
	// Prefilter is consulted with the parent path and the key about to be
	// descended into; returning true skips that subtree entirely
	Prefilter func(path Path, key interface{}) bool
	// Normalize may substitute the pair of values compared at path/key.
	// Returning ok=false leaves the originals in place.
	Normalize func(path Path, key, lhs, rhs interface{}) (l, r interface{}, ok bool)

	observer func(*Change)
}

// DiffOption is a function that adjusts a config, zero or more DiffOptions
// can be passed to the Diff functions
type DiffOption func(cfg *DiffConfig)

// OptionOrderIndependent enables order-independent array comparison
func OptionOrderIndependent() DiffOption {
	return func(cfg *DiffConfig) {
		cfg.OrderIndependent = true
	}
}

// OptionPrefilter sets a predicate that can prune subtrees before they are
// compared
func OptionPrefilter(fn func(path Path, key interface{}) bool) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Prefilter = fn
	}
}

// OptionNormalize sets a hook that can substitute the values compared at a
// location, e.g. to compare derived projections instead of raw fields
func OptionNormalize(fn func(path Path, key, lhs, rhs interface{}) (interface{}, interface{}, bool)) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Normalize = fn
	}
}

// Diff computes the ordered sequence of changes that transform lhs into
// rhs. A nil sequence means the two values compare equal.
//
// Diff currently never returns an error; the return is reserved
func Diff(lhs, rhs interface{}, opts ...DiffOption) (Changes, error) {
	return ObservableDiff(lhs, rhs, nil, opts...)
}

// OrderIndependentDiff is Diff with order-independent array comparison
// enabled. Both inputs have their arrays sorted in place as a side effect.
func OrderIndependentDiff(lhs, rhs interface{}, opts ...DiffOption) (Changes, error) {
	return ObservableDiff(lhs, rhs, nil, append(opts, OptionOrderIndependent())...)
}

// ObservableDiff is Diff with a per-record callback: observer is invoked
// synchronously, in emission order, as each record is constructed
func ObservableDiff(lhs, rhs interface{}, observer func(*Change), opts ...DiffOption) (Changes, error) {
	cfg := &DiffConfig{observer: observer}
	for _, opt := range opts {
		opt(cfg)
	}
	d := &differ{cfg: cfg}
	d.diff(lhs, rhs, nil, nil, false)
	return d.changes, nil
}

// visit is one entry of the visitation stack: the pair of containers the
// walk is currently inside of. The stack exists to detect cycles and to
// answer "does the immediate parent actually have this key".
type visit struct {
	lhs, rhs interface{}
}

// arraySlot marks that the walk is inside element index of the array at
// path, so records landing exactly on that slot get wrapped
type arraySlot struct {
	path  Path
	index int
}

// differ holds the transient state of one top-level comparison call
type differ struct {
	cfg     *DiffConfig
	changes Changes
	stack   []visit
	slots   []arraySlot
}

// diff compares one node pair. path is the path of the parent; key is the
// step that leads here (haveKey is false only at the comparison root).
func (d *differ) diff(lhs, rhs interface{}, path Path, key interface{}, haveKey bool) {
	currentPath := path
	if haveKey {
		if d.cfg.Prefilter != nil && d.cfg.Prefilter(path, key) {
			return
		}
		if d.cfg.Normalize != nil {
			if l, r, ok := d.cfg.Normalize(path, key, lhs, rhs); ok {
				lhs, rhs = l, r
			}
		}
		currentPath = path.child(key)
	}

	lk, rk := KindOf(lhs), KindOf(rhs)

	// regexp-kinded values reduce to their literal string form and compare
	// as strings from here on
	if lk == KindRegexp && rk == KindRegexp {
		lhs, rhs = regexpString(lhs), regexpString(rhs)
		lk, rk = KindString, KindString
	}

	// a side is "defined" if it holds a value, or if the immediate parent
	// has the key at all: a property stored as Undefined is present, a
	// missing property is not
	ldefined := lk != KindUndefined ||
		(haveKey && len(d.stack) > 0 && hasOwn(d.stack[len(d.stack)-1].lhs, key))
	rdefined := rk != KindUndefined ||
		(haveKey && len(d.stack) > 0 && hasOwn(d.stack[len(d.stack)-1].rhs, key))

	switch {
	case !ldefined && rdefined:
		d.emit(&Change{Kind: ChangeNew, Path: currentPath, Rhs: rhs})
	case ldefined && !rdefined:
		d.emit(&Change{Kind: ChangeDeleted, Path: currentPath, Lhs: lhs})
	case lk != rk:
		d.emit(&Change{Kind: ChangeEdited, Path: currentPath, Lhs: lhs, Rhs: rhs})
	case lk == KindDate:
		if !asTime(lhs).Equal(asTime(rhs)) {
			d.emit(&Change{Kind: ChangeEdited, Path: currentPath, Lhs: lhs, Rhs: rhs})
		}
	case lk == KindArray || lk == KindObject:
		if d.visited(lhs) {
			// cycle: stop descending either way, report only if the two
			// sides are different structures
			if !sameReference(lhs, rhs) {
				d.emit(&Change{Kind: ChangeEdited, Path: currentPath, Lhs: lhs, Rhs: rhs})
			}
			return
		}
		d.stack = append(d.stack, visit{lhs, rhs})
		if lk == KindArray {
			d.diffArray(lhs, rhs, currentPath)
		} else {
			d.diffObject(lhs, rhs, currentPath)
		}
		d.stack = d.stack[:len(d.stack)-1]
	default:
		if !scalarEqual(lk, lhs, rhs) {
			d.emit(&Change{Kind: ChangeEdited, Path: currentPath, Lhs: lhs, Rhs: rhs})
		}
	}
}

// diffArray walks two arrays right to left: extra rhs tail slots first,
// then extra lhs tail slots, then the shared index range in descending
// order. Tail slots are numbered from each side's own high end.
func (d *differ) diffArray(lhs, rhs interface{}, path Path) {
	if d.cfg.OrderIndependent {
		sortByHash(lhs)
		sortByHash(rhs)
	}
	lv, rv := reflect.ValueOf(lhs), reflect.ValueOf(rhs)
	i, j := rv.Len()-1, lv.Len()-1
	for i > j {
		d.emit(&Change{Kind: ChangeArray, Path: path, Index: i,
			Item: &Change{Kind: ChangeNew, Rhs: rv.Index(i).Interface()}})
		i--
	}
	for j > i {
		d.emit(&Change{Kind: ChangeArray, Path: path, Index: j,
			Item: &Change{Kind: ChangeDeleted, Lhs: lv.Index(j).Interface()}})
		j--
	}
	for ; i >= 0; i-- {
		d.slots = append(d.slots, arraySlot{path: path, index: i})
		d.diff(lv.Index(i).Interface(), rv.Index(i).Interface(), path, i, true)
		d.slots = d.slots[:len(d.slots)-1]
	}
}

// diffObject walks lhs keys first, matching rhs keys by name, then any rhs
// keys lhs lacked. Map keys are iterated in sorted order so diffs are
// deterministic; struct fields keep declaration order.
func (d *differ) diffObject(lhs, rhs interface{}, path Path) {
	lkeys, rkeys := objectKeys(lhs), objectKeys(rhs)
	if lkeys == nil && rkeys == nil {
		// not enumerable (e.g. a map with non-string keys): compare wholesale
		if !reflect.DeepEqual(lhs, rhs) {
			d.emit(&Change{Kind: ChangeEdited, Path: path, Lhs: lhs, Rhs: rhs})
		}
		return
	}
	consumed := make(map[string]bool, len(lkeys))
	for _, k := range lkeys {
		lval, _ := objectValue(lhs, k)
		if rval, ok := objectValue(rhs, k); ok {
			consumed[k] = true
			d.diff(lval, rval, path, k, true)
		} else {
			d.diff(lval, Undefined, path, k, true)
		}
	}
	for _, k := range rkeys {
		if consumed[k] {
			continue
		}
		rval, _ := objectValue(rhs, k)
		d.diff(Undefined, rval, path, k, true)
	}
}

// emit appends a finished record and notifies the observer. A record
// located exactly on an enclosing array slot is first wrapped as an
// array-slot record, nesting through every enclosing array element.
func (d *differ) emit(c *Change) {
	for i := len(d.slots) - 1; i >= 0; i-- {
		w := d.slots[i]
		if len(c.Path) != len(w.path)+1 {
			break
		}
		item := *c
		item.Path = nil
		c = &Change{Kind: ChangeArray, Path: w.path, Index: w.index, Item: &item}
	}
	d.changes = append(d.changes, c)
	if d.cfg.observer != nil {
		d.cfg.observer(c)
	}
}

// visited reports whether lhs is already an ancestor in the current walk
func (d *differ) visited(lhs interface{}) bool {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if sameReference(d.stack[i].lhs, lhs) {
			return true
		}
	}
	return false
}

// sameReference reports reference identity for container values. Value
// types are never reference-identical.
func sameReference(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Func, reflect.Chan:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Pointer() == bv.Pointer() && av.Len() == bv.Len()
	}
	return false
}

// scalarEqual compares two values already known to share kind k
func scalarEqual(k Kind, lhs, rhs interface{}) bool {
	switch k {
	case KindUndefined, KindNull:
		return true
	case KindNumber:
		lf, rf := toFloat(lhs), toFloat(rhs)
		if math.IsNaN(lf) && math.IsNaN(rf) {
			// NaN compares equal to NaN
			return true
		}
		return lf == rf
	case KindString:
		return reflect.ValueOf(lhs).String() == reflect.ValueOf(rhs).String()
	case KindBool:
		return reflect.ValueOf(lhs).Bool() == reflect.ValueOf(rhs).Bool()
	case KindFunc:
		return sameReference(lhs, rhs)
	}
	return reflect.DeepEqual(lhs, rhs)
}

// toFloat widens any numeric value to float64. All numbers compare in
// float64 space, mirroring a single numeric type.
func toFloat(v interface{}) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}

func asTime(v interface{}) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case *time.Time:
		if x != nil {
			return *x
		}
	}
	return time.Time{}
}

// objectKeys enumerates the own keys of an object-kinded value: sorted key
// names for maps with string keys, exported field names in declaration
// order for structs. A nil return means the value is not enumerable.
func objectKeys(v interface{}) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return keys
	case reflect.Struct:
		t := rv.Type()
		keys := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				keys = append(keys, f.Name)
			}
		}
		return keys
	}
	return nil
}

// objectValue fetches key from an object-kinded value, reporting whether
// the key is present at all
func objectValue(v interface{}, key string) (interface{}, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(key)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}

// hasOwn is the parent presence check: does container actually carry key
func hasOwn(container, key interface{}) bool {
	switch k := key.(type) {
	case string:
		_, ok := objectValue(container, k)
		return ok
	case int:
		rv := reflect.ValueOf(container)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return k >= 0 && k < rv.Len()
		}
	}
	return false
}

// sortByHash orders a slice in place by ascending element hash. No-op for
// anything that isn't a mutable slice.
func sortByHash(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return
	}
	sort.SliceStable(v, func(a, b int) bool {
		return OrderIndependentHash(rv.Index(a).Interface()) < OrderIndependentHash(rv.Index(b).Interface())
	})
}

// conflictFlag is the ambient ownership flag of the historical global
// handle idiom. Nothing in this package sets it.
var conflictFlag interface{}

// IsConflict reports whether the package entry point has been claimed by
// another owner. Retained for compatibility; always false in practice.
func IsConflict() bool { return conflictFlag != nil }
