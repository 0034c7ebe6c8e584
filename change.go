package deepdiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ChangeKind tags the variant of a Change record
type ChangeKind string

const (
	// ChangeNew records that a path now resolves to a value where it
	// previously resolved to nothing; only Rhs is set
	ChangeNew = ChangeKind("N")
	// ChangeDeleted records that a path previously resolved to a value that
	// no longer exists; only Lhs is set
	ChangeDeleted = ChangeKind("D")
	// ChangeEdited records that a path resolves to different values on each
	// side; Lhs and Rhs are both set
	ChangeEdited = ChangeKind("E")
	// ChangeArray records a mutation of one array slot: Path names the
	// array, Index the slot, and Item nests the record describing what
	// happened there, which may itself be another ChangeArray
	ChangeArray = ChangeKind("A")
)

// ErrMalformedChange is returned when a change record is missing a field
// its kind requires
var ErrMalformedChange = errors.New("malformed change")

// Path is the ordered list of property-name and array-index steps from the
// comparison root to a changed location. A nil Path means the change is at
// the root itself; a non-nil Path is never empty.
type Path []interface{}

// String renders the path in slash-separated form, "/a/0/b". The root path
// renders as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for _, step := range p {
		b.WriteByte('/')
		switch s := step.(type) {
		case string:
			b.WriteString(s)
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			fmt.Fprintf(&b, "%v", s)
		}
	}
	return b.String()
}

// child returns a copy of p extended by one step. Records hold onto their
// paths indefinitely, so sharing backing arrays between siblings is not an
// option.
func (p Path) child(step interface{}) Path {
	cp := make(Path, len(p)+1)
	copy(cp, p)
	cp[len(p)] = step
	return cp
}

// Change is one edit record: the unit of difference between two structures.
// Records are immutable once produced; the apply/revert engine reads them
// but never modifies them.
type Change struct {
	Kind ChangeKind  `json:"kind"`
	Path Path        `json:"path,omitempty"`
	Lhs  interface{} `json:"lhs,omitempty"`
	Rhs  interface{} `json:"rhs,omitempty"`

	// Index and Item are set only for ChangeArray records
	Index int     `json:"index,omitempty"`
	Item  *Change `json:"item,omitempty"`
}

// MarshalJSON emits index and item only on array-slot records, so a record
// about slot zero doesn't lose its index to omitempty
func (c *Change) MarshalJSON() ([]byte, error) {
	type plain struct {
		Kind ChangeKind  `json:"kind"`
		Path Path        `json:"path,omitempty"`
		Lhs  interface{} `json:"lhs,omitempty"`
		Rhs  interface{} `json:"rhs,omitempty"`
	}
	p := plain{c.Kind, c.Path, c.Lhs, c.Rhs}
	if c.Kind != ChangeArray {
		return json.Marshal(p)
	}
	return json.Marshal(struct {
		plain
		Index int     `json:"index"`
		Item  *Change `json:"item"`
	}{p, c.Index, c.Item})
}

// Valid reports whether the record is structurally sound for its kind
func (c *Change) Valid() error {
	if c == nil {
		return fmt.Errorf("%w: nil record", ErrMalformedChange)
	}
	switch c.Kind {
	case ChangeNew, ChangeDeleted, ChangeEdited:
		return nil
	case ChangeArray:
		if c.Item == nil {
			return fmt.Errorf("%w: array change at %q has no item", ErrMalformedChange, c.Path.String())
		}
		if c.Index < 0 {
			return fmt.Errorf("%w: array change at %q has negative index %d", ErrMalformedChange, c.Path.String(), c.Index)
		}
		return c.Item.Valid()
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedChange, string(c.Kind))
	}
}

// Changes is an ordered edit sequence as emitted by the diff engine
type Changes []*Change
