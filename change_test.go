package deepdiff

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPathString(t *testing.T) {
	cases := []struct {
		path   Path
		expect string
	}{
		{nil, ""},
		{Path{"a"}, "/a"},
		{Path{"a", 0, "b"}, "/a/0/b"},
		{Path{3}, "/3"},
	}
	for _, c := range cases {
		if got := c.path.String(); got != c.expect {
			t.Errorf("Path%v.String(): expected %q, got %q", []interface{}(c.path), c.expect, got)
		}
	}
}

func TestPathChildCopies(t *testing.T) {
	base := Path{"a"}
	x := base.child("x")
	y := base.child("y")
	if x[1] != "x" || y[1] != "y" {
		t.Errorf("children share a backing array: %v %v", x, y)
	}
}

func TestChangeValid(t *testing.T) {
	cases := []struct {
		description string
		change      *Change
		wantErr     bool
	}{
		{"nil", nil, true},
		{"plain edit", &Change{Kind: ChangeEdited, Path: Path{"a"}}, false},
		{"root new", &Change{Kind: ChangeNew, Rhs: 1}, false},
		{"unknown kind", &Change{Kind: ChangeKind("?")}, true},
		{"array without item", &Change{Kind: ChangeArray}, true},
		{"array negative index", &Change{Kind: ChangeArray, Index: -2, Item: &Change{Kind: ChangeNew}}, true},
		{"array with nested bad item", &Change{Kind: ChangeArray, Item: &Change{Kind: ChangeArray}}, true},
		{"array ok", &Change{Kind: ChangeArray, Index: 1, Item: &Change{Kind: ChangeDeleted, Lhs: 1}}, false},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := c.change.Valid()
			if c.wantErr && !errors.Is(err, ErrMalformedChange) {
				t.Errorf("expected ErrMalformedChange, got %v", err)
			}
			if !c.wantErr && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
		})
	}
}

func TestChangeJSON(t *testing.T) {
	c := &Change{Kind: ChangeArray, Path: Path{"x"}, Index: 2,
		Item: &Change{Kind: ChangeDeleted, Lhs: float64(3)}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	expect := `{"kind":"A","path":["x"],"index":2,"item":{"kind":"D","lhs":3}}`
	if string(data) != expect {
		t.Errorf("expected %s, got %s", expect, string(data))
	}
}
