package deepdiff

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStats(t *testing.T) {
	var lhs, rhs interface{}
	if err := json.Unmarshal([]byte(`{"a":1,"b":2,"l":[1,2,3]}`), &lhs); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`{"a":2,"c":3,"l":[1]}`), &rhs); err != nil {
		t.Fatal(err)
	}
	changes, err := Diff(lhs, rhs)
	if err != nil {
		t.Fatal(err)
	}

	got := changes.Stats()
	expect := &Stats{
		Added:      1, // c
		Deleted:    3, // b and two array slots
		Edited:     1, // a
		ArraySlots: 2,
	}
	if d := cmp.Diff(expect, got); d != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", d)
	}
	if got.Total() != 5 {
		t.Errorf("expected total 5, got %d", got.Total())
	}
}

func TestStatsEmpty(t *testing.T) {
	s := Changes(nil).Stats()
	if s.Total() != 0 {
		t.Errorf("expected empty stats, got %+v", s)
	}
}
