package deepdiff

import (
	"encoding/json"
	"testing"
)

func TestHashString(t *testing.T) {
	cases := []struct {
		in     string
		expect int32
	}{
		{"", 0},
		{"a", 97},
		{"abc", 96354},
		// overflow wraps in 32-bit space
		{"aaaaaaa", -1236860927},
		{"aaaaaaaaaaaaaaaaaaaa", 1542361408},
		// non-ascii text hashes by UTF-16 code unit
		{"é", 233},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := hashString(c.in); got != c.expect {
				t.Errorf("hashString(%q): expected %d, got %d", c.in, c.expect, got)
			}
		})
	}
}

func TestOrderIndependentHash(t *testing.T) {
	mustParse := func(s string) interface{} {
		var v interface{}
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatal(err)
		}
		return v
	}

	t.Run("array permutations hash identically", func(t *testing.T) {
		a := mustParse(`[1,2,3]`)
		b := mustParse(`[3,1,2]`)
		if OrderIndependentHash(a) != OrderIndependentHash(b) {
			t.Error("expected permutations to hash the same")
		}
	})

	t.Run("nested permutations hash identically", func(t *testing.T) {
		a := mustParse(`{"x":[{"a":1},{"b":2}]}`)
		b := mustParse(`{"x":[{"b":2},{"a":1}]}`)
		if OrderIndependentHash(a) != OrderIndependentHash(b) {
			t.Error("expected nested permutations to hash the same")
		}
	})

	t.Run("different values hash differently", func(t *testing.T) {
		a := mustParse(`{"a":1,"b":2}`)
		b := mustParse(`{"a":1,"b":3}`)
		if OrderIndependentHash(a) == OrderIndependentHash(b) {
			t.Error("expected different objects to hash differently")
		}
	})

	t.Run("arity survives the array tag", func(t *testing.T) {
		// [0] and [0,0] both sum to the same element total
		a := mustParse(`[0]`)
		b := mustParse(`[0,0]`)
		if OrderIndependentHash(a) == OrderIndependentHash(b) {
			t.Error("expected arrays of different length to hash differently")
		}
	})

	t.Run("empty array and empty object are distinct", func(t *testing.T) {
		a := mustParse(`[]`)
		b := mustParse(`{}`)
		if OrderIndependentHash(a) == OrderIndependentHash(b) {
			t.Error("expected [] and {} to hash differently")
		}
	})

	t.Run("type is part of the tag", func(t *testing.T) {
		if OrderIndependentHash("1") == OrderIndependentHash(float64(1)) {
			t.Error(`expected "1" and 1 to hash differently`)
		}
	})

	t.Run("known scalar hashes", func(t *testing.T) {
		if got := OrderIndependentHash(float64(1)); got != 770582764 {
			t.Errorf("hash of 1: expected 770582764, got %d", got)
		}
		if got := OrderIndependentHash("hello"); got != 1371523379 {
			t.Errorf(`hash of "hello": expected 1371523379, got %d`, got)
		}
	})

	t.Run("null and undefined are distinct", func(t *testing.T) {
		if OrderIndependentHash(nil) == OrderIndependentHash(Undefined) {
			t.Error("expected null and undefined to hash differently")
		}
	})
}
