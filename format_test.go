package deepdiff

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestFormatPretty(t *testing.T) {
	cases := []struct {
		description string
		src, dst    string
		expect      string
	}{
		{
			"object changes",
			`{"a":1,"b":2}`,
			`{"a":1,"b":3,"c":4}`,
			"~ /b: 2 => 3\n+ /c: 4\n",
		},
		{
			"deletion",
			`{"a":1,"b":2}`,
			`{"a":1}`,
			"- /b: 2\n",
		},
		{
			"array slots",
			`{"x":[1,2,3]}`,
			`{"x":[1,2]}`,
			"@ /x[2]: - 3\n",
		},
		{
			"root edit",
			`1`,
			`"one"`,
			"~ /: 1 => \"one\"\n",
		},
		{
			"nested array slots",
			`[[1,2],[3]]`,
			`[[1,2],[3,4]]`,
			"@ [1][1]: + 4\n",
		},
		{
			"slot edit",
			`[1,2]`,
			`[1,9]`,
			"@ [1]: ~ 2 => 9\n",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			var lhs, rhs interface{}
			if err := json.Unmarshal([]byte(c.src), &lhs); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(c.dst), &rhs); err != nil {
				t.Fatal(err)
			}
			changes, err := Diff(lhs, rhs)
			if err != nil {
				t.Fatal(err)
			}
			got, err := FormatPrettyString(changes, false)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.expect {
				t.Errorf("expected:\n%sgot:\n%s", c.expect, got)
			}
		})
	}
}

func TestFormatPrettyStats(t *testing.T) {
	var lhs, rhs interface{}
	if err := json.Unmarshal([]byte(`{"a":1,"b":2,"l":[1,2]}`), &lhs); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`{"a":2,"c":3,"l":[1]}`), &rhs); err != nil {
		t.Fatal(err)
	}
	changes, err := Diff(lhs, rhs)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := FormatPrettyStats(buf, changes.Stats(), false); err != nil {
		t.Fatal(err)
	}
	expect := "+1 -2 ~1 @1\n"
	if buf.String() != expect {
		t.Errorf("expected %q, got %q", expect, buf.String())
	}
}
