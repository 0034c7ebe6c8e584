package deepdiff

import (
	"encoding/json"
	"fmt"
)

func Example() {
	// start with two slightly different json documents
	aJSON := []byte(`{
		"a": 1,
		"b": 2,
		"tags": ["x", "y"]
	}`)

	bJSON := []byte(`{
		"a": 1,
		"b": 3,
		"tags": ["x", "y", "z"]
	}`)

	// unmarshal the data into generic interfaces
	var a, b interface{}
	if err := json.Unmarshal(aJSON, &a); err != nil {
		panic(err)
	}
	if err := json.Unmarshal(bJSON, &b); err != nil {
		panic(err)
	}

	// Diff produces a sequence of change records that transform a into b
	changes, err := Diff(a, b)
	if err != nil {
		panic(err)
	}

	pretty, err := FormatPrettyString(changes, false)
	if err != nil {
		panic(err)
	}
	fmt.Print(pretty)

	// ApplyDiff edits a copy of the left side into the right side
	var patched interface{}
	if err := json.Unmarshal(aJSON, &patched); err != nil {
		panic(err)
	}
	if err := ApplyDiff(&patched, b, nil); err != nil {
		panic(err)
	}
	after, _ := json.Marshal(patched)
	fmt.Println(string(after))

	// Output:
	// ~ /b: 2 => 3
	// @ /tags[2]: + "z"
	// {"a":1,"b":3,"tags":["x","y","z"]}
}

func ExampleOrderIndependentHash() {
	var a, b interface{}
	json.Unmarshal([]byte(`[1, 2, 3]`), &a)
	json.Unmarshal([]byte(`[3, 1, 2]`), &b)

	fmt.Println(OrderIndependentHash(a) == OrderIndependentHash(b))
	// Output:
	// true
}
