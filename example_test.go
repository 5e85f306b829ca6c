package deepaccess

import "fmt"

func ExampleSet() {
	root := map[string]any{}

	if _, err := Set(root, "foo", "bar", 42); err != nil {
		fmt.Println(err)
		return
	}

	v, _, _ := Get(root, "foo", "bar")
	fmt.Println(v)

	ok, _ := Exists(root, "foo", "baz")
	fmt.Println(ok)
	// Output:
	// 42
	// false
}

func ExampleIndex() {
	root := map[string]any{}

	// Vivify "a" as a sequence; positions 0 and 1 stay absent.
	if _, err := Set(root, "a", Index(2), "x"); err != nil {
		fmt.Println(err)
		return
	}

	seq := root["a"].([]any)
	fmt.Println(len(seq), seq[2])

	ok, _ := Exists(root, "a", 0)
	fmt.Println(ok)
	// Output:
	// 3 x
	// false
}

func ExampleLvalueMethod() {
	acct := &account{name: "ada"}

	if _, err := Set(acct, LvalueMethod("Name"), "grace"); err != nil {
		fmt.Println(err)
		return
	}

	v, _, _ := Get(acct, LvalueMethod("Name"))
	fmt.Println(v)
	// Output: grace
}

func ExampleGetSlot() {
	root := map[string]any{}

	slot, err := GetSlot(root, "cfg", "retries")
	if err != nil {
		fmt.Println(err)
		return
	}
	slot.Set(5)

	v, ok := slot.Get()
	fmt.Println(v, ok)
	// Output: 5 true
}

func ExampleGetJSON() {
	doc := []byte(`{"users": [{"name": "ada"}, {"name": "brin"}]}`)

	v, _, _ := GetJSON(doc, "users.1.name")
	fmt.Println(v)
	// Output: brin
}
