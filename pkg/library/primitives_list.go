package library

import (
	"fmt"
	"sort"

	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

// Primitives over integer-list inputs.

// lenAtLeastSpec returns a GenSpec proposing lists long enough for a
// length-at-least constraint derived from the static parameter named by
// sym (falling back to min when the parameter is dynamic).
func lenAtLeastSpec(static map[string]int, sym string, min int) GenSpec {
	if k, ok := static[sym]; ok && k > min {
		min = k
	}
	lo := min
	spec := DefaultGenSpec()
	spec.LenDefault = func(r *rng.RNG) int { return r.IntRange(lo, lo+6) }
	spec.LenValid = func(n int) bool { return n >= lo }
	return spec
}

func lists(xss ...[]int) []types.Value {
	out := make([]types.Value, len(xss))
	for i, xs := range xss {
		out[i] = types.ListValue(xs)
	}
	return out
}

func signedParam(r *rng.RNG, limit int) int {
	v := r.IntRange(-limit, limit)
	if v == 0 {
		v = 1
	}
	return v
}

func init() {
	Register(&Descriptor{
		Name:        "add-k",
		Description: "add k to every element",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "same-length"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int"}},
		},
		ExampleParams: []map[string]int{{"k": 3}},
		Examples:      lists([]int{1, 2, 3}, []int{}, []int{-5, 0, 5}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			xs := make([]int, len(in.List))
			for i, x := range in.List {
				xs[i] = x + k
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return signedParam(r, limit)
		},
	})

	Register(&Descriptor{
		Name:        "multiply-k",
		Description: "multiply every element by k",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "same-length", "multiple k"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int"}},
		},
		ExampleParams: []map[string]int{{"k": 3}},
		Examples:      lists([]int{1, 2, 3}, []int{4}, []int{}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			xs := make([]int, len(in.List))
			for i, x := range in.List {
				xs[i] = x * k
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return signedParam(r, limit)
		},
	})

	Register(&Descriptor{
		Name:        "append-k",
		Description: "append k to the end of the list",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "no-smaller"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int"}},
		},
		ExampleParams: []map[string]int{{"k": 9}},
		Examples:      lists([]int{1, 2}, []int{}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			xs := make([]int, 0, len(in.List)+1)
			xs = append(xs, in.List...)
			xs = append(xs, params["k"])
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return signedParam(r, limit)
		},
	})

	Register(&Descriptor{
		Name:        "index-k",
		Description: "the k-th element of the list (1-based)",
		Input:       []string{"int-list", "length-at-least k"},
		Output:      []string{"int", "element"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int", "positive"}},
		},
		ExampleParams: []map[string]int{{"k": 2}},
		Examples:      lists([]int{7, 3, 9}, []int{1, 2, 3, 4, 5}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			if k < 1 || k > len(in.List) {
				return types.Value{}, fmt.Errorf("index-k: index %d out of range for length %d", k, len(in.List))
			}
			return types.IntValue(in.List[k-1]), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "k", 1))
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return r.IntRange(1, minInt(limit, 5))
		},
	})

	Register(&Descriptor{
		Name:        "head",
		Description: "the first element of the list",
		Input:       []string{"int-list", "length-at-least 1"},
		Output:      []string{"int", "element"},
		Examples:    lists([]int{4, 1, 2}, []int{-3}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			if len(in.List) == 0 {
				return types.Value{}, fmt.Errorf("head: empty list")
			}
			return types.IntValue(in.List[0]), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "", 1))
		},
	})

	Register(&Descriptor{
		Name:        "last",
		Description: "the last element of the list",
		Input:       []string{"int-list", "length-at-least 1"},
		Output:      []string{"int", "element"},
		Examples:    lists([]int{4, 1, 2}, []int{-3}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			if len(in.List) == 0 {
				return types.Value{}, fmt.Errorf("last: empty list")
			}
			return types.IntValue(in.List[len(in.List)-1]), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "", 1))
		},
	})

	Register(&Descriptor{
		Name:        "tail",
		Description: "the list without its first element",
		Input:       []string{"int-list", "length-at-least 1"},
		Output:      []string{"int-list"},
		Examples:    lists([]int{4, 1, 2}, []int{-3}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			if len(in.List) == 0 {
				return types.Value{}, fmt.Errorf("tail: empty list")
			}
			xs := make([]int, len(in.List)-1)
			copy(xs, in.List[1:])
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "", 1))
		},
	})

	Register(&Descriptor{
		Name:        "max",
		Description: "the largest element of the list",
		Input:       []string{"int-list", "length-at-least 1"},
		Output:      []string{"int", "element"},
		Examples:    lists([]int{4, 9, 2}, []int{-3, -7}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			if len(in.List) == 0 {
				return types.Value{}, fmt.Errorf("max: empty list")
			}
			best := in.List[0]
			for _, x := range in.List[1:] {
				if x > best {
					best = x
				}
			}
			return types.IntValue(best), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "", 1))
		},
	})

	Register(&Descriptor{
		Name:        "min",
		Description: "the smallest element of the list",
		Input:       []string{"int-list", "length-at-least 1"},
		Output:      []string{"int", "element"},
		Examples:    lists([]int{4, 9, 2}, []int{-3, -7}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			if len(in.List) == 0 {
				return types.Value{}, fmt.Errorf("min: empty list")
			}
			best := in.List[0]
			for _, x := range in.List[1:] {
				if x < best {
					best = x
				}
			}
			return types.IntValue(best), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "", 1))
		},
	})

	Register(&Descriptor{
		Name:        "length",
		Description: "the number of elements in the list",
		Input:       []string{"int-list"},
		Output:      []string{"int", "non-negative"},
		Examples:    lists([]int{}, []int{1, 2, 3}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			return types.IntValue(len(in.List)), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "sum",
		Description: "the sum of the elements",
		Input:       []string{"int-list"},
		Output:      []string{"int"},
		Examples:    lists([]int{}, []int{1, 2, 3}, []int{-4, 4}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			total := 0
			for _, x := range in.List {
				total += x
			}
			return types.IntValue(total), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "product",
		Description: "the product of the elements (1 for the empty list)",
		Input:       []string{"int-list", "between -9 9"},
		Output:      []string{"int"},
		Examples:    lists([]int{2, 3, 4}, []int{}, []int{5, -1}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			total := 1
			for _, x := range in.List {
				total *= x
			}
			return types.IntValue(total), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			spec := DefaultGenSpec()
			spec.LenDefault = func(r *rng.RNG) int { return r.IntRange(0, 6) }
			spec.ElementDefault = func(r *rng.RNG) int { return r.IntRange(-9, 9) }
			spec.ElementValid = func(x int) bool { return x >= -9 && x <= 9 }
			return Lists(r, count, spec)
		},
	})

	Register(&Descriptor{
		Name:        "reverse",
		Description: "the list in reverse order",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "same-length"},
		Examples:    lists([]int{1, 2, 3}, []int{}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			xs := make([]int, len(in.List))
			for i, x := range in.List {
				xs[len(in.List)-1-i] = x
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "sort",
		Description: "the list sorted nondecreasing",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "same-length", "sorted"},
		Examples:    lists([]int{3, 1, 2}, []int{}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			xs := make([]int, len(in.List))
			copy(xs, in.List)
			sort.Ints(xs)
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "filter-even",
		Description: "only the even elements, in order",
		Input:       []string{"int-list"},
		Output:      []string{"int-list", "even"},
		Examples:    lists([]int{1, 2, 3, 4}, []int{}),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			xs := make([]int, 0, len(in.List))
			for _, x := range in.List {
				if x%2 == 0 {
					xs = append(xs, x)
				}
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Lists(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "take-k",
		Description: "the first k elements",
		Input:       []string{"int-list", "length-at-least k"},
		Output:      []string{"int-list", "length-exact k"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int", "non-negative"}},
		},
		ExampleParams: []map[string]int{{"k": 2}},
		Examples:      lists([]int{1, 2, 3, 4}, []int{5, 6}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			if k < 0 || k > len(in.List) {
				return types.Value{}, fmt.Errorf("take-k: count %d out of range for length %d", k, len(in.List))
			}
			xs := make([]int, k)
			copy(xs, in.List[:k])
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "k", 0))
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return r.IntRange(0, minInt(limit, 5))
		},
	})

	Register(&Descriptor{
		Name:        "drop-k",
		Description: "the list without its first k elements",
		Input:       []string{"int-list", "length-at-least k"},
		Output:      []string{"int-list"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int", "non-negative"}},
		},
		ExampleParams: []map[string]int{{"k": 2}},
		Examples:      lists([]int{1, 2, 3, 4}, []int{5, 6}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			if k < 0 || k > len(in.List) {
				return types.Value{}, fmt.Errorf("drop-k: count %d out of range for length %d", k, len(in.List))
			}
			xs := make([]int, len(in.List)-k)
			copy(xs, in.List[k:])
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "k", 0))
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return r.IntRange(0, minInt(limit, 5))
		},
	})

	Register(&Descriptor{
		Name:        "slice-k-n",
		Description: "elements k through n (1-based, empty when k > n)",
		Input:       []string{"int-list", "length-at-least n"},
		Output:      []string{"int-list"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int", "positive"}},
			{Name: "n", Labels: []string{"int", "positive"}},
		},
		ExampleParams: []map[string]int{{"k": 2, "n": 3}},
		Examples:      lists([]int{1, 2, 3, 4, 5}),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k, n := params["k"], params["n"]
			if k < 1 || n > len(in.List) {
				return types.Value{}, fmt.Errorf("slice-k-n: span %d..%d out of range for length %d", k, n, len(in.List))
			}
			if k > n {
				return types.ListValue(nil), nil
			}
			xs := make([]int, n-k+1)
			copy(xs, in.List[k-1:n])
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, static map[string]int) []types.Value {
			return Lists(r, count, lenAtLeastSpec(static, "n", 1))
		},
		GenerateParam: func(r *rng.RNG, slot int, limit int) int {
			if slot == 0 {
				return r.IntRange(1, minInt(limit, 4))
			}
			return r.IntRange(1, minInt(limit, 6))
		},
	})
}
