package library

import (
	"fmt"

	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

// Primitives over integer inputs.

func init() {
	Register(&Descriptor{
		Name:        "abs",
		Description: "absolute value of the input",
		Input:       []string{"int"},
		Output:      []string{"int", "non-negative"},
		Examples:    ints(-4, 0, 7),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			x := in.Int
			if x < 0 {
				x = -x
			}
			return types.IntValue(x), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Ints(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "double",
		Description: "twice the input",
		Input:       []string{"int"},
		Output:      []string{"int", "even", "multiple 2"},
		Examples:    ints(-3, 0, 5),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			return types.IntValue(2 * in.Int), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Ints(r, count, DefaultGenSpec())
		},
	})

	Register(&Descriptor{
		Name:        "fibonacci",
		Description: "the input-th Fibonacci number (1-based)",
		Input:       []string{"int", "positive", "between 1 25"},
		Output:      []string{"int", "positive"},
		Examples:    ints(1, 2, 6, 10),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			n := in.Int
			if n < 1 {
				return types.Value{}, fmt.Errorf("fibonacci: index %d out of domain", n)
			}
			a, b := 1, 1
			for i := 2; i < n; i++ {
				a, b = b, a+b
			}
			if n == 1 {
				return types.IntValue(1), nil
			}
			return types.IntValue(b), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			spec := DefaultGenSpec()
			spec.ElementDefault = func(r *rng.RNG) int { return r.IntRange(1, 25) }
			spec.ElementValid = func(x int) bool { return x >= 1 && x <= 25 }
			return Ints(r, count, spec)
		},
	})

	Register(&Descriptor{
		Name:        "count-up-to",
		Description: "the list 1, 2, ..., input",
		Input:       []string{"int", "positive", "between 1 50"},
		Output:      []string{"int-list", "positive", "sorted", "length-at-least 1"},
		Examples:    ints(1, 4, 9),
		Evaluate: func(in types.Value, _ map[string]int) (types.Value, error) {
			n := in.Int
			if n < 1 {
				return types.Value{}, fmt.Errorf("count-up-to: bound %d out of domain", n)
			}
			xs := make([]int, n)
			for i := range xs {
				xs[i] = i + 1
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			spec := DefaultGenSpec()
			spec.ElementDefault = func(r *rng.RNG) int { return r.IntRange(1, 12) }
			spec.ElementValid = func(x int) bool { return x >= 1 && x <= 50 }
			return Ints(r, count, spec)
		},
	})

	Register(&Descriptor{
		Name:        "replicate-k",
		Description: "a list holding the input repeated k times",
		Input:       []string{"int"},
		Output:      []string{"int-list", "length-exact k"},
		Params: []ParamSchema{
			{Name: "k", Labels: []string{"int", "between 0 10"}},
		},
		ExampleParams: []map[string]int{{"k": 3}},
		Examples:      ints(-2, 0, 6),
		Evaluate: func(in types.Value, params map[string]int) (types.Value, error) {
			k := params["k"]
			if k < 0 {
				return types.Value{}, fmt.Errorf("replicate-k: count %d out of domain", k)
			}
			xs := make([]int, k)
			for i := range xs {
				xs[i] = in.Int
			}
			return types.ListValue(xs), nil
		},
		GenerateInput: func(r *rng.RNG, count int, _ map[string]int) []types.Value {
			return Ints(r, count, DefaultGenSpec())
		},
		GenerateParam: func(r *rng.RNG, _ int, limit int) int {
			return r.IntRange(0, minInt(limit, 10))
		},
	})
}

// ints builds a slice of integer example values.
func ints(xs ...int) []types.Value {
	out := make([]types.Value, len(xs))
	for i, x := range xs {
		out[i] = types.IntValue(x)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
