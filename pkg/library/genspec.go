package library

import (
	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

// maxProposalTries bounds rejection sampling inside the generator helper.
// Candidates are proposed independently; a candidate that still violates
// a hook after this many tries is emitted anyway and left to the caller's
// type filter.
const maxProposalTries = 20

// GenSpec configures the shared input-generator helper. Each hook has a
// default; descriptors override the ones their declared input type
// constrains (list length, element sign, element range).
type GenSpec struct {
	// LenDefault samples a candidate list length.
	LenDefault func(r *rng.RNG) int

	// LenValid accepts or rejects a sampled length.
	LenValid func(n int) bool

	// ElementDefault samples a candidate element.
	ElementDefault func(r *rng.RNG) int

	// ElementValid accepts or rejects a sampled element.
	ElementValid func(x int) bool
}

// DefaultGenSpec returns the helper defaults: lengths in [0, 10] and
// elements in [-10, 10], all candidates accepted.
func DefaultGenSpec() GenSpec {
	return GenSpec{
		LenDefault:     func(r *rng.RNG) int { return r.IntRange(0, 10) },
		LenValid:       func(n int) bool { return n >= 0 },
		ElementDefault: func(r *rng.RNG) int { return r.IntRange(-10, 10) },
		ElementValid:   func(int) bool { return true },
	}
}

// Lists proposes count candidate list inputs under the spec.
func Lists(r *rng.RNG, count int, spec GenSpec) []types.Value {
	out := make([]types.Value, 0, count)
	for i := 0; i < count; i++ {
		n := sample(r, spec.LenDefault, spec.LenValid)
		xs := make([]int, n)
		for j := range xs {
			xs[j] = sample(r, spec.ElementDefault, spec.ElementValid)
		}
		out = append(out, types.ListValue(xs))
	}
	return out
}

// Ints proposes count candidate integer inputs under the spec's element hooks.
func Ints(r *rng.RNG, count int, spec GenSpec) []types.Value {
	out := make([]types.Value, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, types.IntValue(sample(r, spec.ElementDefault, spec.ElementValid)))
	}
	return out
}

func sample(r *rng.RNG, gen func(*rng.RNG) int, valid func(int) bool) int {
	x := gen(r)
	for try := 0; try < maxProposalTries && !valid(x); try++ {
		x = gen(r)
	}
	return x
}
