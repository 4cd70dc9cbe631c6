// Package gen produces example inputs (and paired outputs) for checked
// routines by driving the input generator of the subroutine that consumes
// the overall input and filtering its proposals by the inferred input
// type.
package gen

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/eval"
	"github.com/lucasem/list-routines/pkg/library"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

var log = commonlog.GetLogger("list-routines.gen")

// ErrExhausted means the generator produced no usable inputs within the
// retry budget.
var ErrExhausted = errors.New("input generation exhausted retries")

// Pair is one generated example: an input and the routine's output on it.
type Pair struct {
	Input  types.Value
	Output types.Value
}

// MarshalJSON encodes the pair as a two-element [input, output] array.
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]types.Value{p.Input, p.Output})
}

// Options configures example generation.
type Options struct {
	// Count is the number of examples to produce.
	Count int

	// Retries bounds how many extra proposal rounds run when candidates
	// are rejected by the type filter.
	Retries int
}

// DefaultOptions returns the generation defaults.
func DefaultOptions() Options {
	return Options{Count: 4, Retries: 5}
}

// Examples generates up to opts.Count input/output pairs for a checked
// routine. Candidates come from the first node's input generator, with
// the caller's options composed with that node's static parameters, and
// are filtered by the inferred overall input type. When the retry budget
// is exhausted with nothing accepted, the failing type and parameters are
// reported on the side channel and ErrExhausted is returned.
func Examples(r *routine.Routine, tv check.TypeVector, opts Options, rnd *rng.RNG) ([]Pair, error) {
	if r.Len() == 0 || len(tv) != r.Len()+1 {
		return nil, fmt.Errorf("routine and type vector do not match")
	}
	first := r.Nodes[0]
	if !first.Input().IsDyn() || first.Input().Value != 0 {
		return nil, fmt.Errorf("first node (%s) does not consume the overall input", first.Name)
	}
	d := library.Get(first.Name)
	if d == nil {
		return nil, fmt.Errorf("unknown subroutine %q", first.Name)
	}
	if opts.Count <= 0 {
		opts.Count = DefaultOptions().Count
	}
	if opts.Retries <= 0 {
		opts.Retries = DefaultOptions().Retries
	}

	static := check.StaticParams(first)

	var accepted []types.Value
	for attempt := 0; attempt <= opts.Retries && len(accepted) < opts.Count; attempt++ {
		for _, candidate := range d.GenerateInput(rnd, opts.Count-len(accepted), static) {
			if types.Inhabits(candidate, tv[0]) {
				accepted = append(accepted, candidate)
			}
		}
	}

	if len(accepted) == 0 {
		log.Warningf("no generated input for %s inhabits %s (params %v)", first.Name, tv[0], static)
		return nil, fmt.Errorf("%w: input type %s", ErrExhausted, tv[0])
	}

	pairs := make([]Pair, 0, len(accepted))
	for _, in := range accepted {
		out, err := eval.Evaluate(r, tv, in)
		if err != nil {
			log.Warningf("evaluating generated input %s: %v", in, err)
			continue
		}
		pairs = append(pairs, Pair{Input: in, Output: out})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no generated input evaluated cleanly", ErrExhausted)
	}
	return pairs, nil
}
