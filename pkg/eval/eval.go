// Package eval executes well-typed routines on concrete inputs, threading
// intermediate values through the routine's wires.
package eval

import (
	"errors"
	"fmt"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/library"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/types"
)

// ErrInput means the concrete input does not inhabit the routine's
// inferred overall input type.
var ErrInput = errors.New("input outside inferred input type")

// paramNames is the fixed binding convention for parameter wires: the
// first parameter wire binds k, the second binds n. These are the only
// names primitive subroutines accept.
var paramNames = [2]string{"k", "n"}

// Evaluate runs a checked routine on input. The type vector must come
// from a successful check of the same routine; the input is verified
// against tv[0] before execution.
//
// Dynamic parameter wires deliver integer node outputs; a list value
// arriving at a parameter slot is an inference bug and surfaces as an
// error rather than a panic.
func Evaluate(r *routine.Routine, tv check.TypeVector, input types.Value) (types.Value, error) {
	if !check.CheckInput(tv, input) {
		return types.Value{}, fmt.Errorf("%w: %s does not inhabit %s", ErrInput, input, tv[0])
	}

	values := make([]types.Value, r.Len()+1)
	values[0] = input

	for i, n := range r.Nodes {
		d := library.Get(n.Name)
		if d == nil {
			return types.Value{}, fmt.Errorf("node %d: unknown subroutine %q", i+1, n.Name)
		}

		in := resolve(n.Input(), values)
		params := make(map[string]int, len(n.Params()))
		for p, w := range n.Params() {
			if p >= len(paramNames) {
				return types.Value{}, fmt.Errorf("node %d (%s): too many parameter wires", i+1, n.Name)
			}
			v := resolve(w, values)
			if v.Kind != types.KindInt {
				return types.Value{}, fmt.Errorf("node %d (%s): parameter %d is not an integer", i+1, n.Name, p)
			}
			params[paramNames[p]] = v.Int
		}

		out, err := d.Evaluate(in, params)
		if err != nil {
			return types.Value{}, fmt.Errorf("node %d (%s): %w", i+1, n.Name, err)
		}
		values[i+1] = out
	}

	return values[r.Len()], nil
}

// resolve materializes a wire: a static wire yields its constant, a
// dynamic wire yields the referenced value.
func resolve(w routine.Wire, values []types.Value) types.Value {
	if w.IsDyn() {
		return values[w.Value]
	}
	return types.IntValue(w.Value)
}
