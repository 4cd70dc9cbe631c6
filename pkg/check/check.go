// Package check validates routines against the subroutine library and
// infers per-node types. The checker runs four stages in order, stopping
// at the first failure: known names, connectedness, static-value typing,
// and bidirectional type inference.
package check

import (
	"errors"
	"fmt"

	"github.com/lucasem/list-routines/pkg/library"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/types"
)

// Failure kinds, one per checker stage. Callers distinguish them with
// errors.Is; the dispatcher maps all of them to validate:false.
var (
	// ErrUnknownSubroutine means a node names no registered subroutine,
	// or carries a wire count that differs from the subroutine's slots.
	ErrUnknownSubroutine = errors.New("unknown subroutine")

	// ErrDisconnected means some node output (or the overall input) is
	// never consumed by a later wire.
	ErrDisconnected = errors.New("disconnected node")

	// ErrStaticType means a static wire's value does not inhabit the
	// declared type of its slot.
	ErrStaticType = errors.New("static value outside declared type")

	// ErrInference means type inference reached a contradiction, or left
	// the overall input unconstrained.
	ErrInference = errors.New("type inference failed")
)

// TypeVector is the inferred per-node type assignment for a routine of m
// nodes: index 0 is the overall input type and index i (i >= 1) is the
// output type of node i.
type TypeVector []types.Type

// Check validates r and infers its type vector. The four stages run in
// order and short-circuit on the first failure.
func Check(r *routine.Routine) (TypeVector, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("malformed routine: %w", err)
	}
	if err := checkNames(r); err != nil {
		return nil, err
	}
	if err := checkConnected(r); err != nil {
		return nil, err
	}
	if err := checkStatics(r); err != nil {
		return nil, err
	}
	return infer(r)
}

// CheckString parses a routine from concrete syntax and checks it.
func CheckString(src string) (*routine.Routine, TypeVector, error) {
	r, err := routine.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	tv, err := Check(r)
	if err != nil {
		return nil, nil, err
	}
	return r, tv, nil
}

// CheckInput reports whether a concrete value inhabits the routine's
// inferred overall input type.
func CheckInput(tv TypeVector, input types.Value) bool {
	if len(tv) == 0 {
		return false
	}
	return types.Inhabits(input, tv[0])
}

// checkNames verifies every node names a registered subroutine and its
// wire count matches the descriptor's slot count.
func checkNames(r *routine.Routine) error {
	for i, n := range r.Nodes {
		d := library.Get(n.Name)
		if d == nil {
			return fmt.Errorf("%w: node %d names %q", ErrUnknownSubroutine, i+1, n.Name)
		}
		if len(n.Wires) != d.NumSlots() {
			return fmt.Errorf("%w: node %d (%s) has %d wires, expected %d",
				ErrUnknownSubroutine, i+1, n.Name, len(n.Wires), d.NumSlots())
		}
	}
	return nil
}

// checkConnected verifies every dynamic index 0..m-1 is referenced by at
// least one wire: the overall input is consumed, and no node's output is
// dead. The final node's output is the routine result and needs no
// consumer.
func checkConnected(r *routine.Routine) error {
	m := r.Len()
	referenced := make([]bool, m)
	for _, n := range r.Nodes {
		for _, w := range n.Wires {
			if w.IsDyn() {
				referenced[w.Value] = true
			}
		}
	}
	for j, ok := range referenced {
		if !ok {
			if j == 0 {
				return fmt.Errorf("%w: overall input is never consumed", ErrDisconnected)
			}
			return fmt.Errorf("%w: output of node %d is never consumed", ErrDisconnected, j)
		}
	}
	return nil
}

// checkStatics verifies every static wire's value inhabits its slot's
// declared type under the node's static parameters.
func checkStatics(r *routine.Routine) error {
	for i, n := range r.Nodes {
		d := library.Get(n.Name)
		params := staticParams(d, n)
		for slot, w := range n.Wires {
			if w.IsDyn() {
				continue
			}
			slotType, err := types.Parse(d.SlotLabels(slot), params)
			if err != nil {
				return fmt.Errorf("%w: node %d (%s) slot %d: %v", ErrStaticType, i+1, n.Name, slot, err)
			}
			if !types.Inhabits(types.IntValue(w.Value), slotType) {
				return fmt.Errorf("%w: node %d (%s) slot %d: %d does not inhabit %s",
					ErrStaticType, i+1, n.Name, slot, w.Value, slotType)
			}
		}
	}
	return nil
}

// infer runs left-to-right bidirectional inference. For each node it
// resolves the declared output against the node's input type (the
// declared input met with the producer's inferred type) under the node's
// static parameters, then narrows every back-referenced producer
// by intersection with the slot's required type.
func infer(r *routine.Routine) (TypeVector, error) {
	m := r.Len()
	tv := make(TypeVector, m+1)
	for i := range tv {
		tv[i] = types.Any()
	}

	for i, n := range r.Nodes {
		d := library.Get(n.Name)
		params := staticParams(d, n)

		declaredInput, err := types.Parse(d.Input, params)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d (%s) input labels: %v", ErrInference, i+1, n.Name, err)
		}
		outSpec, err := types.ParseOutput(d.Output, params)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d (%s) output labels: %v", ErrInference, i+1, n.Name, err)
		}

		// Output-only tags lower against everything known about the
		// node's input: its declared type meets whatever the producer's
		// type has already been inferred to be.
		inputType := declaredInput
		if in := n.Input(); in.IsDyn() {
			merged, ok := types.IntersectIntroduce(tv[in.Value], declaredInput)
			if !ok {
				return nil, fmt.Errorf("%w: node %d (%s): input %s contradicts %s",
					ErrInference, i+1, n.Name, tv[in.Value], declaredInput)
			}
			inputType = merged
		}

		out, ok := types.ResolveOutput(outSpec, inputType)
		if !ok {
			return nil, fmt.Errorf("%w: node %d (%s): contradictory output", ErrInference, i+1, n.Name)
		}
		tv[i+1] = out

		for slot, w := range n.Wires {
			if !w.IsDyn() {
				continue
			}
			required, err := types.Parse(d.SlotLabels(slot), params)
			if err != nil {
				return nil, fmt.Errorf("%w: node %d (%s) slot %d: %v", ErrInference, i+1, n.Name, slot, err)
			}
			narrowed, ok := types.IntersectIntroduce(tv[w.Value], required)
			if !ok {
				return nil, fmt.Errorf("%w: node %d (%s) slot %d: %s contradicts %s",
					ErrInference, i+1, n.Name, slot, tv[w.Value], required)
			}
			tv[w.Value] = narrowed
		}
	}

	if tv[0].IsAny() {
		return nil, fmt.Errorf("%w: overall input type is unconstrained", ErrInference)
	}
	return tv, nil
}

// staticParams collects the node's static parameter wires into a binding
// map using the canonical parameter names.
func staticParams(d *library.Descriptor, n routine.Node) map[string]int {
	params := make(map[string]int)
	for i, w := range n.Params() {
		if !w.IsDyn() && i < len(d.Params) {
			params[d.Params[i].Name] = w.Value
		}
	}
	return params
}

// StaticParams exposes a node's static parameter bindings for the input
// generator.
func StaticParams(n routine.Node) map[string]int {
	d := library.Get(n.Name)
	if d == nil {
		return map[string]int{}
	}
	return staticParams(d, n)
}
