// Package routine defines the routine model: a topologically ordered DAG
// of subroutine invocations whose wires are either static constants or
// back-references to earlier node outputs, plus the concrete expression
// syntax routines travel in.
package routine

import (
	"fmt"
	"strings"
)

// WireKind discriminates the two wire variants.
type WireKind int

const (
	// WireStatic carries a constant integer value.
	WireStatic WireKind = iota

	// WireDyn back-references the overall input (index 0) or the output
	// of an earlier node (index >= 1).
	WireDyn
)

// Wire is a single slot binding on a node.
type Wire struct {
	Kind WireKind

	// Value is the constant for static wires and the back-reference
	// index for dynamic wires.
	Value int
}

// Static builds a constant wire.
func Static(v int) Wire { return Wire{Kind: WireStatic, Value: v} }

// Dyn builds a back-reference wire.
func Dyn(j int) Wire { return Wire{Kind: WireDyn, Value: j} }

// IsDyn reports whether the wire is a back-reference.
func (w Wire) IsDyn() bool { return w.Kind == WireDyn }

// String renders the wire in concrete syntax, e.g. "(dyn 0)".
func (w Wire) String() string {
	if w.Kind == WireDyn {
		return fmt.Sprintf("(dyn %d)", w.Value)
	}
	return fmt.Sprintf("(static %d)", w.Value)
}

// Node is one subroutine invocation. Wires[0] is the input wire; the
// remaining wires bind parameters in schema order.
type Node struct {
	Name  string
	Wires []Wire
}

// Input returns the node's input wire.
func (n Node) Input() Wire { return n.Wires[0] }

// Params returns the node's parameter wires.
func (n Node) Params() []Wire { return n.Wires[1:] }

// String renders the node in concrete syntax.
func (n Node) String() string {
	parts := make([]string, 0, len(n.Wires)+1)
	parts = append(parts, n.Name)
	for _, w := range n.Wires {
		parts = append(parts, w.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Routine is an ordered sequence of nodes, topologically sorted by
// construction: a dynamic wire on node i may only reference indices
// strictly below i (0 names the overall input).
type Routine struct {
	Nodes []Node
}

// Len returns the number of nodes.
func (r *Routine) Len() int { return len(r.Nodes) }

// Validate performs shape checks that are independent of the subroutine
// library: nonempty routine, every node carries an input wire, and every
// back-reference respects topological order.
func (r *Routine) Validate() error {
	if len(r.Nodes) == 0 {
		return fmt.Errorf("routine has no nodes")
	}
	for i, n := range r.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node %d: missing subroutine name", i+1)
		}
		if len(n.Wires) == 0 {
			return fmt.Errorf("node %d (%s): missing input wire", i+1, n.Name)
		}
		for s, w := range n.Wires {
			if w.Kind == WireDyn && (w.Value < 0 || w.Value > i) {
				return fmt.Errorf("node %d (%s) slot %d: back-reference %d out of range [0,%d]",
					i+1, n.Name, s, w.Value, i)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the routine.
func (r *Routine) Clone() *Routine {
	nodes := make([]Node, len(r.Nodes))
	for i, n := range r.Nodes {
		wires := make([]Wire, len(n.Wires))
		copy(wires, n.Wires)
		nodes[i] = Node{Name: n.Name, Wires: wires}
	}
	return &Routine{Nodes: nodes}
}

// String renders the routine in concrete syntax, e.g.
// "[(index-k (dyn 0) (static 3)), (add-k (dyn 0) (dyn 1))]".
func (r *Routine) String() string {
	parts := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
