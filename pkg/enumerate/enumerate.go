// Package enumerate searches the space of well-typed routines by
// iterative deepening: size-1 seeds over every registered subroutine,
// then repeated extension of surviving routines by one node wired to the
// most recent output. Candidates are deduplicated by observed behavior on
// sampled inputs rather than by syntax.
package enumerate

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/eval"
	"github.com/lucasem/list-routines/pkg/gen"
	"github.com/lucasem/list-routines/pkg/library"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

var log = commonlog.GetLogger("list-routines.enumerate")

const (
	// HardSizeCap is the absolute limit on routine size; deepening past
	// it aborts with a warning.
	HardSizeCap = 7

	// backRefProb is the chance a scalar slot is wired to an earlier
	// output instead of a fresh static value.
	backRefProb = 0.3

	// regenRetries bounds static-value regeneration attempts before the
	// original statics are kept.
	regenRetries = 5

	// dedupSamples is how many inputs are sampled per routine when
	// testing behavioral equivalence.
	dedupSamples = 4
)

// Entry pairs an enumerated routine with its inferred type vector.
type Entry struct {
	Routine *routine.Routine
	Types   check.TypeVector
}

// candidate carries an entry plus its sampled behavior for dedup.
type candidate struct {
	entry   Entry
	pairs   []gen.Pair
	sampled bool
}

// Enumerator generates behaviorally distinct routines.
// All randomness is drawn from the injected RNG, so enumeration is
// deterministic for a fixed seed.
type Enumerator struct {
	rnd       *rng.RNG
	maxSize   int
	randLimit int
}

// New creates an enumerator. maxSize is clamped to the hard size cap;
// randLimit bounds the magnitude of sampled static values.
func New(rnd *rng.RNG, maxSize, randLimit int) *Enumerator {
	if maxSize <= 0 || maxSize > HardSizeCap {
		maxSize = HardSizeCap
	}
	if randLimit <= 0 {
		randLimit = 10
	}
	return &Enumerator{rnd: rnd, maxSize: maxSize, randLimit: randLimit}
}

// Enumerate returns up to bound behaviorally distinct routines. It stops
// early when deepening reaches the size cap or a round builds no
// extensions at all; a round whose extensions are all duplicates deepens
// from those extensions instead. Every returned entry re-passes the
// checker.
func (e *Enumerator) Enumerate(ctx context.Context, bound int) ([]Entry, error) {
	if bound <= 0 {
		return nil, fmt.Errorf("enumeration bound must be positive, got %d", bound)
	}

	var survivors []candidate
	for _, c := range e.seeds() {
		if len(survivors) >= bound {
			break
		}
		survivors = e.merge(survivors, c)
	}
	frontier := append([]candidate(nil), survivors...)

	size := 1
	for len(survivors) < bound {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		size++
		if size > e.maxSize {
			log.Warningf("size cap %d reached with %d of %d routines built", e.maxSize, len(survivors), bound)
			break
		}

		var next []candidate
		for _, c := range frontier {
			base := e.regenStatics(c)
			next = append(next, e.extend(base)...)
		}
		if len(next) == 0 {
			break
		}

		var added []candidate
		for _, c := range next {
			if len(survivors) >= bound {
				break
			}
			merged := e.merge(survivors, c)
			if len(merged) > len(survivors) {
				added = append(added, c)
			}
			survivors = merged
		}
		if len(added) == 0 {
			frontier = next
			continue
		}
		frontier = added
	}

	// Final filter: only routines that still pass the checker survive.
	out := make([]Entry, 0, len(survivors))
	for _, c := range survivors {
		tv, err := check.Check(c.entry.Routine)
		if err != nil {
			log.Warningf("discarding routine %s: %v", c.entry.Routine, err)
			continue
		}
		out = append(out, Entry{Routine: c.entry.Routine, Types: tv})
	}
	return out, nil
}

// seeds builds one size-1 routine per registered subroutine, in
// lexicographic order, with freshly sampled static parameters.
func (e *Enumerator) seeds() []candidate {
	var out []candidate
	for _, name := range library.Names() {
		d := library.Get(name)
		wires := make([]routine.Wire, d.NumSlots())
		wires[0] = routine.Dyn(0)
		for p := range d.Params {
			wires[p+1] = routine.Static(d.GenerateParam(e.rnd, p, e.randLimit))
		}
		r := &routine.Routine{Nodes: []routine.Node{{Name: name, Wires: wires}}}
		tv, err := check.Check(r)
		if err != nil {
			log.Warningf("seed %s does not check: %v", r, err)
			continue
		}
		out = append(out, e.sample(Entry{Routine: r, Types: tv}))
	}
	return out
}

// extend builds every one-node extension of base whose new node consumes
// base's final output in a slot that accepts it.
func (e *Enumerator) extend(base candidate) []candidate {
	m := base.entry.Routine.Len()
	last := base.entry.Types[m]

	var out []candidate
	for _, name := range library.Names() {
		d := library.Get(name)
		for slot := 0; slot < d.NumSlots(); slot++ {
			required, err := types.Parse(d.SlotLabels(slot), nil)
			if err != nil {
				continue
			}
			if !types.Subtype(last, required) {
				continue
			}
			node, ok := e.buildNode(d, slot, base.entry)
			if !ok {
				continue
			}
			r := base.entry.Routine.Clone()
			r.Nodes = append(r.Nodes, node)
			tv, err := check.Check(r)
			if err != nil {
				continue
			}
			out = append(out, e.sample(Entry{Routine: r, Types: tv}))
		}
	}
	return out
}

// buildNode assembles the extension node: takeSlot receives the last
// output; list-valued slots back-reference a compatible earlier output
// (failing the candidate when none exists); scalar slots back-reference
// with probability backRefProb and otherwise take a fresh static value.
func (e *Enumerator) buildNode(d *library.Descriptor, takeSlot int, base Entry) (routine.Node, bool) {
	m := base.Routine.Len()
	wires := make([]routine.Wire, d.NumSlots())
	wires[takeSlot] = routine.Dyn(m)

	for slot := 0; slot < d.NumSlots(); slot++ {
		if slot == takeSlot {
			continue
		}
		slotType, err := types.Parse(d.SlotLabels(slot), nil)
		if err != nil {
			return routine.Node{}, false
		}

		if slotType.Base == types.BaseList {
			idx, ok := e.pickBackRef(base.Types, m, slotType)
			if !ok {
				return routine.Node{}, false
			}
			wires[slot] = routine.Dyn(idx)
			continue
		}

		if e.rnd.Float64() < backRefProb {
			if idx, ok := e.pickBackRef(base.Types, m, slotType); ok {
				wires[slot] = routine.Dyn(idx)
				continue
			}
		}
		wires[slot] = routine.Static(e.staticFor(d, slot))
	}

	return routine.Node{Name: d.Name, Wires: wires}, true
}

// pickBackRef chooses uniformly among indices 0..m-1 whose inferred type
// fits the required slot type.
func (e *Enumerator) pickBackRef(tv check.TypeVector, m int, required types.Type) (int, bool) {
	var candidates []int
	for idx := 0; idx < m; idx++ {
		if types.Subtype(tv[idx], required) {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return e.rnd.Pick(candidates), true
}

// staticFor samples a static value for a slot: parameter slots use the
// descriptor's parameter generator, a scalar input slot gets a bounded
// signed integer.
func (e *Enumerator) staticFor(d *library.Descriptor, slot int) int {
	if slot > 0 && d.GenerateParam != nil {
		return d.GenerateParam(e.rnd, slot-1, e.randLimit)
	}
	return e.rnd.IntRange(-e.randLimit, e.randLimit)
}

// regenStatics re-samples every static parameter wire of the candidate's
// routine. If no resampling passes the checker within the retry budget,
// the original statics are kept.
func (e *Enumerator) regenStatics(c candidate) candidate {
	for attempt := 0; attempt < regenRetries; attempt++ {
		r := c.entry.Routine.Clone()
		changed := false
		for i := range r.Nodes {
			d := library.Get(r.Nodes[i].Name)
			if d == nil {
				return c
			}
			for p := range d.Params {
				slot := p + 1
				if r.Nodes[i].Wires[slot].IsDyn() {
					continue
				}
				r.Nodes[i].Wires[slot] = routine.Static(d.GenerateParam(e.rnd, p, e.randLimit))
				changed = true
			}
		}
		if !changed {
			return c
		}
		tv, err := check.Check(r)
		if err != nil {
			continue
		}
		return e.sample(Entry{Routine: r, Types: tv})
	}
	return c
}

// sample records the candidate's behavior on generated inputs for dedup.
func (e *Enumerator) sample(entry Entry) candidate {
	pairs, err := gen.Examples(entry.Routine, entry.Types,
		gen.Options{Count: dedupSamples, Retries: regenRetries}, e.rnd)
	if err != nil {
		return candidate{entry: entry}
	}
	return candidate{entry: entry, pairs: pairs, sampled: true}
}

// merge adds c to survivors unless it is behaviorally equivalent to one
// of them.
func (e *Enumerator) merge(survivors []candidate, c candidate) []candidate {
	for _, s := range survivors {
		if e.equivalent(s, c) {
			return survivors
		}
	}
	return append(survivors, c)
}

// equivalent implements the pragmatic behavioral-equivalence test: the
// inferred input types match and each routine reproduces the other's
// sampled outputs. A sampling failure on either side means the routines
// are treated as distinct.
func (e *Enumerator) equivalent(a, b candidate) bool {
	if !a.sampled || !b.sampled {
		return false
	}
	if !a.entry.Types[0].Equal(b.entry.Types[0]) {
		return false
	}
	return reproduces(b.entry, a.pairs) && reproduces(a.entry, b.pairs)
}

// reproduces checks that entry maps each sampled input to the recorded
// output.
func reproduces(entry Entry, pairs []gen.Pair) bool {
	for _, p := range pairs {
		out, err := eval.Evaluate(entry.Routine, entry.Types, p.Input)
		if err != nil || !out.Equal(p.Output) {
			return false
		}
	}
	return true
}
