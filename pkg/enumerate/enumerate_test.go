package enumerate

import (
	"context"
	"testing"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/gen"
	"github.com/lucasem/list-routines/pkg/rng"
)

func newTestEnumerator(seed uint64) *Enumerator {
	return New(rng.New(seed, "enumerate", nil), HardSizeCap, 10)
}

func TestEnumerate_BoundReached(t *testing.T) {
	e := newTestEnumerator(99)
	entries, err := e.Enumerate(context.Background(), 10)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(entries) < 10 {
		t.Fatalf("got %d routines, want at least 10", len(entries))
	}
}

func TestEnumerate_EntriesRecheckAndGenerate(t *testing.T) {
	e := newTestEnumerator(99)
	entries, err := e.Enumerate(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}

	genRNG := rng.New(99, "examples", nil)
	for _, entry := range entries {
		tv, err := check.Check(entry.Routine)
		if err != nil {
			t.Errorf("routine %s does not re-check: %v", entry.Routine, err)
			continue
		}
		if len(tv) != entry.Routine.Len()+1 {
			t.Errorf("routine %s: type vector length %d", entry.Routine, len(tv))
		}
		pairs, err := gen.Examples(entry.Routine, tv, gen.Options{Count: 2, Retries: 5}, genRNG)
		if err != nil {
			t.Errorf("routine %s: no examples: %v", entry.Routine, err)
			continue
		}
		if len(pairs) == 0 {
			t.Errorf("routine %s: generator yielded no pairs", entry.Routine)
		}
	}
}

func TestEnumerate_BehaviorallyDistinct(t *testing.T) {
	e := newTestEnumerator(3)
	entries, err := e.Enumerate(context.Background(), 12)
	if err != nil {
		t.Fatal(err)
	}

	// Re-sample each survivor and verify no two are equivalent under a
	// fresh probe: the dedup filter should have separated them already.
	probe := New(rng.New(4, "probe", nil), HardSizeCap, 10)
	cands := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		cands = append(cands, probe.sample(entry))
	}
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			if probe.equivalent(cands[i], cands[j]) {
				t.Errorf("routines %s and %s are behaviorally equivalent",
					cands[i].entry.Routine, cands[j].entry.Routine)
			}
		}
	}
}

func TestEnumerate_DeterministicForFixedSeed(t *testing.T) {
	run := func() []string {
		e := newTestEnumerator(1234)
		entries, err := e.Enumerate(context.Background(), 8)
		if err != nil {
			t.Fatalf("Enumerate: %v", err)
		}
		out := make([]string, len(entries))
		for i, entry := range entries {
			out[i] = entry.Routine.String()
		}
		return out
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("runs produced %d vs %d routines", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestEnumerate_SizeCapHonored(t *testing.T) {
	// A tiny max size with a large bound must terminate and respect the cap.
	e := New(rng.New(5, "enumerate", nil), 2, 10)
	entries, err := e.Enumerate(context.Background(), 10000)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Routine.Len() > 2 {
			t.Errorf("routine %s exceeds size cap 2", entry.Routine)
		}
	}
}

func TestEnumerate_RejectsNonPositiveBound(t *testing.T) {
	e := newTestEnumerator(1)
	if _, err := e.Enumerate(context.Background(), 0); err == nil {
		t.Error("bound 0 should be rejected")
	}
}

func TestEnumerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEnumerator(1)
	// Cancellation is observed between deepening rounds; a bound above
	// the seed count forces at least one round.
	if _, err := e.Enumerate(ctx, 1000); err == nil {
		t.Error("expected context cancellation error")
	}
}
