package gen

import (
	"testing"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/eval"
	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/types"
)

func testRNG(stage string) *rng.RNG {
	return rng.New(7, stage, nil)
}

func TestExamples_RoundTrip(t *testing.T) {
	srcs := []string{
		"[(multiply-k (dyn 0) (static 3))]",
		"[(index-k (dyn 0) (static 3)), (add-k (dyn 0) (dyn 1))]",
		"[(fibonacci (dyn 0))]",
		"[(sort (dyn 0)), (head (dyn 1))]",
		"[(count-up-to (dyn 0)), (sum (dyn 1))]",
	}
	for _, src := range srcs {
		r, tv, err := check.CheckString(src)
		if err != nil {
			t.Fatalf("CheckString(%q): %v", src, err)
		}
		pairs, err := Examples(r, tv, DefaultOptions(), testRNG(src))
		if err != nil {
			t.Fatalf("Examples(%q): %v", src, err)
		}
		if len(pairs) == 0 {
			t.Fatalf("Examples(%q) produced no pairs", src)
		}
		for _, p := range pairs {
			if !types.Inhabits(p.Input, tv[0]) {
				t.Errorf("%q: input %s outside %s", src, p.Input, tv[0])
			}
			out, err := eval.Evaluate(r, tv, p.Input)
			if err != nil {
				t.Errorf("%q: re-evaluating %s: %v", src, p.Input, err)
				continue
			}
			if !out.Equal(p.Output) {
				t.Errorf("%q: evaluate(%s) = %s, but pair records %s", src, p.Input, out, p.Output)
			}
		}
	}
}

func TestExamples_CountHonored(t *testing.T) {
	r, tv, err := check.CheckString("[(reverse (dyn 0))]")
	if err != nil {
		t.Fatal(err)
	}
	pairs, err := Examples(r, tv, Options{Count: 7, Retries: 5}, testRNG("count"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 7 {
		t.Errorf("got %d pairs, want 7", len(pairs))
	}
}

func TestExamples_FirstNodeMustConsumeInput(t *testing.T) {
	r, tv, err := check.CheckString("[(length (dyn 0)), (replicate-k (dyn 1) (static 2))]")
	if err != nil {
		t.Fatal(err)
	}
	// Break the first node's input wire after checking; the generator has
	// its own guard for this shape.
	r.Nodes[0].Wires[0] = routine.Static(4)
	if _, err := Examples(r, tv, DefaultOptions(), testRNG("guard")); err == nil {
		t.Error("Examples should reject a first node that ignores the overall input")
	}
}

func TestPairJSON(t *testing.T) {
	p := Pair{Input: types.ListValue([]int{1, 2}), Output: types.IntValue(3)}
	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[[1,2],3]" {
		t.Errorf("pair encodes as %s, want [[1,2],3]", data)
	}
}
