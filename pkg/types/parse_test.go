package types

import (
	"testing"
)

func TestParse_SymbolicParams(t *testing.T) {
	typ, err := Parse([]string{"int-list", "length-at-least k"}, map[string]int{"k": 3})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if typ.LenAtLeast != 3 {
		t.Errorf("LenAtLeast = %d, want 3", typ.LenAtLeast)
	}
}

func TestParse_UnboundSymbolDropsRefinement(t *testing.T) {
	typ, err := Parse([]string{"int-list", "length-at-least k"}, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if typ.LenAtLeast != 0 {
		t.Errorf("LenAtLeast = %d, want 0 (unbound k should drop the refinement)", typ.LenAtLeast)
	}
}

func TestParse_RejectsOutputOnlyTags(t *testing.T) {
	for _, labels := range [][]string{
		{"int-list", "same-length"},
		{"int", "element"},
		{"int-list", "no-smaller"},
	} {
		if _, err := Parse(labels, nil); err == nil {
			t.Errorf("Parse(%v) should reject output-only tags", labels)
		}
	}
}

func TestParse_RejectsMisappliedLabels(t *testing.T) {
	for _, labels := range [][]string{
		{"int", "length-at-least 1"},
		{"int", "sorted"},
		{"int-list", "divisor 6"},
		{"any", "positive"},
		{"int", "bogus-tag"},
		{"int", "between 1"},
	} {
		if _, err := Parse(labels, nil); err == nil {
			t.Errorf("Parse(%v) should fail", labels)
		}
	}
}

func TestParse_RejectsContradictions(t *testing.T) {
	for _, labels := range [][]string{
		{"int", "positive", "negative"},
		{"int", "even", "odd"},
		{"int", "between 5 1"},
	} {
		if _, err := Parse(labels, nil); err == nil {
			t.Errorf("Parse(%v) should fail", labels)
		}
	}
}

func TestParseOutput_AcceptsOutputOnlyTags(t *testing.T) {
	spec, err := ParseOutput([]string{"int-list", "same-length", "multiple k"}, map[string]int{"k": 3})
	if err != nil {
		t.Fatalf("ParseOutput failed: %v", err)
	}
	if !spec.SameLength {
		t.Error("SameLength should be set")
	}
	if spec.Type.MultipleOf == nil || *spec.Type.MultipleOf != 3 {
		t.Errorf("MultipleOf = %v, want 3", spec.Type.MultipleOf)
	}
}

func TestResolveOutput_SameLength(t *testing.T) {
	spec, err := ParseOutput([]string{"int-list", "same-length"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Pinned input length lowers to length-exact.
	n := 4
	input := Type{Base: BaseList, LenExact: &n}
	got, ok := ResolveOutput(spec, input)
	if !ok || got.LenExact == nil || *got.LenExact != 4 {
		t.Errorf("ResolveOutput with exact input = %s, want length-exact 4", got)
	}

	// A lower bound only carries the bound.
	input = Type{Base: BaseList, LenAtLeast: 2}
	got, ok = ResolveOutput(spec, input)
	if !ok || got.LenExact != nil || got.LenAtLeast != 2 {
		t.Errorf("ResolveOutput with bounded input = %s, want length-at-least 2", got)
	}
}

func TestResolveOutput_NoSmaller(t *testing.T) {
	spec, err := ParseOutput([]string{"int-list", "no-smaller"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	n := 3
	got, ok := ResolveOutput(spec, Type{Base: BaseList, LenExact: &n})
	if !ok || got.LenAtLeast != 3 || got.LenExact != nil {
		t.Errorf("ResolveOutput = %s, want length-at-least 3", got)
	}
}

func TestResolveOutput_ElementPropagatesRefinements(t *testing.T) {
	spec, err := ParseOutput([]string{"int", "element"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi, m := 1, 9, 3
	input := Type{Base: BaseList, Sign: SignPositive, Parity: ParityOdd, MultipleOf: &m, Lo: &lo, Hi: &hi}

	got, ok := ResolveOutput(spec, input)
	if !ok {
		t.Fatal("unexpected bottom")
	}
	if got.Base != BaseInt {
		t.Errorf("Base = %v, want int", got.Base)
	}
	if got.Sign != SignPositive || got.Parity != ParityOdd {
		t.Errorf("sign/parity not propagated: %s", got)
	}
	if got.MultipleOf == nil || *got.MultipleOf != 3 {
		t.Errorf("MultipleOf = %v, want 3", got.MultipleOf)
	}
	if got.Lo == nil || *got.Lo != 1 || got.Hi == nil || *got.Hi != 9 {
		t.Errorf("range not propagated: %s", got)
	}
	if got.LenExact != nil || got.LenAtLeast != 0 || got.Sorted {
		t.Errorf("list refinements leaked into element type: %s", got)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	for _, v := range []Value{IntValue(-7), IntValue(0), ListValue([]int{1, 2, 3}), ListValue(nil)} {
		data, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %s: %v", v, err)
		}
		var back Value
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !back.Equal(v) {
			t.Errorf("round trip %s -> %s -> %s", v, data, back)
		}
	}

	// The empty list must encode as [], not null.
	data, err := ListValue(nil).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty list encodes as %s, want []", data)
	}
}
