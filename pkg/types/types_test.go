package types

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// mustParse builds a type from labels and fails the test on error.
func mustParse(t *testing.T, labels ...string) Type {
	t.Helper()
	typ, err := Parse(labels, nil)
	if err != nil {
		t.Fatalf("parsing %v: %v", labels, err)
	}
	return typ
}

func TestIntersect_AnyIsIdentity(t *testing.T) {
	listT := mustParse(t, "int-list", "length-at-least 2")

	got, ok := Intersect(Any(), listT)
	if !ok || !got.Equal(listT) {
		t.Errorf("Intersect(any, t) = %s, want %s", got, listT)
	}
	got, ok = Intersect(listT, Any())
	if !ok || !got.Equal(listT) {
		t.Errorf("Intersect(t, any) = %s, want %s", got, listT)
	}
}

func TestIntersect_BaseMismatchIsBottom(t *testing.T) {
	_, ok := Intersect(IntType(), ListType())
	if ok {
		t.Error("Intersect(int, int-list) should be bottom")
	}
}

func TestIntersect_Contradictions(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
	}{
		{"positive-negative", mustParse(t, "int", "positive"), mustParse(t, "int", "negative")},
		{"non-negative-negative", mustParse(t, "int", "non-negative"), mustParse(t, "int", "negative")},
		{"even-odd", mustParse(t, "int", "even"), mustParse(t, "int", "odd")},
		{"length-exact-3-4", mustParse(t, "int-list", "length-exact 3"), mustParse(t, "int-list", "length-exact 4")},
		{"exact-below-at-least", mustParse(t, "int-list", "length-exact 2"), mustParse(t, "int-list", "length-at-least 3")},
		{"empty-range", mustParse(t, "int", "between 5 9"), mustParse(t, "int", "between 10 20")},
		{"positive-below-zero", mustParse(t, "int", "positive"), mustParse(t, "int", "between -5 0")},
		{"even-singleton-odd", mustParse(t, "int", "between 3 3"), mustParse(t, "int", "even")},
		{"multiple-above-range", mustParse(t, "int", "multiple 10"), mustParse(t, "int", "between 1 9")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Intersect(tc.a, tc.b); ok {
				t.Errorf("Intersect(%s, %s) should be bottom", tc.a, tc.b)
			}
		})
	}
}

func TestIntersect_MergesFamilies(t *testing.T) {
	a := mustParse(t, "int", "multiple 4", "between 0 100")
	b := mustParse(t, "int", "multiple 6", "between 10 50")

	got, ok := Intersect(a, b)
	if !ok {
		t.Fatalf("Intersect(%s, %s) unexpectedly bottom", a, b)
	}
	if got.MultipleOf == nil || *got.MultipleOf != 12 {
		t.Errorf("MultipleOf = %v, want 12", got.MultipleOf)
	}
	if got.Lo == nil || *got.Lo != 10 || got.Hi == nil || *got.Hi != 50 {
		t.Errorf("range = [%v, %v], want [10, 50]", got.Lo, got.Hi)
	}
}

func TestIntersect_DivisorGCD(t *testing.T) {
	a := mustParse(t, "int", "divisor 12")
	b := mustParse(t, "int", "divisor 18")

	got, ok := Intersect(a, b)
	if !ok {
		t.Fatal("unexpected bottom")
	}
	if got.DivisorOf == nil || *got.DivisorOf != 6 {
		t.Errorf("DivisorOf = %v, want 6", got.DivisorOf)
	}
}

func TestSubtype_NumericContainment(t *testing.T) {
	cases := []struct {
		a, b []string
		want bool
	}{
		{[]string{"int-list", "length-at-least 5"}, []string{"int-list", "length-at-least 3"}, true},
		{[]string{"int-list", "length-at-least 3"}, []string{"int-list", "length-at-least 5"}, false},
		{[]string{"int", "between 1 5"}, []string{"int", "between 0 10"}, true},
		{[]string{"int", "between 0 10"}, []string{"int", "between 1 5"}, false},
		{[]string{"int", "positive"}, []string{"int", "non-negative"}, true},
		{[]string{"int", "non-negative"}, []string{"int", "positive"}, false},
		{[]string{"int", "between 1 9"}, []string{"int", "positive"}, true},
		{[]string{"int", "multiple 6"}, []string{"int", "multiple 3"}, true},
		{[]string{"int", "multiple 6"}, []string{"int", "even"}, true},
		{[]string{"int", "multiple 3"}, []string{"int", "multiple 6"}, false},
		{[]string{"int", "divisor 6"}, []string{"int", "divisor 12"}, true},
		{[]string{"int", "divisor 12"}, []string{"int", "divisor 6"}, false},
		{[]string{"int-list", "sorted"}, []string{"int-list"}, true},
		{[]string{"int-list"}, []string{"int-list", "sorted"}, false},
		{[]string{"int"}, []string{"any"}, true},
		{[]string{"int-list", "length-exact 3"}, []string{"int-list", "length-at-least 2"}, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v<=%v", tc.a, tc.b), func(t *testing.T) {
			a, b := mustParse(t, tc.a...), mustParse(t, tc.b...)
			if got := Subtype(a, b); got != tc.want {
				t.Errorf("Subtype(%s, %s) = %v, want %v", a, b, got, tc.want)
			}
		})
	}
}

func TestInhabits(t *testing.T) {
	cases := []struct {
		value  Value
		labels []string
		want   bool
	}{
		{IntValue(4), []string{"int", "even"}, true},
		{IntValue(3), []string{"int", "even"}, false},
		{IntValue(-3), []string{"int", "odd", "negative"}, true},
		{IntValue(4), []string{"int", "divisor 12"}, true},
		{IntValue(5), []string{"int", "divisor 12"}, false},
		{IntValue(0), []string{"int", "positive"}, false},
		{IntValue(3), []string{"int-list"}, false},
		{ListValue([]int{1, 2, 3}), []string{"int-list", "positive", "sorted"}, true},
		{ListValue([]int{3, 1}), []string{"int-list", "sorted"}, false},
		{ListValue([]int{}), []string{"int-list", "length-at-least 1"}, false},
		{ListValue([]int{}), []string{"int-list"}, true},
		{ListValue([]int{2, 4, 6}), []string{"int-list", "multiple 2"}, true},
		{ListValue([]int{2, 4, 7}), []string{"int-list", "multiple 2"}, false},
		{ListValue([]int{5, 5}), []string{"int-list", "length-exact 2", "between 0 5"}, true},
		{ListValue([]int{5, 5}), []string{"int-list", "length-exact 3"}, false},
		{IntValue(7), []string{"any"}, true},
		{ListValue([]int{7}), []string{"any"}, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s-in-%v", tc.value, tc.labels), func(t *testing.T) {
			typ := mustParse(t, tc.labels...)
			if got := Inhabits(tc.value, typ); got != tc.want {
				t.Errorf("Inhabits(%s, %s) = %v, want %v", tc.value, typ, got, tc.want)
			}
		})
	}
}

// typeGen draws a random well-formed type by parsing a random label list.
// Keeping the numeric arguments small keeps the algebra's emptiness rules
// exact, which the lattice laws rely on.
func typeGen() *rapid.Generator[Type] {
	return rapid.Custom(func(t *rapid.T) Type {
		base := rapid.SampledFrom([]string{"int", "int-list"}).Draw(t, "base")
		labels := []string{base}

		if rapid.Bool().Draw(t, "hasSign") {
			labels = append(labels, rapid.SampledFrom([]string{"non-negative", "positive", "negative"}).Draw(t, "sign"))
		}
		if rapid.Bool().Draw(t, "hasParity") {
			labels = append(labels, rapid.SampledFrom([]string{"even", "odd"}).Draw(t, "parity"))
		}
		if rapid.Bool().Draw(t, "hasMultiple") {
			labels = append(labels, fmt.Sprintf("multiple %d", rapid.IntRange(1, 6).Draw(t, "mult")))
		}
		if rapid.Bool().Draw(t, "hasRange") {
			lo := rapid.IntRange(-20, 10).Draw(t, "lo")
			hi := lo + rapid.IntRange(0, 30).Draw(t, "span")
			labels = append(labels, fmt.Sprintf("between %d %d", lo, hi))
		}
		if base == "int" && rapid.Bool().Draw(t, "hasDivisor") {
			labels = append(labels, fmt.Sprintf("divisor %d", rapid.IntRange(1, 36).Draw(t, "div")))
		}
		if base == "int-list" {
			if rapid.Bool().Draw(t, "hasLen") {
				if rapid.Bool().Draw(t, "exact") {
					labels = append(labels, fmt.Sprintf("length-exact %d", rapid.IntRange(0, 5).Draw(t, "lenEx")))
				} else {
					labels = append(labels, fmt.Sprintf("length-at-least %d", rapid.IntRange(0, 5).Draw(t, "lenAl")))
				}
			}
			if rapid.Bool().Draw(t, "hasSorted") {
				labels = append(labels, "sorted")
			}
		}

		typ, err := Parse(labels, nil)
		if err != nil {
			// Contradictory label draw; fall back to the bare base.
			typ, err = Parse([]string{base}, nil)
			if err != nil {
				t.Fatalf("parsing base label: %v", err)
			}
		}
		return typ
	})
}

// valueGen draws a random concrete value.
func valueGen() *rapid.Generator[Value] {
	return rapid.Custom(func(t *rapid.T) Value {
		if rapid.Bool().Draw(t, "isList") {
			return ListValue(rapid.SliceOfN(rapid.IntRange(-24, 24), 0, 6).Draw(t, "xs"))
		}
		return IntValue(rapid.IntRange(-24, 24).Draw(t, "x"))
	})
}

func TestIntersect_Commutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		b := typeGen().Draw(t, "b")

		ab, okAB := Intersect(a, b)
		ba, okBA := Intersect(b, a)
		if okAB != okBA {
			t.Fatalf("Intersect(%s, %s): ok %v vs %v", a, b, okAB, okBA)
		}
		if okAB && !ab.Equal(ba) {
			t.Fatalf("Intersect(%s, %s) = %s, reversed = %s", a, b, ab, ba)
		}
	})
}

func TestIntersect_Associative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		b := typeGen().Draw(t, "b")
		c := typeGen().Draw(t, "c")

		left, okL := Intersect(a, b)
		if okL {
			left, okL = Intersect(left, c)
		}
		right, okR := Intersect(b, c)
		if okR {
			right, okR = Intersect(a, right)
		}
		if okL != okR {
			t.Fatalf("associativity ok mismatch for %s, %s, %s: %v vs %v", a, b, c, okL, okR)
		}
		if okL && !left.Equal(right) {
			t.Fatalf("(%s ∧ %s) ∧ %s = %s, other order = %s", a, b, c, left, right)
		}
	})
}

func TestIntersect_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		aa, ok := Intersect(a, a)
		if !ok {
			t.Fatalf("Intersect(%s, %s) is bottom", a, a)
		}
		if !aa.Equal(a) {
			t.Fatalf("Intersect(%s, %s) = %s", a, a, aa)
		}
	})
}

func TestIntersect_SoundOnValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		b := typeGen().Draw(t, "b")
		v := valueGen().Draw(t, "v")

		both := Inhabits(v, a) && Inhabits(v, b)
		ab, ok := Intersect(a, b)
		if both && !ok {
			t.Fatalf("%s inhabits %s and %s, but their intersection is bottom", v, a, b)
		}
		if ok && both != Inhabits(v, ab) {
			t.Fatalf("Inhabits(%s, intersection of %s and %s = %s) = %v, want %v", v, a, b, ab, Inhabits(v, ab), both)
		}
	})
}

func TestSubtype_Reflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		if !Subtype(a, a) {
			t.Fatalf("Subtype(%s, %s) = false", a, a)
		}
	})
}

func TestSubtype_Transitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		b := typeGen().Draw(t, "b")
		c := typeGen().Draw(t, "c")
		if Subtype(a, b) && Subtype(b, c) && !Subtype(a, c) {
			t.Fatalf("transitivity broken: %s <= %s <= %s", a, b, c)
		}
	})
}

func TestSubtype_SoundForInhabitation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := typeGen().Draw(t, "a")
		b := typeGen().Draw(t, "b")
		v := valueGen().Draw(t, "v")
		if Subtype(a, b) && Inhabits(v, a) && !Inhabits(v, b) {
			t.Fatalf("%s inhabits %s <= %s but not the supertype", v, a, b)
		}
	})
}
