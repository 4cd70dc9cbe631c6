package types

// ResolveOutput lowers a declared output spec against the node's input
// type (the checker passes the declared input met with the producer's
// inferred type), turning output-only tags into closed-form refinements:
//
//   - same-length becomes length-exact n when the input length is pinned,
//     otherwise length-at-least of the input's length lower bound;
//   - no-smaller becomes length-at-least of the input's length lower bound;
//   - element constrains the output integer by the propagable elementwise
//     refinements of the input (sign, parity, range, multiple).
//
// The second result is false when lowering produces a contradiction.
func ResolveOutput(spec OutputSpec, input Type) (Type, bool) {
	t := spec.Type

	if spec.SameLength {
		if input.LenExact != nil {
			n := *input.LenExact
			if t.LenExact != nil && *t.LenExact != n {
				return Type{}, false
			}
			t.LenExact = &n
		} else if input.LenAtLeast > t.LenAtLeast {
			t.LenAtLeast = input.LenAtLeast
		}
	}

	if spec.NoSmaller {
		if min := input.MinLen(); min > t.LenAtLeast {
			t.LenAtLeast = min
		}
	}

	if spec.Element {
		elem := Type{
			Base:       BaseInt,
			Sign:       input.Sign,
			Parity:     input.Parity,
			MultipleOf: input.MultipleOf,
			Lo:         input.Lo,
			Hi:         input.Hi,
		}
		merged, ok := Intersect(t, elem)
		if !ok {
			return Type{}, false
		}
		t = merged
	}

	return normalize(t)
}
