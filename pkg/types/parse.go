package types

import (
	"fmt"
	"strconv"
	"strings"
)

// OutputSpec is a declared output type plus any output-only tags. The
// tags are resolved against the node's input type during inference and
// never stored on inferred types.
type OutputSpec struct {
	Type       Type
	SameLength bool
	Element    bool
	NoSmaller  bool
}

// Parse lowers a list of raw labels into a normalized type. Labels may
// carry the symbolic parameters "k" and "n", which are substituted from
// params; a symbolic parameter with no binding drops that refinement.
// Output-only tags are rejected; use ParseOutput for declared outputs.
func Parse(labels []string, params map[string]int) (Type, error) {
	spec, err := parseLabels(labels, params)
	if err != nil {
		return Type{}, err
	}
	if spec.SameLength || spec.Element || spec.NoSmaller {
		return Type{}, fmt.Errorf("output-only tag in input position: %v", labels)
	}
	return spec.Type, nil
}

// ParseOutput lowers a list of raw labels into a declared output spec,
// accepting the output-only tags same-length, element, and no-smaller.
func ParseOutput(labels []string, params map[string]int) (OutputSpec, error) {
	return parseLabels(labels, params)
}

func parseLabels(labels []string, params map[string]int) (OutputSpec, error) {
	var spec OutputSpec
	t := Type{Base: BaseAny}
	baseSet := false

	setBase := func(b Base) error {
		if baseSet && t.Base != b {
			return fmt.Errorf("conflicting base labels")
		}
		t.Base = b
		baseSet = true
		return nil
	}

	for _, label := range labels {
		fields := strings.Fields(label)
		if len(fields) == 0 {
			return OutputSpec{}, fmt.Errorf("empty label")
		}
		name, args := fields[0], fields[1:]

		switch name {
		case "any":
			if err := setBase(BaseAny); err != nil {
				return OutputSpec{}, err
			}
		case "int":
			if err := setBase(BaseInt); err != nil {
				return OutputSpec{}, err
			}
		case "int-list":
			if err := setBase(BaseList); err != nil {
				return OutputSpec{}, err
			}

		case "non-negative", "positive", "negative":
			want := map[string]Sign{
				"non-negative": SignNonNegative,
				"positive":     SignPositive,
				"negative":     SignNegative,
			}[name]
			merged, ok := meetSign(t.Sign, want)
			if !ok {
				return OutputSpec{}, fmt.Errorf("contradictory sign labels: %v", labels)
			}
			t.Sign = merged

		case "even", "odd":
			want := ParityEven
			if name == "odd" {
				want = ParityOdd
			}
			merged, ok := meetParity(t.Parity, want)
			if !ok {
				return OutputSpec{}, fmt.Errorf("contradictory parity labels: %v", labels)
			}
			t.Parity = merged

		case "divisor":
			v, bound, err := oneArg(name, args, params)
			if err != nil {
				return OutputSpec{}, err
			}
			if bound {
				t.DivisorOf = &v
			}
		case "multiple":
			v, bound, err := oneArg(name, args, params)
			if err != nil {
				return OutputSpec{}, err
			}
			if bound {
				t.MultipleOf = &v
			}
		case "between":
			if len(args) != 2 {
				return OutputSpec{}, fmt.Errorf("between requires two arguments, got %v", args)
			}
			lo, loBound, err := resolveArg(args[0], params)
			if err != nil {
				return OutputSpec{}, fmt.Errorf("between: %w", err)
			}
			hi, hiBound, err := resolveArg(args[1], params)
			if err != nil {
				return OutputSpec{}, fmt.Errorf("between: %w", err)
			}
			if loBound {
				t.Lo = &lo
			}
			if hiBound {
				t.Hi = &hi
			}
		case "length-exact":
			v, bound, err := oneArg(name, args, params)
			if err != nil {
				return OutputSpec{}, err
			}
			if bound {
				t.LenExact = &v
			}
		case "length-at-least":
			v, bound, err := oneArg(name, args, params)
			if err != nil {
				return OutputSpec{}, err
			}
			if bound && v > t.LenAtLeast {
				t.LenAtLeast = v
			}
		case "sorted":
			t.Sorted = true

		case "same-length":
			spec.SameLength = true
		case "element":
			spec.Element = true
		case "no-smaller":
			spec.NoSmaller = true

		default:
			return OutputSpec{}, fmt.Errorf("unknown type label %q", name)
		}
	}

	if !baseSet {
		return OutputSpec{}, fmt.Errorf("missing base label in %v", labels)
	}
	if err := checkLabelBase(t, spec); err != nil {
		return OutputSpec{}, err
	}

	norm, ok := normalize(t)
	if !ok {
		return OutputSpec{}, fmt.Errorf("contradictory labels: %v", labels)
	}
	spec.Type = norm
	return spec, nil
}

// checkLabelBase rejects refinements that do not apply to the base.
func checkLabelBase(t Type, spec OutputSpec) error {
	if t.Base == BaseAny {
		refined := t.Sign != SignAny || t.Parity != ParityAny ||
			t.DivisorOf != nil || t.MultipleOf != nil || t.Lo != nil || t.Hi != nil ||
			t.LenExact != nil || t.LenAtLeast > 0 || t.Sorted ||
			spec.SameLength || spec.Element || spec.NoSmaller
		if refined {
			return fmt.Errorf("refinements are not allowed on base any")
		}
		return nil
	}
	if t.Base == BaseInt {
		if t.LenExact != nil || t.LenAtLeast > 0 || t.Sorted {
			return fmt.Errorf("length and sortedness labels require int-list")
		}
		if spec.SameLength || spec.NoSmaller {
			return fmt.Errorf("same-length and no-smaller require int-list")
		}
	}
	if t.Base == BaseList {
		if t.DivisorOf != nil {
			return fmt.Errorf("divisor requires int")
		}
		if spec.Element {
			return fmt.Errorf("element requires int")
		}
	}
	return nil
}

func oneArg(name string, args []string, params map[string]int) (int, bool, error) {
	if len(args) != 1 {
		return 0, false, fmt.Errorf("%s requires one argument, got %v", name, args)
	}
	v, bound, err := resolveArg(args[0], params)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", name, err)
	}
	return v, bound, nil
}

// resolveArg interprets a label argument: an integer literal, or one of
// the symbolic parameters "k" / "n" looked up in params. An unbound
// symbol reports bound=false so the caller drops the refinement.
func resolveArg(tok string, params map[string]int) (int, bool, error) {
	if tok == "k" || tok == "n" {
		v, ok := params[tok]
		return v, ok, nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false, fmt.Errorf("invalid label argument %q", tok)
	}
	return v, true, nil
}
