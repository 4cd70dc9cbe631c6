package types

import (
	"fmt"
	"strings"
)

// Base identifies the carrier set of a type.
type Base int

const (
	// BaseAny is the lattice top: every value inhabits it.
	BaseAny Base = iota

	// BaseInt is the set of integers.
	BaseInt

	// BaseList is the set of homogeneous integer lists.
	BaseList
)

// Sign is the sign refinement family. For lists it applies elementwise.
type Sign int

const (
	SignAny Sign = iota
	SignNonNegative
	SignPositive
	SignNegative
)

// Parity is the parity refinement family. For lists it applies elementwise.
type Parity int

const (
	ParityAny Parity = iota
	ParityEven
	ParityOdd
)

// Type is a refinement type in normalized form: a base tag plus at most
// one refinement per family. Scalar families (sign, parity, divisor,
// multiple, range) constrain the integer itself for BaseInt and every
// element for BaseList; the length and sortedness families apply to
// BaseList only. BaseAny carries no refinements.
//
// The bottom element is not representable; operations that can produce a
// contradiction return an ok flag instead.
type Type struct {
	Base   Base
	Sign   Sign
	Parity Parity

	// DivisorOf, when set, requires the value to evenly divide *DivisorOf.
	// Integer types only.
	DivisorOf *int

	// MultipleOf, when set, requires the value (each element for lists)
	// to be a multiple of *MultipleOf.
	MultipleOf *int

	// Lo and Hi bound the value (each element for lists) inclusively.
	Lo *int
	Hi *int

	// LenExact pins the list length; LenAtLeast lower-bounds it.
	LenExact   *int
	LenAtLeast int

	// Sorted requires the list to be nondecreasing.
	Sorted bool
}

// Any returns the lattice top.
func Any() Type { return Type{Base: BaseAny} }

// IntType returns the unrefined integer type.
func IntType() Type { return Type{Base: BaseInt} }

// ListType returns the unrefined integer-list type.
func ListType() Type { return Type{Base: BaseList} }

// IsAny reports whether t is the lattice top.
func (t Type) IsAny() bool {
	return t.Equal(Any())
}

// MinLen returns the tightest known lower bound on list length.
func (t Type) MinLen() int {
	if t.LenExact != nil {
		return *t.LenExact
	}
	return t.LenAtLeast
}

// Equal reports structural equality of normalized types.
func (t Type) Equal(other Type) bool {
	return t.Base == other.Base &&
		t.Sign == other.Sign &&
		t.Parity == other.Parity &&
		eqPtr(t.DivisorOf, other.DivisorOf) &&
		eqPtr(t.MultipleOf, other.MultipleOf) &&
		eqPtr(t.Lo, other.Lo) &&
		eqPtr(t.Hi, other.Hi) &&
		eqPtr(t.LenExact, other.LenExact) &&
		t.LenAtLeast == other.LenAtLeast &&
		t.Sorted == other.Sorted
}

// String renders the type as its label list, e.g. "int-list, length-at-least 3".
func (t Type) String() string {
	var parts []string
	switch t.Base {
	case BaseAny:
		return "any"
	case BaseInt:
		parts = append(parts, "int")
	case BaseList:
		parts = append(parts, "int-list")
	}
	switch t.Sign {
	case SignNonNegative:
		parts = append(parts, "non-negative")
	case SignPositive:
		parts = append(parts, "positive")
	case SignNegative:
		parts = append(parts, "negative")
	}
	switch t.Parity {
	case ParityEven:
		parts = append(parts, "even")
	case ParityOdd:
		parts = append(parts, "odd")
	}
	if t.DivisorOf != nil {
		parts = append(parts, fmt.Sprintf("divisor %d", *t.DivisorOf))
	}
	if t.MultipleOf != nil {
		parts = append(parts, fmt.Sprintf("multiple %d", *t.MultipleOf))
	}
	if t.Lo != nil || t.Hi != nil {
		lo, hi := "-inf", "+inf"
		if t.Lo != nil {
			lo = fmt.Sprintf("%d", *t.Lo)
		}
		if t.Hi != nil {
			hi = fmt.Sprintf("%d", *t.Hi)
		}
		parts = append(parts, fmt.Sprintf("between %s %s", lo, hi))
	}
	if t.LenExact != nil {
		parts = append(parts, fmt.Sprintf("length-exact %d", *t.LenExact))
	}
	if t.LenAtLeast > 0 {
		parts = append(parts, fmt.Sprintf("length-at-least %d", t.LenAtLeast))
	}
	if t.Sorted {
		parts = append(parts, "sorted")
	}
	return strings.Join(parts, ", ")
}

// Intersect computes the greatest lower bound of a and b. The second
// result is false when the intersection is the bottom element.
// Intersection is commutative, associative, and idempotent, with Any as
// the identity.
func Intersect(a, b Type) (Type, bool) {
	if a.IsAny() {
		return b, true
	}
	if b.IsAny() {
		return a, true
	}
	if a.Base != b.Base {
		return Type{}, false
	}

	out := Type{Base: a.Base}

	sign, ok := meetSign(a.Sign, b.Sign)
	if !ok {
		return Type{}, false
	}
	out.Sign = sign

	parity, ok := meetParity(a.Parity, b.Parity)
	if !ok {
		return Type{}, false
	}
	out.Parity = parity

	// A common divisor of k1 and k2 divides gcd(k1, k2).
	switch {
	case a.DivisorOf != nil && b.DivisorOf != nil:
		g := gcd(abs(*a.DivisorOf), abs(*b.DivisorOf))
		out.DivisorOf = &g
	case a.DivisorOf != nil:
		out.DivisorOf = a.DivisorOf
	case b.DivisorOf != nil:
		out.DivisorOf = b.DivisorOf
	}

	// A common multiple of m1 and m2 is a multiple of lcm(m1, m2).
	switch {
	case a.MultipleOf != nil && b.MultipleOf != nil:
		l := lcm(abs(*a.MultipleOf), abs(*b.MultipleOf))
		out.MultipleOf = &l
	case a.MultipleOf != nil:
		out.MultipleOf = a.MultipleOf
	case b.MultipleOf != nil:
		out.MultipleOf = b.MultipleOf
	}

	out.Lo = maxPtr(a.Lo, b.Lo)
	out.Hi = minPtr(a.Hi, b.Hi)

	switch {
	case a.LenExact != nil && b.LenExact != nil:
		if *a.LenExact != *b.LenExact {
			return Type{}, false
		}
		out.LenExact = a.LenExact
	case a.LenExact != nil:
		out.LenExact = a.LenExact
	case b.LenExact != nil:
		out.LenExact = b.LenExact
	}
	out.LenAtLeast = a.LenAtLeast
	if b.LenAtLeast > out.LenAtLeast {
		out.LenAtLeast = b.LenAtLeast
	}
	out.Sorted = a.Sorted || b.Sorted

	return normalize(out)
}

// IntersectIntroduce merges refinements from a newly required type into an
// inferred type during wire propagation, discarding the uninformative Any.
func IntersectIntroduce(old, required Type) (Type, bool) {
	if old.IsAny() {
		return required, true
	}
	return Intersect(old, required)
}

// Subtype reports whether every inhabitant of a inhabits b. It is
// reflexive and transitive, and conservative: a false result does not
// imply the inclusion fails semantically.
func Subtype(a, b Type) bool {
	if b.IsAny() {
		return true
	}
	if a.IsAny() {
		return false
	}
	if a.Base != b.Base {
		return false
	}

	if !signImplies(a, b.Sign) {
		return false
	}
	if !parityImplies(a, b.Parity) {
		return false
	}
	if b.MultipleOf != nil && abs(*b.MultipleOf) != 1 {
		if a.MultipleOf == nil || *b.MultipleOf == 0 || *a.MultipleOf%*b.MultipleOf != 0 {
			return false
		}
	}
	// Divisors of j form a subset of divisors of k exactly when j divides k.
	if b.DivisorOf != nil {
		if a.DivisorOf == nil || *a.DivisorOf == 0 || *b.DivisorOf%*a.DivisorOf != 0 {
			return false
		}
	}
	if b.Lo != nil {
		lo, known := effectiveLo(a)
		if !known || lo < *b.Lo {
			return false
		}
	}
	if b.Hi != nil {
		hi, known := effectiveHi(a)
		if !known || hi > *b.Hi {
			return false
		}
	}
	if b.LenExact != nil {
		if a.LenExact == nil || *a.LenExact != *b.LenExact {
			return false
		}
	}
	if a.MinLen() < b.LenAtLeast {
		return false
	}
	if b.Sorted && !a.Sorted {
		return false
	}
	return true
}

// Inhabits reports whether the concrete value v belongs to type t.
func Inhabits(v Value, t Type) bool {
	switch t.Base {
	case BaseAny:
		return true
	case BaseInt:
		if v.Kind != KindInt {
			return false
		}
		return satisfiesScalar(v.Int, t)
	case BaseList:
		if v.Kind != KindList {
			return false
		}
		if t.LenExact != nil && len(v.List) != *t.LenExact {
			return false
		}
		if len(v.List) < t.LenAtLeast {
			return false
		}
		for _, x := range v.List {
			if !satisfiesScalar(x, t) {
				return false
			}
		}
		if t.Sorted {
			for i := 1; i < len(v.List); i++ {
				if v.List[i] < v.List[i-1] {
					return false
				}
			}
		}
		return true
	}
	return false
}

// satisfiesScalar checks the scalar refinement families against one integer.
func satisfiesScalar(x int, t Type) bool {
	switch t.Sign {
	case SignNonNegative:
		if x < 0 {
			return false
		}
	case SignPositive:
		if x <= 0 {
			return false
		}
	case SignNegative:
		if x >= 0 {
			return false
		}
	}
	switch t.Parity {
	case ParityEven:
		if x%2 != 0 {
			return false
		}
	case ParityOdd:
		if x%2 == 0 {
			return false
		}
	}
	if t.DivisorOf != nil && *t.DivisorOf != 0 {
		if x == 0 || *t.DivisorOf%x != 0 {
			return false
		}
	}
	if t.MultipleOf != nil {
		m := *t.MultipleOf
		if m == 0 {
			if x != 0 {
				return false
			}
		} else if x%m != 0 {
			return false
		}
	}
	if t.Lo != nil && x < *t.Lo {
		return false
	}
	if t.Hi != nil && x > *t.Hi {
		return false
	}
	return true
}

// normalize detects contradictions in a merged type. The scalar families
// are checked for joint emptiness; list length constraints are checked
// for consistency. Element-level emptiness only bottoms a list type when
// the length constraints force at least one element.
func normalize(t Type) (Type, bool) {
	if t.Base == BaseAny {
		return Any(), true
	}
	if t.LenExact != nil {
		if *t.LenExact < 0 || *t.LenExact < t.LenAtLeast {
			return Type{}, false
		}
	}

	empty := scalarEmpty(t)
	if t.Base == BaseInt && empty {
		return Type{}, false
	}
	if t.Base == BaseList && empty && t.MinLen() > 0 {
		return Type{}, false
	}
	return t, true
}

// scalarEmpty reports whether no integer satisfies the scalar families of t.
func scalarEmpty(t Type) bool {
	lo, loKnown := effectiveLo(t)
	hi, hiKnown := effectiveHi(t)
	if loKnown && hiKnown && lo > hi {
		return true
	}

	// Divisor constraints have a finite candidate set: the divisors of k
	// and their negations. Enumerate and test each.
	if t.DivisorOf != nil && *t.DivisorOf != 0 {
		k := abs(*t.DivisorOf)
		if k <= 1<<20 {
			for d := 1; d*d <= k; d++ {
				if k%d != 0 {
					continue
				}
				for _, c := range []int{d, -d, k / d, -(k / d)} {
					if satisfiesScalar(c, t) {
						return false
					}
				}
			}
			return true
		}
		return false
	}

	// Bounded ranges of modest width are scanned exhaustively.
	if loKnown && hiKnown && hi-lo <= 4096 {
		for x := lo; x <= hi; x++ {
			if satisfiesScalar(x, t) {
				return false
			}
		}
		return true
	}

	// Multiples of an even base are all even.
	if t.MultipleOf != nil && *t.MultipleOf%2 == 0 && t.Parity == ParityOdd {
		return true
	}

	// A wide or unbounded range with a multiple constraint always contains
	// a multiple on each side far enough out; with bounds, check the first
	// multiple at or above lo.
	if t.MultipleOf != nil && *t.MultipleOf != 0 && loKnown && hiKnown {
		m := abs(*t.MultipleOf)
		first := ceilDiv(lo, m) * m
		if first > hi {
			return true
		}
	}
	return false
}

// effectiveLo folds the sign refinement into the numeric lower bound.
func effectiveLo(t Type) (int, bool) {
	lo, known := 0, false
	if t.Lo != nil {
		lo, known = *t.Lo, true
	}
	switch t.Sign {
	case SignNonNegative:
		if !known || lo < 0 {
			lo, known = 0, true
		}
	case SignPositive:
		if !known || lo < 1 {
			lo, known = 1, true
		}
	}
	return lo, known
}

// effectiveHi folds the sign refinement into the numeric upper bound.
func effectiveHi(t Type) (int, bool) {
	hi, known := 0, false
	if t.Hi != nil {
		hi, known = *t.Hi, true
	}
	if t.Sign == SignNegative {
		if !known || hi > -1 {
			hi, known = -1, true
		}
	}
	return hi, known
}

// signImplies reports whether the sign family of a guarantees want.
func signImplies(a Type, want Sign) bool {
	switch want {
	case SignAny:
		return true
	case SignNonNegative:
		if a.Sign == SignNonNegative || a.Sign == SignPositive {
			return true
		}
		lo, known := effectiveLo(a)
		return known && lo >= 0
	case SignPositive:
		if a.Sign == SignPositive {
			return true
		}
		lo, known := effectiveLo(a)
		return known && lo >= 1
	case SignNegative:
		if a.Sign == SignNegative {
			return true
		}
		hi, known := effectiveHi(a)
		return known && hi <= -1
	}
	return false
}

// parityImplies reports whether the parity family of a guarantees want.
// Multiples of an even base are themselves even.
func parityImplies(a Type, want Parity) bool {
	if want == ParityAny {
		return true
	}
	if a.Parity == want {
		return true
	}
	return want == ParityEven && a.MultipleOf != nil && *a.MultipleOf%2 == 0 && *a.MultipleOf != 0
}

// meetSign intersects two sign refinements.
func meetSign(a, b Sign) (Sign, bool) {
	if a == b || b == SignAny {
		return a, true
	}
	if a == SignAny {
		return b, true
	}
	// Positive is the meet of positive and non-negative; every other
	// mixed pair is contradictory.
	if (a == SignPositive && b == SignNonNegative) || (a == SignNonNegative && b == SignPositive) {
		return SignPositive, true
	}
	return SignAny, false
}

// meetParity intersects two parity refinements.
func meetParity(a, b Parity) (Parity, bool) {
	if a == b || b == ParityAny {
		return a, true
	}
	if a == ParityAny {
		return b, true
	}
	return ParityAny, false
}

func eqPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func maxPtr(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a >= *b {
		return a
	}
	return b
}

func minPtr(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *a <= *b {
		return a
	}
	return b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

// ceilDiv divides rounding toward positive infinity; m must be positive.
func ceilDiv(x, m int) int {
	q := x / m
	if x%m != 0 && x > 0 {
		q++
	}
	return q
}
