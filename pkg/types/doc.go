// Package types implements the refinement type lattice over integers and
// integer lists. A type is a base tag (int, int-list, or any) plus a
// normalized set of refinements drawn from a closed vocabulary. The
// package provides label parsing, intersection, subtyping, inhabitation
// testing, and lowering of output-only tags against an input type.
package types
