// Package library holds the subroutine registry and the primitive
// subroutine catalog. Primitives are statically linked and register
// themselves at process start; the registry is immutable afterwards.
package library

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

// ParamSchema declares one subroutine parameter: its canonical name
// ("k" for the first parameter, "n" for the second) and its type labels.
type ParamSchema struct {
	Name   string
	Labels []string
}

// Descriptor is a registered primitive subroutine: typed input and
// output, parameter schema, an evaluator, and input/parameter generators.
//
// Contract:
//   - Evaluate must be total on values inhabiting the declared input type
//     under the given parameters.
//   - GenerateInput proposes candidates independently; callers filter by
//     the inferred input type and may reject any of them.
//   - GenerateParam must produce values inhabiting the slot's labels.
type Descriptor struct {
	Name        string
	Description string

	// Input and Output are raw type labels; labels may reference the
	// symbolic parameters "k" and "n".
	Input  []string
	Output []string

	Params []ParamSchema

	// ExampleParams lists sample parameter bindings (enumeration seeds
	// sample GenerateParam instead); Examples lists pre-declared example
	// inputs.
	ExampleParams []map[string]int
	Examples      []types.Value

	Evaluate      func(in types.Value, params map[string]int) (types.Value, error)
	GenerateInput func(r *rng.RNG, count int, static map[string]int) []types.Value
	GenerateParam func(r *rng.RNG, slot int, limit int) int
}

// NumSlots returns the total number of wire slots: one input slot plus
// one per parameter.
func (d *Descriptor) NumSlots() int {
	return 1 + len(d.Params)
}

// SlotLabels returns the declared type labels for a wire slot: slot 0 is
// the input, slots 1..p the parameters in schema order.
func (d *Descriptor) SlotLabels(slot int) []string {
	if slot == 0 {
		return d.Input
	}
	return d.Params[slot-1].Labels
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Descriptor)
)

// Register adds a subroutine descriptor to the process-wide registry.
// It panics on duplicate names or malformed descriptors: registration
// happens at init time and a bad descriptor is a programming error.
func Register(d *Descriptor) {
	if err := validate(d); err != nil {
		panic(fmt.Sprintf("library: registering %q: %v", d.Name, err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[d.Name]; exists {
		panic(fmt.Sprintf("library: subroutine %q already registered", d.Name))
	}
	registry[d.Name] = d
}

// Get retrieves a registered descriptor by name.
// Returns nil if not found.
func Get(name string) *Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[name]
}

// Names returns all registered subroutine names in lexicographic order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate checks that a descriptor's labels parse and its callbacks are set.
func validate(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("missing name")
	}
	if d.Evaluate == nil || d.GenerateInput == nil {
		return fmt.Errorf("missing evaluator or input generator")
	}
	if len(d.Params) > 0 && d.GenerateParam == nil {
		return fmt.Errorf("parameters declared without a parameter generator")
	}
	if len(d.Params) > 2 {
		return fmt.Errorf("at most two parameters are supported")
	}
	for i, p := range d.Params {
		want := "k"
		if i == 1 {
			want = "n"
		}
		if p.Name != want {
			return fmt.Errorf("parameter %d must be named %q, got %q", i, want, p.Name)
		}
		if _, err := types.Parse(p.Labels, nil); err != nil {
			return fmt.Errorf("parameter %q labels: %w", p.Name, err)
		}
	}
	if _, err := types.Parse(d.Input, nil); err != nil {
		return fmt.Errorf("input labels: %w", err)
	}
	if _, err := types.ParseOutput(d.Output, nil); err != nil {
		return fmt.Errorf("output labels: %w", err)
	}
	return nil
}
