package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/enumerate"
	"github.com/lucasem/list-routines/pkg/gen"
	"github.com/lucasem/list-routines/pkg/rng"
)

var log = commonlog.GetLogger("list-routines.engine")

// Dataset is the generated artifact: a batch of behaviorally distinct
// routines, each with example input/output pairs.
type Dataset struct {
	// ID uniquely identifies this generation run.
	ID string `json:"id"`

	// Seed is the master seed the run was generated from.
	Seed uint64 `json:"seed"`

	// CreatedAt records when generation finished.
	CreatedAt time.Time `json:"createdAt"`

	// Routines lists the generated routines in enumeration order.
	Routines []Record `json:"routines"`
}

// Record is one generated routine with its inferred input type and
// example pairs.
type Record struct {
	// Expr is the routine in concrete syntax.
	Expr string `json:"expr"`

	// InputType renders the inferred overall input type.
	InputType string `json:"inputType"`

	// Examples holds [input, output] pairs.
	Examples []gen.Pair `json:"examples"`
}

// Engine orchestrates the generation pipeline: enumerate routines, then
// generate example pairs for each surviving routine.
type Engine struct {
	cfg *Config
}

// New creates an engine for the given validated config.
func New(cfg *Config) *Engine {
	return &Engine{cfg: cfg}
}

// Generate runs the pipeline and assembles the dataset artifact.
// Each stage draws from its own seed-derived RNG, so identical configs
// produce identical routines and examples; the dataset ID and CreatedAt
// differ from run to run. Routines whose generator comes back empty
// are dropped with a warning.
func (e *Engine) Generate(ctx context.Context) (*Dataset, error) {
	configHash := e.cfg.Hash()

	enumRNG := rng.New(e.cfg.Seed, "enumerate", configHash)
	enumerator := enumerate.New(enumRNG, e.cfg.Enumeration.MaxSize, e.cfg.Enumeration.RandLimit)
	entries, err := enumerator.Enumerate(ctx, e.cfg.Enumeration.Bound)
	if err != nil {
		return nil, fmt.Errorf("enumerating routines: %w", err)
	}

	exampleRNG := rng.New(e.cfg.Seed, "examples", configHash)
	opts := gen.Options{Count: e.cfg.Examples.Count, Retries: e.cfg.Examples.Retries}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pairs, err := gen.Examples(entry.Routine, entry.Types, opts, exampleRNG)
		if err != nil {
			log.Warningf("dropping routine %s: %v", entry.Routine, err)
			continue
		}
		records = append(records, Record{
			Expr:      entry.Routine.String(),
			InputType: entry.Types[0].String(),
			Examples:  pairs,
		})
	}

	return &Dataset{
		ID:        uuid.New().String(),
		Seed:      e.cfg.Seed,
		CreatedAt: time.Now().UTC(),
		Routines:  records,
	}, nil
}

// Enumerate exposes the enumeration stage alone, for callers that want
// routines with type vectors rather than a finished dataset.
func (e *Engine) Enumerate(ctx context.Context) ([]enumerate.Entry, error) {
	enumRNG := rng.New(e.cfg.Seed, "enumerate", e.cfg.Hash())
	enumerator := enumerate.New(enumRNG, e.cfg.Enumeration.MaxSize, e.cfg.Enumeration.RandLimit)
	return enumerator.Enumerate(ctx, e.cfg.Enumeration.Bound)
}

