// Command routinegen generates a routine dataset from a YAML
// configuration: enumerate behaviorally distinct routines, generate
// example pairs for each, and export the result as JSON and per-routine
// SVG visualizations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/engine"
	"github.com/lucasem/list-routines/pkg/export"
)

const version = "1.0.0"

// CLI flags
var (
	configPath = flag.String("config", "", "Path to YAML configuration file (default: built-in config)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	boundFlag  = flag.Int("bound", 0, "Override the enumeration bound from config (0 = use config bound)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("routinegen version %s\n", version)
		os.Exit(0)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	// Color only when stdout is a terminal.
	color.NoColor = color.NoColor || !isatty.IsTerminal(os.Stdout.Fd())

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if err := run(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *boundFlag != 0 {
		cfg.Enumeration.Bound = *boundFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
		fmt.Printf("Enumeration bound: %d (max size %d)\n", cfg.Enumeration.Bound, cfg.Enumeration.MaxSize)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	ds, err := engine.New(cfg).Generate(ctx)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Generated %d routines in %v\n", len(ds.Routines), elapsed)
	}

	baseName := fmt.Sprintf("routines_%d", ds.Seed)

	if *format == "json" || *format == "all" {
		filename := filepath.Join(*outputDir, baseName+".json")
		if err := export.SaveJSONToFile(ds, filename); err != nil {
			return fmt.Errorf("failed to export JSON: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", filename)
		}
	}

	if *format == "svg" || *format == "all" {
		if err := exportSVGs(ds, baseName); err != nil {
			return err
		}
	}

	color.Green("Successfully generated %d routines (seed=%d, id=%s) in %v",
		len(ds.Routines), ds.Seed, ds.ID, elapsed)
	return nil
}

// exportSVGs renders one SVG per generated routine.
func exportSVGs(ds *engine.Dataset, baseName string) error {
	opts := export.DefaultSVGOptions()
	for i, rec := range ds.Routines {
		r, tv, err := check.CheckString(rec.Expr)
		if err != nil {
			return fmt.Errorf("re-checking routine %d: %w", i, err)
		}
		opts.Title = rec.Expr
		filename := filepath.Join(*outputDir, fmt.Sprintf("%s_%03d.svg", baseName, i))
		if err := export.SaveSVGToFile(r, tv, filename, opts); err != nil {
			return fmt.Errorf("failed to export SVG %d: %w", i, err)
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", filename)
		}
	}
	return nil
}
