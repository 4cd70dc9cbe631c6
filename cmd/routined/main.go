// Command routined runs the framed JSON dispatcher: one request object
// per line on standard input, one response value per line on standard
// output. The process exits on end-of-input; request errors never
// terminate it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/dispatch"
	"github.com/lucasem/list-routines/pkg/rng"
)

const version = "1.0.0"

var (
	seedFlag = flag.Uint64("seed", 0, "Seed for the generate op (0 = derive from current time)")
	verbose  = flag.Bool("verbose", false, "Enable debug logging on stderr")
	versionF = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("routined version %s\n", version)
		os.Exit(0)
	}

	// Diagnostics go to stderr; the response stream stays clean.
	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	server := dispatch.NewServer(rng.New(seed, "dispatch", nil))
	if err := server.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
