// Package dispatch implements the line-framed JSON request loop: one
// JSON request object per input line, one JSON response value per output
// line. No request error is fatal to the loop; diagnostics go to the
// logger, never the response stream.
package dispatch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/eval"
	"github.com/lucasem/list-routines/pkg/gen"
	"github.com/lucasem/list-routines/pkg/library"
	"github.com/lucasem/list-routines/pkg/rng"
	"github.com/lucasem/list-routines/pkg/types"
)

var log = commonlog.GetLogger("list-routines.dispatch")

// maxRequestBytes bounds a single framed request line.
const maxRequestBytes = 1 << 20

// Request is one framed request. Input defaults to the empty list and
// Params to the empty object.
type Request struct {
	Op      string          `json:"op"`
	Routine string          `json:"routine"`
	Input   json.RawMessage `json:"input"`
	Params  map[string]any  `json:"params"`
}

// Server resolves framed requests against the subroutine library. All
// randomness (the generate op) draws from a single process-wide RNG.
type Server struct {
	rnd *rng.RNG
}

// NewServer creates a dispatcher around the given RNG.
func NewServer(rnd *rng.RNG) *Server {
	return &Server{rnd: rnd}
}

// Serve reads framed requests from r until end-of-input, writing one
// response line per request to w. Malformed requests and unknown ops
// yield null responses; only I/O failures end the loop early.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := s.handle(line)

		data, err := json.Marshal(resp)
		if err != nil {
			log.Errorf("encoding response: %v", err)
			data = []byte("null")
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flushing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// handle resolves one framed request to its JSON-encodable response.
func (s *Server) handle(line []byte) any {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		log.Warningf("malformed request: %v", err)
		return nil
	}

	input := types.ListValue(nil)
	if len(req.Input) > 0 {
		if err := input.UnmarshalJSON(req.Input); err != nil {
			log.Warningf("malformed input: %v", err)
			return nil
		}
	}

	switch req.Op {
	case "validate":
		_, tv, err := check.CheckString(req.Routine)
		if err != nil {
			log.Infof("validate %q: %v", req.Routine, err)
			return false
		}
		return check.CheckInput(tv, input)

	case "evaluate":
		r, tv, err := check.CheckString(req.Routine)
		if err != nil {
			log.Infof("evaluate %q: %v", req.Routine, err)
			return nil
		}
		out, err := eval.Evaluate(r, tv, input)
		if err != nil {
			log.Infof("evaluate %q on %s: %v", req.Routine, input, err)
			return nil
		}
		return out

	case "examples":
		r, tv, err := check.CheckString(req.Routine)
		if err != nil {
			log.Infof("examples %q: %v", req.Routine, err)
			return nil
		}
		d := library.Get(r.Nodes[0].Name)
		examples := make([]types.Value, 0, len(d.Examples))
		for _, ex := range d.Examples {
			if types.Inhabits(ex, tv[0]) {
				examples = append(examples, ex)
			}
		}
		return examples

	case "generate":
		r, tv, err := check.CheckString(req.Routine)
		if err != nil {
			log.Infof("generate %q: %v", req.Routine, err)
			return []gen.Pair{}
		}
		opts := gen.DefaultOptions()
		if count, ok := req.Params["count"].(float64); ok && count > 0 {
			opts.Count = int(count)
		}
		pairs, err := gen.Examples(r, tv, opts, s.rnd)
		if err != nil {
			log.Warningf("generate %q: %v", req.Routine, err)
			return []gen.Pair{}
		}
		return pairs

	default:
		log.Warningf("unknown op %q", req.Op)
		return nil
	}
}
