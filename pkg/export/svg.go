package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/lucasem/list-routines/pkg/check"
	"github.com/lucasem/list-routines/pkg/routine"
	"github.com/lucasem/list-routines/pkg/types"
)

// SVGOptions configures SVG visualization export.
type SVGOptions struct {
	Width      int    // Canvas width in pixels
	Height     int    // Canvas height in pixels
	ShowTypes  bool   // Show inferred types under each node
	NodeRadius int    // Radius of node circles (default: 26)
	EdgeWidth  int    // Width of wire lines (default: 2)
	Margin     int    // Canvas margin in pixels (default: 60)
	Title      string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1100,
		Height:     360,
		ShowTypes:  true,
		NodeRadius: 26,
		EdgeWidth:  2,
		Margin:     60,
		Title:      "Routine DAG",
	}
}

// node colors by the base type flowing out of the node.
const (
	colorBackground = "#1a1a2e"
	colorInput      = "#e9c46a"
	colorIntNode    = "#2a9d8f"
	colorListNode   = "#457b9d"
	colorEdge       = "#8d99ae"
	colorStatic     = "#adb5bd"
	colorText       = "#f1faee"
)

// ExportSVG renders a checked routine as a layered left-to-right DAG:
// the overall input on the left, one column per node, dynamic wires as
// edges (arcs when they skip columns), static wires as labels.
func ExportSVG(r *routine.Routine, tv check.TypeVector, opts SVGOptions) ([]byte, error) {
	if r == nil || r.Len() == 0 {
		return nil, fmt.Errorf("routine cannot be empty")
	}
	if len(tv) != r.Len()+1 {
		return nil, fmt.Errorf("type vector length %d does not match routine size %d", len(tv), r.Len())
	}

	if opts.Width <= 0 {
		opts.Width = 1100
	}
	if opts.Height <= 0 {
		opts.Height = 360
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 26
	}
	if opts.EdgeWidth <= 0 {
		opts.EdgeWidth = 2
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+colorBackground)

	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2,
			opts.Title, "fill:"+colorText+";font-size:16px;font-family:monospace")
	}

	xs := columnXs(r.Len()+1, opts)
	midY := opts.Height / 2

	drawWires(canvas, r, xs, midY, opts)
	drawNodes(canvas, r, tv, xs, midY, opts)

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders the routine and writes the SVG to path.
func SaveSVGToFile(r *routine.Routine, tv check.TypeVector, path string, opts SVGOptions) error {
	data, err := ExportSVG(r, tv, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// columnXs spaces m columns evenly between the margins.
func columnXs(m int, opts SVGOptions) []int {
	xs := make([]int, m)
	span := opts.Width - 2*opts.Margin
	step := 0
	if m > 1 {
		step = span / (m - 1)
	}
	for i := range xs {
		xs[i] = opts.Margin + i*step
	}
	return xs
}

// drawWires renders dynamic wires first so nodes sit on top of them.
// Adjacent references are straight lines; skipping references arc above
// the node row.
func drawWires(canvas *svg.SVG, r *routine.Routine, xs []int, midY int, opts SVGOptions) {
	lineStyle := fmt.Sprintf("stroke:%s;stroke-width:%d;fill:none", colorEdge, opts.EdgeWidth)

	for i, n := range r.Nodes {
		to := i + 1
		for slot, w := range n.Wires {
			if !w.IsDyn() {
				continue
			}
			from := w.Value
			x1, x2 := xs[from], xs[to]
			if to-from == 1 {
				canvas.Line(x1+opts.NodeRadius, midY, x2-opts.NodeRadius, midY, lineStyle)
			} else {
				lift := 40 + 18*(to-from)
				canvas.Qbez(x1, midY-opts.NodeRadius, (x1+x2)/2, midY-lift, x2, midY-opts.NodeRadius, lineStyle)
			}
			if slot > 0 {
				// Mark parameter wires so they read differently from input wires.
				canvas.Text((x1+x2)/2, midY-opts.NodeRadius-6,
					paramName(slot), "fill:"+colorEdge+";font-size:11px;font-family:monospace;text-anchor:middle")
			}
		}
	}
}

// drawNodes renders the input marker and one circle per routine node,
// with static parameter labels and optional inferred types beneath.
func drawNodes(canvas *svg.SVG, r *routine.Routine, tv check.TypeVector, xs []int, midY int, opts SVGOptions) {
	labelStyle := "fill:" + colorText + ";font-size:13px;font-family:monospace;text-anchor:middle"
	typeStyle := "fill:" + colorStatic + ";font-size:11px;font-family:monospace;text-anchor:middle"

	// Overall input.
	canvas.Circle(xs[0], midY, opts.NodeRadius,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", colorInput, colorText))
	canvas.Text(xs[0], midY+4, "input", "fill:"+colorBackground+";font-size:12px;font-family:monospace;text-anchor:middle")
	if opts.ShowTypes {
		canvas.Text(xs[0], midY+opts.NodeRadius+18, tv[0].String(), typeStyle)
	}

	for i, n := range r.Nodes {
		x := xs[i+1]
		canvas.Circle(x, midY, opts.NodeRadius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", nodeColor(tv[i+1]), colorText))
		canvas.Text(x, midY-opts.NodeRadius-10, n.Name, labelStyle)

		if statics := staticLabel(n); statics != "" {
			canvas.Text(x, midY+4, statics, "fill:"+colorBackground+";font-size:11px;font-family:monospace;text-anchor:middle")
		}
		if opts.ShowTypes {
			canvas.Text(x, midY+opts.NodeRadius+18, tv[i+1].String(), typeStyle)
		}
	}
}

// nodeColor picks the fill by the node's output base type.
func nodeColor(t types.Type) string {
	if t.Base == types.BaseList {
		return colorListNode
	}
	return colorIntNode
}

// staticLabel summarizes a node's static parameter wires, e.g. "k=3".
func staticLabel(n routine.Node) string {
	out := ""
	for i, w := range n.Params() {
		if w.IsDyn() {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", paramName(i+1), w.Value)
	}
	return out
}

// paramName maps a wire slot to its canonical parameter name.
func paramName(slot int) string {
	if slot == 2 {
		return "n"
	}
	return "k"
}
