// Package export serializes generated datasets to JSON and renders
// routine DAGs as SVG visualizations.
package export
