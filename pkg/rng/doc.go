// Package rng provides deterministic random number generation for the
// routine synthesis pipeline. Each stage derives its own seed from the
// master seed so that enumeration and example generation consume
// independent, reproducible sequences.
package rng
