// Package jsonmap holds small helpers for working with JSON documents decoded
// into Go's generic representation (map[string]any, []any, float64, string,
// bool and nil).
//
// The MyDataShare API is consumed without a schema layer, so every response
// travels through the core as a Map. The helpers here cover the few operations
// the rest of the module repeats: deep copies that never alias caller-owned
// data, canonical key rendering for numeric identifiers, and list views.
package jsonmap
