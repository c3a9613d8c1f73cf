// Package exporter writes parsed ticks and per-symbol summaries out as CSV
// reports, streaming row by row so large feed files never materialize in
// memory.
package exporter
