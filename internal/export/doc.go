// Package export implements the multi-stage export pipeline: per-clip
// trimming into concat-friendly segments, manifest construction, final
// concat-and-mux against the external audio track, incremental progress
// reporting, and unconditional workspace cleanup.
package export
