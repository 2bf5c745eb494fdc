// Package memory configures the Go soft memory limit (GOMEMLIMIT) from the
// container memory limit so image decoding and FFmpeg subprocesses have
// headroom outside the Go heap.
package memory
