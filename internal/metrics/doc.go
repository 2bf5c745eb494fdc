// Package metrics defines the Prometheus metrics exported by the media
// parser service and helpers for registering and pre-populating them.
package metrics
