// Package workers provides utilities for determining worker pool sizes in
// containerized environments.
//
// runtime.NumCPU() reports the host machine's CPU count even when a cgroup
// limit is in place, so worker counts derived from it oversubscribe the
// container. Go 1.19+ sets GOMAXPROCS from the container CPU limit; the
// helpers here derive worker counts from GOMAXPROCS with a per-workload
// multiplier and honor a PARSER_WORKERS environment override.
package workers
