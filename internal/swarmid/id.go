// Package swarmid provides shared identifier generation and geometric
// primitives used by every subsystem of the swarm coordination substrate.
package swarmid

import (
	"fmt"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// seq is a process-wide counter appended to generated IDs so that two
// IDs minted within the same millisecond never collide, per the
// "monotonic-time IDs" re-architecture guidance: compose timestamp with
// an atomic counter rather than trusting clock resolution alone.
var seq uint64

// Generate returns a new opaque, non-empty identifier of the form
// "<prefix>_<monotonic_ms_timestamp>_<seq>". prefix should be a short
// lowercase tag for the entity kind (e.g. "task", "dec", "msg").
func Generate(prefix string) string {
	ms := ulid.Now()
	n := atomic.AddUint64(&seq, 1)
	return fmt.Sprintf("%s_%d_%d", prefix, ms, n)
}
