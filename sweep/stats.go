package sweep

import "sync/atomic"

// Stats counts invocation outcomes for the whole sweep.
type Stats struct {
	Executed    atomic.Uint64
	Succeeded   atomic.Uint64
	Failed      atomic.Uint64
	StartErrors atomic.Uint64
}
