package solver

import (
	"runtime"
	"sync/atomic"
)

const (
	cacheLineSize = 64

	// spinBudget bounds the busy loop before yielding the processor, so
	// oversubscribed runs do not burn a core per stalled worker.
	spinBudget = 256
)

// workerState holds the per-worker fields that are written every row.
// Each record is padded to a full cache line: rowDone is stored by its
// owner and polled by the right-hand neighbor every row, so two records
// sharing a line would ping the line between cores on every write.
type workerState struct {
	// rowDone is the last row this worker has fully written in the
	// current iteration. 0 is the reset sentinel; interior rows start
	// at 1.
	rowDone atomic.Int64

	// err accumulates this worker's absolute cell deltas for the current
	// iteration. Written only during the sweep phase, read by worker 0
	// only after the post-sweep barrier.
	err float64

	_ [cacheLineSize - 16]byte
}

// advance publishes completion of row. Called only by the owning worker;
// values are monotonic within an iteration.
func (w *workerState) advance(row int) {
	w.rowDone.Store(int64(row))
}

// waitFor blocks until the owner has published completion of row. Called
// only by the owner's right-hand neighbor.
func (w *workerState) waitFor(row int) {
	spins := 0
	for w.rowDone.Load() < int64(row) {
		spins++
		if spins >= spinBudget {
			runtime.Gosched()
			spins = 0
		}
	}
}

// reset rewinds the counter below the first interior row. Each worker
// resets only its own record, and the coordinator orders every reset
// before the barrier that opens the sweep phase; a neighbor can therefore
// never observe a stale high-water mark from the previous iteration.
func (w *workerState) reset() {
	w.err = 0
	w.rowDone.Store(0)
}
