package solver

import "sync"

// barrier is a reusable rendezvous for a fixed party count. The phase
// counter distinguishes consecutive uses so a woken waiter from round k
// cannot slip through round k+1.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	size  int
	count int
	phase uint64
}

func newBarrier(size int) *barrier {
	b := &barrier{size: size}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks until size goroutines have called it for the current phase.
// The mutex handoff doubles as the memory fence between iteration phases:
// anything written before wait by one party is visible after wait to all.
func (b *barrier) wait() {
	b.mu.Lock()
	phase := b.phase
	b.count++
	if b.count == b.size {
		b.count = 0
		b.phase++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for phase == b.phase {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
