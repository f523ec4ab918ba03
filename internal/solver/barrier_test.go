package solver

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBarrierRendezvous(t *testing.T) {
	// No goroutine may enter round k+1 before every goroutine has
	// finished round k.
	const parties, rounds = 8, 50

	b := newBarrier(parties)
	var arrived [rounds]atomic.Int32

	var wg sync.WaitGroup
	var violations atomic.Int32
	for p := 0; p < parties; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				arrived[r].Add(1)
				b.wait()
				if arrived[r].Load() != parties {
					violations.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	require.Zero(t, violations.Load(), "goroutine passed barrier before full rendezvous")
}

func TestBarrierSingleParty(t *testing.T) {
	b := newBarrier(1)
	for i := 0; i < 10; i++ {
		b.wait() // must never block
	}
}

func TestProgressWaitBlocksUntilAdvance(t *testing.T) {
	var w workerState
	w.reset()

	released := make(chan int, 3)
	go func() {
		for row := 1; row <= 3; row++ {
			w.waitFor(row)
			released <- row
		}
	}()

	for row := 1; row <= 3; row++ {
		w.advance(row)
		require.Equal(t, row, <-released)
	}
}

func TestProgressResetRewindsSentinel(t *testing.T) {
	var w workerState
	w.advance(17)
	w.err = 3.5
	w.reset()

	require.Zero(t, w.rowDone.Load())
	require.Zero(t, w.err)
}
