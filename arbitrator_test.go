package gxbridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArbitrator(t *testing.T, primary, staging int) *Arbitrator {
	t.Helper()
	a, err := NewArbitrator(make([]byte, primary), make([]byte, staging))
	require.NoError(t, err)
	return a
}

func drainAll(a *Arbitrator) []byte {
	dst := make([]byte, a.primary.Cap())
	n, _ := a.Drain(dst)
	return dst[:n]
}

func TestArbitratorRejectsBadStorage(t *testing.T) {
	_, err := NewArbitrator(make([]byte, 1), make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewArbitrator(make([]byte, 8), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProduceCommitsToPrimary(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	assert.Equal(t, 0, a.Produce([]byte("abc")))
	p, s := a.Buffered()
	assert.Equal(t, 3, p)
	assert.Equal(t, 0, s)
	assert.Equal(t, []byte("abc"), drainAll(a))
}

func TestProduceStagesWhileLocked(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	require.Equal(t, 0, a.Produce([]byte("x")))

	a.mu.Lock()
	done := make(chan struct{})
	go func() {
		a.Produce([]byte("s1"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Produce blocked on a held lock")
	}
	assert.Equal(t, 2, a.staging.Len())
	assert.Equal(t, 1, a.primary.Len())
	a.mu.Unlock()
	assert.Equal(t, uint64(1), a.Staged())

	a.Produce([]byte("b1"))
	p, s := a.Buffered()
	assert.Equal(t, 5, p)
	assert.Equal(t, 0, s)
	assert.Equal(t, []byte("xs1b1"), drainAll(a))
}

func TestProduceKeepsStagedBurstsInOrder(t *testing.T) {
	a := newTestArbitrator(t, 16, 8)
	a.mu.Lock()
	a.Produce([]byte("ab"))
	a.Produce([]byte("cd"))
	a.mu.Unlock()
	a.Produce([]byte("ef"))
	assert.Equal(t, []byte("abcdef"), drainAll(a))
}

func TestProduceOverflowKeepsNewest(t *testing.T) {
	const capacity, extra = 8, 5
	data := make([]byte, capacity+extra)
	for i := range data {
		data[i] = byte(i)
	}

	t.Run("one burst", func(t *testing.T) {
		a := newTestArbitrator(t, capacity, 4)
		assert.Equal(t, extra, a.Produce(data))
		assert.Equal(t, data[extra:], drainAll(a))
		assert.Equal(t, uint64(extra), a.Lost())
	})

	t.Run("byte per burst", func(t *testing.T) {
		a := newTestArbitrator(t, capacity, 4)
		for _, c := range data {
			a.Produce([]byte{c})
		}
		assert.Equal(t, data[extra:], drainAll(a))
		assert.Equal(t, uint64(extra), a.Lost())
	})
}

func TestProduceStagingOverflow(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	a.mu.Lock()
	assert.Equal(t, 2, a.Produce([]byte("abcdef")))
	a.mu.Unlock()
	a.Produce(nil)
	assert.Equal(t, []byte("cdef"), drainAll(a))
	assert.Equal(t, uint64(2), a.Lost())
}

func TestDrainCommitsStaged(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	a.Produce([]byte("ab"))
	a.mu.Lock()
	a.Produce([]byte("cd"))
	a.mu.Unlock()

	n, remaining := a.Drain(make([]byte, 1))
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, remaining)
	p, s := a.Buffered()
	assert.Equal(t, 3, p)
	assert.Equal(t, 0, s)
	assert.Equal(t, []byte("bcd"), drainAll(a))
}

func TestDrainCommitsStagedOverflow(t *testing.T) {
	a := newTestArbitrator(t, 4, 4)
	a.Produce([]byte("abc"))
	a.mu.Lock()
	a.Produce([]byte("de"))
	a.mu.Unlock()
	assert.Equal(t, []byte("bcde"), drainAll(a))
	assert.Equal(t, uint64(1), a.Lost())
}

func TestDrainDefersRemainder(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	a.Produce([]byte("0123456789"))

	dst := make([]byte, 4)
	n, remaining := a.Drain(dst)
	assert.Equal(t, 4, n)
	assert.Equal(t, 6, remaining)
	assert.Equal(t, []byte("0123"), dst[:n])

	n, remaining = a.Drain(make([]byte, 16))
	assert.Equal(t, 6, n)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, uint64(0), a.Lost())
}

func TestDoorbellCoalesces(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	a.Produce([]byte("a"))
	a.Produce([]byte("b"))
	a.Produce([]byte("c"))

	select {
	case <-a.Doorbell():
	default:
		t.Fatal("no wakeup pending")
	}
	select {
	case <-a.Doorbell():
		t.Fatal("wakeups were not coalesced")
	default:
	}
}

func TestArbitratorTruncate(t *testing.T) {
	a := newTestArbitrator(t, 16, 4)
	a.Produce([]byte("abc"))
	a.mu.Lock()
	a.Produce([]byte("de"))
	a.mu.Unlock()

	a.Truncate()
	p, s := a.Buffered()
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, s)

	a.Produce([]byte("z"))
	assert.Equal(t, []byte("z"), drainAll(a))
}
