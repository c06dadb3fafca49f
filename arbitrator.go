package gxbridge

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"sync"
	"sync/atomic"
)

// Arbitrator shares the primary and staging ring buffers between the serial
// receive path, which must never block, and the network drain task.
//
// The primary buffer is guarded by mu. The receive path only ever tries to
// take mu; when the drain task holds it, the burst goes to the staging buffer
// and is moved into the primary buffer, ahead of newer data, the next time
// either side holds the lock.
type Arbitrator struct {
	mu      sync.Mutex
	primary RingBuffer

	// stagingMu guards staging. Holders of mu commit staged bytes under it.
	// The receive path without mu only tries it and counts the burst as lost
	// while it is busy.
	stagingMu sync.Mutex
	staging   RingBuffer
	// pending is set while the staging buffer holds bytes.
	pending atomic.Bool

	doorbell chan struct{}

	lost   atomic.Uint64
	staged atomic.Uint64
}

// NewArbitrator returns an arbitrator using primary and staging as ring storage.
func NewArbitrator(primary, staging []byte) (*Arbitrator, error) {
	a := &Arbitrator{doorbell: make(chan struct{}, 1)}
	if err := a.primary.Init(primary); err != nil {
		return nil, err
	}
	if err := a.staging.Init(staging); err != nil {
		return nil, err
	}
	return a, nil
}

// Produce stores a received burst and wakes the drain task.
// It never blocks and never allocates. The returned value is the number of
// older bytes that had to be discarded to make room.
func (a *Arbitrator) Produce(burst []byte) int {
	lost := 0
	if a.mu.TryLock() {
		lost += a.commitStaged()
		for _, c := range burst {
			if a.primary.Overwrite(c) {
				lost++
			}
		}
		a.mu.Unlock()
	} else {
		a.staged.Add(1)
		if a.stagingMu.TryLock() {
			for _, c := range burst {
				if a.staging.Overwrite(c) {
					lost++
				}
			}
			if a.staging.Len() != 0 {
				a.pending.Store(true)
			}
			a.stagingMu.Unlock()
		} else {
			// Buffers are being reset for a new client.
			lost += len(burst)
		}
	}
	if lost != 0 {
		a.lost.Add(uint64(lost))
	}
	a.ring()
	return lost
}

// commitStaged moves the staged bytes to the end of the primary buffer and
// returns the number of primary bytes discarded for them. mu must be held.
func (a *Arbitrator) commitStaged() int {
	if !a.pending.Load() || !a.stagingMu.TryLock() {
		return 0
	}
	lost := 0
	for {
		c, err := a.staging.Get()
		if err != nil {
			break
		}
		if a.primary.Overwrite(c) {
			lost++
		}
	}
	a.pending.Store(false)
	a.stagingMu.Unlock()
	return lost
}

// ring posts a wakeup. A pending wakeup absorbs the new one.
func (a *Arbitrator) ring() {
	select {
	case a.doorbell <- struct{}{}:
	default:
	}
}

// Doorbell returns the channel the drain task waits on.
func (a *Arbitrator) Doorbell() <-chan struct{} {
	return a.doorbell
}

// Drain moves up to len(dst) bytes from the primary buffer into dst.
// Staged bytes are committed first. It blocks until the lock is available.
// n is the number of bytes copied and remaining the number still queued in
// the primary buffer.
func (a *Arbitrator) Drain(dst []byte) (n, remaining int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if lost := a.commitStaged(); lost != 0 {
		a.lost.Add(uint64(lost))
	}
	n = min(a.primary.Len(), len(dst))
	for i := 0; i < n; i++ {
		dst[i], _ = a.primary.Get()
	}
	return n, a.primary.Len()
}

// Truncate drops everything queued in both buffers.
func (a *Arbitrator) Truncate() {
	a.mu.Lock()
	a.stagingMu.Lock()
	a.primary.Truncate()
	a.staging.Truncate()
	a.pending.Store(false)
	a.stagingMu.Unlock()
	a.mu.Unlock()
}

// Buffered returns the number of queued bytes in the primary and staging buffers.
func (a *Arbitrator) Buffered() (primary, staging int) {
	a.mu.Lock()
	a.stagingMu.Lock()
	primary, staging = a.primary.Len(), a.staging.Len()
	a.stagingMu.Unlock()
	a.mu.Unlock()
	return primary, staging
}

// Lost returns the number of bytes discarded by the overwrite policy.
func (a *Arbitrator) Lost() uint64 {
	return a.lost.Load()
}

// Staged returns the number of bursts that went to the staging buffer.
func (a *Arbitrator) Staged() uint64 {
	return a.staged.Load()
}
