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

// RingBuffer is a fixed capacity FIFO of bytes stored in caller supplied memory.
// It is not safe for concurrent use; callers serialize access.
type RingBuffer struct {
	buf []byte
	// Read and write positions, always in [0, len(buf)).
	r, w int
	// Number of unread bytes between r and w.
	n int
}

// NewRingBuffer returns a ring buffer that uses storage as its backing memory.
func NewRingBuffer(storage []byte) (*RingBuffer, error) {
	rb := &RingBuffer{}
	if err := rb.Init(storage); err != nil {
		return nil, err
	}
	return rb, nil
}

// Init binds the buffer to storage and empties it.
// Capacity is len(storage) and it must be at least two.
func (rb *RingBuffer) Init(storage []byte) error {
	if len(storage) < 2 {
		return ErrInvalidArgument
	}
	rb.buf = storage
	rb.Truncate()
	return nil
}

// Truncate drops all unread bytes.
func (rb *RingBuffer) Truncate() {
	rb.r = 0
	rb.w = 0
	rb.n = 0
}

// Len returns the number of unread bytes.
func (rb *RingBuffer) Len() int {
	return rb.n
}

// Cap returns the capacity of the buffer.
func (rb *RingBuffer) Cap() int {
	return len(rb.buf)
}

// Put appends c. ErrFull is returned and nothing changes when the buffer is full.
func (rb *RingBuffer) Put(c byte) error {
	if rb.n == len(rb.buf) {
		return ErrFull
	}
	rb.buf[rb.w] = c
	rb.w++
	if rb.w == len(rb.buf) {
		rb.w = 0
	}
	rb.n++
	return nil
}

// Get removes and returns the oldest byte.
// ErrEmpty is returned and nothing changes when the buffer is empty.
func (rb *RingBuffer) Get() (byte, error) {
	if rb.n == 0 {
		return 0, ErrEmpty
	}
	c := rb.buf[rb.r]
	rb.r++
	if rb.r == len(rb.buf) {
		rb.r = 0
	}
	rb.n--
	return c, nil
}

// Overwrite appends c, discarding the oldest byte first if the buffer is full.
// It returns true when a byte was discarded.
func (rb *RingBuffer) Overwrite(c byte) bool {
	if rb.Put(c) == nil {
		return false
	}
	_, _ = rb.Get()
	_ = rb.Put(c)
	return true
}
