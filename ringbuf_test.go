package gxbridge

import (
	"testing"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferFIFO(t *testing.T) {
	rb, err := NewRingBuffer(make([]byte, 5))
	require.NoError(t, err)

	in := []byte("hello")
	for _, c := range in {
		require.NoError(t, rb.Put(c))
	}
	assert.Equal(t, 5, rb.Len())

	var out []byte
	for range in {
		c, err := rb.Get()
		require.NoError(t, err)
		out = append(out, c)
	}
	assert.Equal(t, in, out)

	_, err = rb.Get()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, rb.Len())
}

func TestRingBufferPutOnFull(t *testing.T) {
	rb, err := NewRingBuffer(make([]byte, 2))
	require.NoError(t, err)
	require.NoError(t, rb.Put('a'))
	require.NoError(t, rb.Put('b'))

	assert.ErrorIs(t, rb.Put('c'), ErrFull)
	assert.Equal(t, 2, rb.Len())

	c, err := rb.Get()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), c)
}

func TestRingBufferWrapAround(t *testing.T) {
	rb, err := NewRingBuffer(make([]byte, 3))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, rb.Put(byte(i)))
		require.NoError(t, rb.Put(byte(i+100)))
		c, err := rb.Get()
		require.NoError(t, err)
		assert.Equal(t, byte(i), c)
		c, err = rb.Get()
		require.NoError(t, err)
		assert.Equal(t, byte(i+100), c)
	}
	assert.Equal(t, 0, rb.Len())
}

func TestRingBufferOverwriteDiscardsOldest(t *testing.T) {
	rb, err := NewRingBuffer(make([]byte, 3))
	require.NoError(t, err)
	for _, c := range []byte("abc") {
		assert.False(t, rb.Overwrite(c))
	}
	assert.True(t, rb.Overwrite('d'))
	assert.Equal(t, rb.Cap(), rb.Len())

	var out []byte
	for rb.Len() != 0 {
		c, err := rb.Get()
		require.NoError(t, err)
		out = append(out, c)
	}
	assert.Equal(t, []byte("bcd"), out)
}

func TestRingBufferInitRejectsBadStorage(t *testing.T) {
	other, err := NewRingBuffer(make([]byte, 4))
	require.NoError(t, err)
	require.NoError(t, other.Put('x'))

	for _, storage := range [][]byte{nil, {}, make([]byte, 1)} {
		_, err := NewRingBuffer(storage)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorIs(t, err, gxcommon.ErrInvalidArgument)
	}
	assert.Equal(t, 1, other.Len())
}

func TestRingBufferTruncate(t *testing.T) {
	rb, err := NewRingBuffer(make([]byte, 4))
	require.NoError(t, err)
	for _, c := range []byte("abc") {
		require.NoError(t, rb.Put(c))
	}
	_, _ = rb.Get()
	rb.Truncate()
	assert.Equal(t, 0, rb.Len())
	_, err = rb.Get()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, rb.Put('z'))
	c, err := rb.Get()
	require.NoError(t, err)
	assert.Equal(t, byte('z'), c)
}
