// Package pool provides typed object pools for short-lived buffers used by
// the middleware logger and the argbind error handler.
package pool

import (
	"sync"
)

// Pool is a type-safe wrapper around sync.Pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// NewPool creates a pool that allocates with factory.
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{New: func() any { return factory() }},
	}
}

// NewPoolWithReset creates a pool that calls reset on every object it hands
// out.
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get returns a pooled or new object, reset when a reset function is set.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns obj to the pool. nil is ignored.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// BufferPool pools byte slices in power-of-two capacity buckets from 64 to
// 4096 bytes. Larger requests are allocated and never pooled.
type BufferPool struct {
	buckets []int
	pools   []*Pool[[]byte]
}

// NewBufferPool creates a buffer pool with the default buckets.
func NewBufferPool() *BufferPool {
	bp := &BufferPool{buckets: []int{64, 128, 256, 512, 1024, 2048, 4096}}
	for _, capacity := range bp.buckets {
		bp.pools = append(bp.pools, NewPoolWithReset(
			func() *[]byte {
				buf := make([]byte, 0, capacity)
				return &buf
			},
			func(buf *[]byte) { *buf = (*buf)[:0] },
		))
	}
	return bp
}

// bucket returns the index of the smallest bucket holding n bytes, or -1.
func (bp *BufferPool) bucket(n int) int {
	for i, capacity := range bp.buckets {
		if capacity >= n {
			return i
		}
	}
	return -1
}

// Get returns an empty buffer with capacity of at least minCap.
func (bp *BufferPool) Get(minCap int) *[]byte {
	i := bp.bucket(minCap)
	if i < 0 {
		buf := make([]byte, 0, minCap)
		return &buf
	}
	return bp.pools[i].Get()
}

// Put returns buf to the bucket its capacity fits in full. Buffers that
// grew past the largest bucket or are below the smallest are dropped.
func (bp *BufferPool) Put(buf *[]byte) {
	if buf == nil {
		return
	}
	c := cap(*buf)
	for i := len(bp.buckets) - 1; i >= 0; i-- {
		if c >= bp.buckets[i] {
			if c <= bp.buckets[len(bp.buckets)-1] {
				bp.pools[i].Put(buf)
			}
			return
		}
	}
}

// StringSlicePool pools string slices, e.g. candidate lists.
type StringSlicePool struct {
	*Pool[[]string]
}

// NewStringSlicePool creates a pool of slices with defaultCap capacity.
func NewStringSlicePool(defaultCap int) *StringSlicePool {
	return &StringSlicePool{
		Pool: NewPoolWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) { *slice = (*slice)[:0] },
		),
	}
}

var (
	globalBuffers = NewBufferPool()
	globalStrings = NewStringSlicePool(32)
)

// GetBuffer returns a buffer from the global pool.
func GetBuffer(minCap int) *[]byte { return globalBuffers.Get(minCap) }

// PutBuffer returns a buffer to the global pool.
func PutBuffer(buf *[]byte) { globalBuffers.Put(buf) }

// GetStringSlice returns an empty string slice from the global pool.
func GetStringSlice() *[]string { return globalStrings.Get() }

// PutStringSlice returns a string slice to the global pool.
func PutStringSlice(slice *[]string) { globalStrings.Put(slice) }
