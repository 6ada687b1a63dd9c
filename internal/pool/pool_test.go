package pool

import (
	"sync"
	"testing"
)

type item struct {
	value int
	tags  []string
}

func TestPool_Basic(t *testing.T) {
	created := 0
	p := NewPool(func() *item {
		created++
		return &item{value: 42}
	})

	obj := p.Get()
	if obj == nil || obj.value != 42 {
		t.Fatalf("Expected new item with value 42, got %+v", obj)
	}
	p.Put(obj)
	p.Put(nil)

	if created < 1 {
		t.Errorf("Expected factory to be called, got %d", created)
	}
}

func TestPool_WithReset(t *testing.T) {
	p := NewPoolWithReset(
		func() *item { return &item{} },
		func(i *item) {
			i.value = 0
			i.tags = i.tags[:0]
		},
	)

	obj := p.Get()
	obj.value = 7
	obj.tags = append(obj.tags, "a", "b")
	p.Put(obj)

	// sync.Pool may or may not hand the same object back; either way it
	// must come out reset.
	again := p.Get()
	if again.value != 0 || len(again.tags) != 0 {
		t.Errorf("Expected reset item, got %+v", again)
	}
}

func TestPool_Concurrent(t *testing.T) {
	p := NewPoolWithReset(func() *item { return &item{} }, func(i *item) { i.value = 0 })

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				obj := p.Get()
				if obj.value != 0 {
					t.Errorf("Expected reset value, got %d", obj.value)
				}
				obj.value = g*1000 + i
				p.Put(obj)
			}
		}(g)
	}
	wg.Wait()
}

func TestBufferPool_Buckets(t *testing.T) {
	bp := NewBufferPool()

	tests := []struct {
		request int
		minCap  int
	}{
		{1, 64},
		{64, 64},
		{65, 128},
		{300, 512},
		{4096, 4096},
		{5000, 5000},
	}

	for _, tt := range tests {
		buf := bp.Get(tt.request)
		if len(*buf) != 0 {
			t.Errorf("Get(%d): expected empty buffer, got len %d", tt.request, len(*buf))
		}
		if cap(*buf) < tt.minCap {
			t.Errorf("Get(%d): expected cap >= %d, got %d", tt.request, tt.minCap, cap(*buf))
		}
		*buf = append(*buf, "data"...)
		bp.Put(buf)
	}
	bp.Put(nil)
}

func TestBufferPool_ReuseIsEmpty(t *testing.T) {
	bp := NewBufferPool()
	buf := bp.Get(100)
	*buf = append(*buf, "hello"...)
	bp.Put(buf)

	again := bp.Get(100)
	if len(*again) != 0 {
		t.Errorf("Expected reused buffer to be empty, got %q", *again)
	}
}

func TestGlobalPools(t *testing.T) {
	buf := GetBuffer(256)
	if cap(*buf) < 256 {
		t.Errorf("Expected cap >= 256, got %d", cap(*buf))
	}
	PutBuffer(buf)

	s := GetStringSlice()
	if len(*s) != 0 {
		t.Errorf("Expected empty slice, got %v", *s)
	}
	*s = append(*s, "--verbose", "--version")
	PutStringSlice(s)

	s = GetStringSlice()
	if len(*s) != 0 {
		t.Errorf("Expected reset slice, got %v", *s)
	}
	PutStringSlice(s)
}
