package storages

import (
	"sync"

	"github.com/7phs/binbuf/buffer"
)

// Buffers grown past this factor of the initial size are dropped instead of
// being returned to the pool.
const maxPooledGrowth = 4

type BufferPool interface {
	Get() *buffer.HeapBuffer
	Put(buf *buffer.HeapBuffer)
}

type MemoryPool struct {
	pool  sync.Pool
	limit int
}

func NewMemoryPool(sz int) (*MemoryPool, error) {
	if _, err := buffer.AllocateSize(sz); err != nil {
		return nil, err
	}

	limit := maxPooledGrowth * sz
	if limit < buffer.DefaultSize {
		limit = buffer.DefaultSize
	}

	return &MemoryPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf, _ := buffer.AllocateSize(sz)
				return buf
			},
		},
		limit: limit,
	}, nil
}

func (o *MemoryPool) Get() *buffer.HeapBuffer {
	buf := o.pool.Get().(*buffer.HeapBuffer)
	buf.Clear()

	return buf
}

func (o *MemoryPool) Put(buf *buffer.HeapBuffer) {
	if buf == nil || buf.Size() > o.limit {
		return
	}

	o.pool.Put(buf)
}
