package storages

import (
	"context"
	"sync"
	"time"

	"github.com/7phs/binbuf/internal/config"
)

const cleanBatchSz = 100

var (
	_ DataDictionary = (*MapDictionary)(nil)
)

type MapDictionary struct {
	sync.Map

	pool       BufferPool
	timeSource config.TimeSource
}

func NewMapDictionary(pool BufferPool, timeSource config.TimeSource) *MapDictionary {
	return &MapDictionary{
		pool:       pool,
		timeSource: timeSource,
	}
}

func (o *MapDictionary) Add(key uint64, value []byte, expiration time.Time) error {
	buf := o.pool.Get()
	defer o.pool.Put(buf)

	frame, err := encodeRecord(buf, newRecord(value, expiration))
	if err != nil {
		return err
	}

	o.Store(key, frame)

	return nil
}

func (o *MapDictionary) Get(key uint64) ([]byte, error) {
	v, ok := o.Load(key)
	if !ok {
		return nil, ErrKeyNotFound
	}

	frame, ok := v.([]byte)
	if !ok {
		return nil, ErrKeyNotFound
	}

	rec, err := decodeRecord(frame)
	if err != nil {
		return nil, err
	}

	if rec.isExpired(o.timeSource.Now()) {
		return nil, ErrKeyExpired
	}

	return rec.value, nil
}

func (o *MapDictionary) Len() int {
	count := 0

	o.Range(func(_, _ interface{}) bool {
		count++
		return true
	})

	return count
}

func (o *MapDictionary) Clean(ctx context.Context) error {
	now := o.timeSource.Now()

	for {
		keys := o.expiredKeys(ctx, now)

		for _, key := range keys {
			o.Delete(key)
		}

		if len(keys) < cleanBatchSz {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (o *MapDictionary) expiredKeys(ctx context.Context, now time.Time) []uint64 {
	keys := make([]uint64, 0, cleanBatchSz)

	o.Range(func(key, value interface{}) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		k, ok := key.(uint64)
		if !ok {
			return true
		}

		frame, ok := value.([]byte)
		if !ok {
			return true
		}

		expiration, err := frameExpiration(frame)
		if err == nil && expiration.After(now) {
			return true
		}

		keys = append(keys, k)

		return len(keys) < cleanBatchSz
	})

	return keys
}
