package storages

import (
	"context"
	"time"

	"github.com/7phs/binbuf/internal/config"
	"github.com/minio/highwayhash"
)

var (
	_ Storages = (*InMemStorages)(nil)
)

// Storages is the key-value surface served over HTTP. Keys are arbitrary
// bytes, values are stored with an expiration of now plus the configured
// lifetime and Get reports ErrKeyExpired once it has passed.
type Storages interface {
	ID() string
	Add(key, body []byte) error
	Get(key []byte) ([]byte, error)
	Clean(ctx context.Context) error
}

// DataDictionary keeps one record frame per hashed key. A frame is
// [expiration unix nano int64][value length int32][value], big-endian, so
// expiry can be checked without decoding the value. Add fails with
// ErrOutOfLimit when the value does not fit a frame.
type DataDictionary interface {
	Add(key uint64, data []byte, expiration time.Time) error
	Get(key uint64) ([]byte, error)
	Clean(ctx context.Context) error
}

// InMemStorages hashes keys with highwayhash and stamps the expiration from
// the configured TimeSource before delegating to a DataDictionary.
type InMemStorages struct {
	dataDict DataDictionary

	nonce      [32]byte
	expired    time.Duration
	timeSource config.TimeSource
}

func NewInMemStorages(
	config config.Config,
	dataDict DataDictionary,
) (Storages, error) {
	return &InMemStorages{
		dataDict:   dataDict,
		expired:    config.Expiration(),
		timeSource: config.TimeSource(),
	}, nil
}

func (o *InMemStorages) ID() string {
	return "in-memory-storages"
}

func (o *InMemStorages) Add(key, body []byte) error {
	expiration := o.timeSource.Now().Add(o.expired)

	return o.dataDict.Add(o.hash(key), body, expiration)
}

func (o *InMemStorages) Get(key []byte) ([]byte, error) {
	return o.dataDict.Get(o.hash(key))
}

func (o *InMemStorages) Clean(ctx context.Context) error {
	return o.dataDict.Clean(ctx)
}

func (o *InMemStorages) hash(key []byte) uint64 {
	return highwayhash.Sum64(key, o.nonce[:])
}
