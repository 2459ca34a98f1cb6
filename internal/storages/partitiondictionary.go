package storages

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPartitionNum  uint64 = 16
	DefaultPartitionMask uint64 = DefaultPartitionNum - 1
)

var (
	_ DataDictionary = (*PartitionedDictionary)(nil)
)

type PartitionedDictionary struct {
	mask       uint64
	partitions []DataDictionary
}

func NewPartitionedDictionary(
	num uint64,
	mask uint64,
	fabric func() (DataDictionary, error),
) (*PartitionedDictionary, error) {
	if num == 0 || mask+1 != num || num&mask != 0 {
		return nil, ErrInvalidPartitions
	}

	dict := &PartitionedDictionary{
		mask:       mask,
		partitions: make([]DataDictionary, num),
	}

	for i := range dict.partitions {
		partition, err := fabric()
		if err != nil {
			return nil, err
		}

		dict.partitions[i] = partition
	}

	return dict, nil
}

func (o *PartitionedDictionary) Add(key uint64, value []byte, expiration time.Time) error {
	return o.partition(key).Add(key, value, expiration)
}

func (o *PartitionedDictionary) Get(key uint64) ([]byte, error) {
	return o.partition(key).Get(key)
}

func (o *PartitionedDictionary) Clean(ctx context.Context) error {
	wg, ctx := errgroup.WithContext(ctx)

	for i := range o.partitions {
		partition := o.partitions[i]

		wg.Go(func() error {
			return partition.Clean(ctx)
		})
	}

	return wg.Wait()
}

func (o *PartitionedDictionary) partition(key uint64) DataDictionary {
	return o.partitions[key&o.mask]
}
