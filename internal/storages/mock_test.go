package storages

import (
	"context"
	"time"

	"github.com/7phs/binbuf/internal/config"
	"github.com/stretchr/testify/mock"
)

var (
	_ DataDictionary = (*mockDataDictionary)(nil)
	_ config.Config  = (*mockConfig)(nil)
)

type constantTime time.Time

func (o constantTime) Now() time.Time {
	return time.Time(o)
}

type mockConfig struct {
	Exp     time.Duration
	TimeS   config.TimeSource
	BufSize int
}

func (o *mockConfig) Port() int {
	return 0
}

func (o *mockConfig) Expiration() time.Duration {
	return o.Exp
}

func (o *mockConfig) Maintenance() time.Duration {
	return 0
}

func (o *mockConfig) LogLevel() config.LogLevel {
	return config.LogLevelDebug
}

func (o *mockConfig) Mode() config.StorageMode {
	return config.StorageModeMap
}

func (o *mockConfig) BufferSize() int {
	return o.BufSize
}

func (o *mockConfig) TimeSource() config.TimeSource {
	return o.TimeS
}

type mockDataDictionary struct {
	mock.Mock
}

func (m *mockDataDictionary) Add(key uint64, data []byte, expiration time.Time) error {
	args := m.Called(key, data, expiration)

	return args.Error(0)
}

func (m *mockDataDictionary) Get(key uint64) ([]byte, error) {
	args := m.Called(key)

	value, _ := args.Get(0).([]byte)

	return value, args.Error(1)
}

func (m *mockDataDictionary) Clean(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
