package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	for k, v := range env {
		prev, ok := os.LookupEnv(k)
		require.NoError(t, os.Setenv(k, v))

		k := k
		t.Cleanup(func() {
			if ok {
				_ = os.Setenv(k, prev)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestNewConfigFromEnv_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		PORT: "", EXPIRATION: "", MAINTENANCE: "", LOGLEVEL: "", MODE: "", BUFFERSIZE: "",
	})

	conf, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, defaultPort, conf.Port())
	assert.Equal(t, defaultExpiration, conf.Expiration())
	assert.Equal(t, defaultMaintenance, conf.Maintenance())
	assert.Equal(t, LogLevelInfo, conf.LogLevel())
	assert.Equal(t, StorageModeMap, conf.Mode())
	assert.Equal(t, defaultBufferSize, conf.BufferSize())
	assert.NotNil(t, conf.TimeSource())
}

func TestNewConfigFromEnv(t *testing.T) {
	setEnv(t, map[string]string{
		PORT:        "8080",
		EXPIRATION:  "1m",
		MAINTENANCE: "5s",
		LOGLEVEL:    "debug",
		MODE:        "partitioned",
		BUFFERSIZE:  "256",
	})

	conf, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, conf.Port())
	assert.Equal(t, time.Minute, conf.Expiration())
	assert.Equal(t, 5*time.Second, conf.Maintenance())
	assert.Equal(t, LogLevelDebug, conf.LogLevel())
	assert.Equal(t, StorageModePartitionedMap, conf.Mode())
	assert.Equal(t, 256, conf.BufferSize())
}

func TestNewConfigFromEnv_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		err  error
	}{
		{name: "port", env: map[string]string{PORT: "port"}},
		{name: "expiration", env: map[string]string{EXPIRATION: "forever"}},
		{name: "mode", env: map[string]string{MODE: "btree"}, err: ErrUnknownMode},
		{name: "buffer size", env: map[string]string{BUFFERSIZE: "-1"}, err: ErrInvalidValue},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			setEnv(t, tc.env)

			_, err := NewConfigFromEnv()
			require.Error(t, err)

			if tc.err != nil {
				assert.Equal(t, tc.err, err)
			}
		})
	}
}
