package config

import (
	"os"
	"strconv"
	"time"
)

const (
	PORT        = "PORT"
	EXPIRATION  = "EXPIRATION"
	MAINTENANCE = "MAINTENANCE"
	LOGLEVEL    = "LOG_LEVEL"
	MODE        = "MODE"
	BUFFERSIZE  = "BUFFER_SIZE"

	defaultPort        = 9889
	defaultExpiration  = 30 * time.Minute
	defaultMaintenance = 10 * time.Minute
	defaultLogLevel    = LogLevelInfo
	defaultMode        = StorageModeMap
	defaultBufferSize  = 4 * 1024
)

type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

type StorageMode string

const (
	StorageModeMap            StorageMode = "map"
	StorageModePartitionedMap StorageMode = "partitioned"
)

type TimeSource interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time {
	return time.Now()
}

type Config interface {
	Port() int
	Expiration() time.Duration
	Maintenance() time.Duration
	LogLevel() LogLevel
	Mode() StorageMode
	BufferSize() int
	TimeSource() TimeSource
}

type EnvConfig struct {
	port        int
	expiration  time.Duration
	maintenance time.Duration
	logLevel    LogLevel
	mode        StorageMode
	bufferSize  int
}

func NewConfigFromEnv() (Config, error) {
	port, err := getIntOr(PORT, defaultPort)
	if err != nil {
		return nil, err
	}

	expiration, err := getDurationOr(EXPIRATION, defaultExpiration)
	if err != nil {
		return nil, err
	}

	maintenance, err := getDurationOr(MAINTENANCE, defaultMaintenance)
	if err != nil {
		return nil, err
	}

	bufferSize, err := getIntOr(BUFFERSIZE, defaultBufferSize)
	if err != nil {
		return nil, err
	}

	if bufferSize < 0 {
		return nil, ErrInvalidValue
	}

	mode := StorageMode(getStringOr(MODE, string(defaultMode)))
	switch mode {
	case StorageModeMap, StorageModePartitionedMap:
	default:
		return nil, ErrUnknownMode
	}

	return &EnvConfig{
		port:        port,
		expiration:  expiration,
		maintenance: maintenance,
		logLevel:    LogLevel(getStringOr(LOGLEVEL, string(defaultLogLevel))),
		mode:        mode,
		bufferSize:  bufferSize,
	}, nil
}

func (o *EnvConfig) Port() int {
	return o.port
}

func (o *EnvConfig) Expiration() time.Duration {
	return o.expiration
}

func (o *EnvConfig) Maintenance() time.Duration {
	return o.maintenance
}

func (o *EnvConfig) LogLevel() LogLevel {
	return o.logLevel
}

func (o *EnvConfig) Mode() StorageMode {
	return o.mode
}

func (o *EnvConfig) BufferSize() int {
	return o.bufferSize
}

func (o *EnvConfig) TimeSource() TimeSource {
	return systemTime{}
}

func getStringOr(key string, defV string) string {
	v := os.Getenv(key)
	if v == "" {
		return defV
	}

	return v
}

func getIntOr(key string, defV int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defV, nil
	}

	return strconv.Atoi(v)
}

func getDurationOr(key string, defV time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defV, nil
	}

	return time.ParseDuration(v)
}
