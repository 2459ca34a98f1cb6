package config

const (
	ErrUnknownMode  Error = "unknown_storage_mode"
	ErrInvalidValue Error = "invalid_value"
)

type Error string

func (o Error) Error() string {
	return string(o)
}
