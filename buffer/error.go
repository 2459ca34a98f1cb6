package buffer

const (
	ErrOutOfRange      Error = "buffer_out_of_range"
	ErrTooLarge        Error = "buffer_too_large"
	ErrInvalidArgument Error = "buffer_invalid_argument"
)

type Error string

func (o Error) Error() string {
	return string(o)
}
