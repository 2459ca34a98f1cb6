// Package buffer provides a growable, cursor-addressed byte container with
// big-endian encoding of fixed-width numeric values.
//
// A buffer tracks three positions: the cursor (Index), the high-water mark of
// written bytes (Capacity) and the length of the backing storage (Size).
// Reads never go past Capacity, writes grow the storage when needed.
package buffer

const (
	// DefaultSize is the backing length used by Allocate and Wrap.
	DefaultSize = 1024
	// MaxSize bounds the backing storage of a single buffer.
	MaxSize = 1<<31 - 1
)

type Buffer interface {
	Duplicate() Buffer

	Index() int
	Size() int
	Capacity() int
	ReadableBytes() int
	WriteableBytes() int

	SeekSet(off int) error
	SeekCur(delta int) error
	SeekEnd(delta int) error
	SkipBytes(n int) error
	MarkIndex()
	Reset()
	Rewind()

	ReadByte() (byte, error)
	ReadChar() (rune, error)
	ReadChars(n int) ([]rune, error)
	ReadShort() (int16, error)
	ReadInt() (int32, error)
	ReadLong() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	ReadBytes(n int) ([]byte, error)
	ReadBytesTo(dst []byte, off, n int) (int, error)

	WriteByte(c byte) error
	WriteChar(c rune) error
	WriteChars(chars []rune) error
	WriteShort(v int16) error
	WriteInt(v int32) error
	WriteLong(v int64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error
	WriteBytes(src []byte) error
	WriteBytesRange(src []byte, off, n int) error

	Compact()
	ToByteArray() []byte
	Clear()
}

func checkRange(off, n, length int) error {
	if off < 0 || n < 0 || off > length-n {
		return ErrInvalidArgument
	}

	return nil
}
