package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	charSz   = 2
	shortSz  = 2
	intSz    = 4
	longSz   = 8
	maxChar  = 0xFFFF
	growRate = 2
)

var (
	_ Buffer        = (*HeapBuffer)(nil)
	_ io.Reader     = (*HeapBuffer)(nil)
	_ io.Writer     = (*HeapBuffer)(nil)
	_ io.WriterTo   = (*HeapBuffer)(nil)
	_ io.Seeker     = (*HeapBuffer)(nil)
	_ io.ByteWriter = (*HeapBuffer)(nil)
	_ fmt.Stringer  = (*HeapBuffer)(nil)
)

// HeapBuffer is a Buffer backed by a byte slice.
//
// It has no internal synchronization: one owner at a time. Sharing a
// HeapBuffer between goroutines requires external locking, a grow during a
// concurrent read is undefined.
//
// Storage past Capacity is always zero, so bytes skipped over with SkipBytes
// or SeekSet read back as zero padding once a later write raises Capacity.
type HeapBuffer struct {
	buf      []byte
	index    int
	capacity int
	mark     int
}

func Allocate() *HeapBuffer {
	return &HeapBuffer{
		buf: make([]byte, DefaultSize),
	}
}

func AllocateSize(size int) (*HeapBuffer, error) {
	if size < 0 || size > MaxSize {
		return nil, ErrTooLarge
	}

	return &HeapBuffer{
		buf: make([]byte, size),
	}, nil
}

// Wrap copies b into a new buffer. The cursor is left at the end of the
// copied content so further writes append.
func Wrap(b []byte) *HeapBuffer {
	sz := DefaultSize
	if len(b) > sz {
		sz = len(b)
	}

	o := &HeapBuffer{
		buf:      make([]byte, sz),
		index:    len(b),
		capacity: len(b),
	}
	copy(o.buf, b)

	return o
}

func WrapRange(b []byte, off, n int) (*HeapBuffer, error) {
	if err := checkRange(off, n, len(b)); err != nil {
		return nil, err
	}

	return Wrap(b[off : off+n]), nil
}

func (o *HeapBuffer) Duplicate() Buffer {
	buf := make([]byte, len(o.buf))
	copy(buf, o.buf)

	return &HeapBuffer{
		buf:      buf,
		index:    o.index,
		capacity: o.capacity,
		mark:     o.mark,
	}
}

func (o *HeapBuffer) Index() int {
	return o.index
}

// Size is the length of the backing storage, not the number of valid bytes.
func (o *HeapBuffer) Size() int {
	return len(o.buf)
}

func (o *HeapBuffer) Capacity() int {
	return o.capacity
}

func (o *HeapBuffer) ReadableBytes() int {
	if o.index > o.capacity {
		return 0
	}

	return o.capacity - o.index
}

func (o *HeapBuffer) WriteableBytes() int {
	return len(o.buf) - o.index
}

// SeekSet moves the cursor to off. Targets outside [0, Size()] fail with
// ErrOutOfRange and leave the cursor where it was.
func (o *HeapBuffer) SeekSet(off int) error {
	if off < 0 || off > len(o.buf) {
		return ErrOutOfRange
	}

	o.index = off

	return nil
}

func (o *HeapBuffer) SeekCur(delta int) error {
	return o.SeekSet(o.index + delta)
}

func (o *HeapBuffer) SeekEnd(delta int) error {
	return o.SeekSet(o.capacity + delta)
}

func (o *HeapBuffer) Seek(offset int64, whence int) (int64, error) {
	if offset > MaxSize || offset < -MaxSize {
		return int64(o.index), ErrOutOfRange
	}

	var err error

	switch whence {
	case io.SeekStart:
		err = o.SeekSet(int(offset))
	case io.SeekCurrent:
		err = o.SeekCur(int(offset))
	case io.SeekEnd:
		err = o.SeekEnd(int(offset))
	default:
		err = ErrInvalidArgument
	}

	return int64(o.index), err
}

// SkipBytes advances the cursor by n without touching the content. Storage is
// grown when the cursor would pass its end; Capacity is left as is.
func (o *HeapBuffer) SkipBytes(n int) error {
	if n < 0 {
		return ErrInvalidArgument
	}

	end := o.index + n
	if end < o.index {
		return ErrTooLarge
	}

	if err := o.ensure(end); err != nil {
		return err
	}

	o.index = end

	return nil
}

func (o *HeapBuffer) MarkIndex() {
	o.mark = o.index
}

func (o *HeapBuffer) Reset() {
	o.index = o.mark
}

func (o *HeapBuffer) Rewind() {
	o.index = 0
}

func (o *HeapBuffer) ReadByte() (byte, error) {
	p, err := o.consume(1)
	if err != nil {
		return 0, err
	}

	return p[0], nil
}

func (o *HeapBuffer) ReadChar() (rune, error) {
	p, err := o.consume(charSz)
	if err != nil {
		return 0, err
	}

	return rune(binary.BigEndian.Uint16(p)), nil
}

func (o *HeapBuffer) ReadChars(n int) ([]rune, error) {
	if n < 0 {
		return nil, ErrInvalidArgument
	}

	if n > MaxSize/charSz {
		return nil, ErrOutOfRange
	}

	p, err := o.consume(n * charSz)
	if err != nil {
		return nil, err
	}

	chars := make([]rune, n)
	for i := range chars {
		chars[i] = rune(binary.BigEndian.Uint16(p[i*charSz:]))
	}

	return chars, nil
}

func (o *HeapBuffer) ReadShort() (int16, error) {
	p, err := o.consume(shortSz)
	if err != nil {
		return 0, err
	}

	return int16(binary.BigEndian.Uint16(p)), nil
}

func (o *HeapBuffer) ReadInt() (int32, error) {
	p, err := o.consume(intSz)
	if err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(p)), nil
}

func (o *HeapBuffer) ReadLong() (int64, error) {
	p, err := o.consume(longSz)
	if err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(p)), nil
}

func (o *HeapBuffer) ReadFloat() (float32, error) {
	p, err := o.consume(intSz)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.BigEndian.Uint32(p)), nil
}

func (o *HeapBuffer) ReadDouble() (float64, error) {
	p, err := o.consume(longSz)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.BigEndian.Uint64(p)), nil
}

// ReadBytes returns a copy of the next n bytes.
func (o *HeapBuffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidArgument
	}

	p, err := o.consume(n)
	if err != nil {
		return nil, err
	}

	b := make([]byte, n)
	copy(b, p)

	return b, nil
}

// ReadBytesTo copies up to n bytes into dst[off:]. It returns the number of
// bytes copied, which is less than n when fewer bytes are readable.
func (o *HeapBuffer) ReadBytesTo(dst []byte, off, n int) (int, error) {
	if err := checkRange(off, n, len(dst)); err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, nil
	}

	readable := o.ReadableBytes()
	if readable == 0 {
		return 0, ErrOutOfRange
	}

	if n > readable {
		n = readable
	}

	copy(dst[off:off+n], o.buf[o.index:])
	o.index += n

	return n, nil
}

func (o *HeapBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if o.ReadableBytes() == 0 {
		return 0, io.EOF
	}

	return o.ReadBytesTo(p, 0, len(p))
}

// WriteTo writes the readable bytes to w and advances the cursor by the
// number of bytes w accepted.
func (o *HeapBuffer) WriteTo(w io.Writer) (int64, error) {
	readable := o.ReadableBytes()
	if readable == 0 {
		return 0, nil
	}

	n, err := w.Write(o.buf[o.index:o.capacity])
	if n < 0 || n > readable {
		panic("buffer: invalid Write count")
	}

	o.index += n

	if err != nil {
		return int64(n), err
	}

	if n != readable {
		return int64(n), io.ErrShortWrite
	}

	return int64(n), nil
}

func (o *HeapBuffer) WriteByte(c byte) error {
	p, err := o.reserve(1)
	if err != nil {
		return err
	}

	p[0] = c

	return nil
}

// WriteChar stores c as a single UTF-16 code unit. Runes above 0xFFFF are
// rejected with ErrInvalidArgument.
func (o *HeapBuffer) WriteChar(c rune) error {
	if c < 0 || c > maxChar {
		return ErrInvalidArgument
	}

	p, err := o.reserve(charSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint16(p, uint16(c))

	return nil
}

func (o *HeapBuffer) WriteChars(chars []rune) error {
	for _, c := range chars {
		if c < 0 || c > maxChar {
			return ErrInvalidArgument
		}
	}

	if len(chars) > MaxSize/charSz {
		return ErrTooLarge
	}

	p, err := o.reserve(len(chars) * charSz)
	if err != nil {
		return err
	}

	for i, c := range chars {
		binary.BigEndian.PutUint16(p[i*charSz:], uint16(c))
	}

	return nil
}

func (o *HeapBuffer) WriteShort(v int16) error {
	p, err := o.reserve(shortSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint16(p, uint16(v))

	return nil
}

func (o *HeapBuffer) WriteInt(v int32) error {
	p, err := o.reserve(intSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint32(p, uint32(v))

	return nil
}

func (o *HeapBuffer) WriteLong(v int64) error {
	p, err := o.reserve(longSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint64(p, uint64(v))

	return nil
}

func (o *HeapBuffer) WriteFloat(v float32) error {
	p, err := o.reserve(intSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint32(p, math.Float32bits(v))

	return nil
}

func (o *HeapBuffer) WriteDouble(v float64) error {
	p, err := o.reserve(longSz)
	if err != nil {
		return err
	}

	binary.BigEndian.PutUint64(p, math.Float64bits(v))

	return nil
}

func (o *HeapBuffer) WriteBytes(src []byte) error {
	p, err := o.reserve(len(src))
	if err != nil {
		return err
	}

	copy(p, src)

	return nil
}

func (o *HeapBuffer) WriteBytesRange(src []byte, off, n int) error {
	if err := checkRange(off, n, len(src)); err != nil {
		return err
	}

	return o.WriteBytes(src[off : off+n])
}

func (o *HeapBuffer) Write(p []byte) (int, error) {
	if err := o.WriteBytes(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Compact shrinks the storage to exactly Capacity bytes. Cursor and mark
// past the new end are moved back to it.
func (o *HeapBuffer) Compact() {
	if len(o.buf) > o.capacity {
		buf := make([]byte, o.capacity)
		copy(buf, o.buf[:o.capacity])
		o.buf = buf
	}

	if o.index > o.capacity {
		o.index = o.capacity
	}

	if o.mark > o.capacity {
		o.mark = o.capacity
	}
}

func (o *HeapBuffer) ToByteArray() []byte {
	b := make([]byte, o.capacity)
	copy(b, o.buf[:o.capacity])

	return b
}

// Clear empties the buffer and keeps the storage for reuse.
func (o *HeapBuffer) Clear() {
	p := o.buf[:o.capacity]
	for i := range p {
		p[i] = 0
	}

	o.index = 0
	o.capacity = 0
	o.mark = 0
}

func (o *HeapBuffer) String() string {
	return fmt.Sprintf("HeapBuffer(index=%d, capacity=%d, size=%d, mark=%d)",
		o.index, o.capacity, len(o.buf), o.mark)
}

// consume returns the next n valid bytes and moves the cursor past them.
func (o *HeapBuffer) consume(n int) ([]byte, error) {
	if n > o.ReadableBytes() {
		return nil, ErrOutOfRange
	}

	p := o.buf[o.index : o.index+n]
	o.index += n

	return p, nil
}

// reserve grows the storage to hold n more bytes at the cursor, moves the
// cursor past them and raises Capacity when needed.
func (o *HeapBuffer) reserve(n int) ([]byte, error) {
	end := o.index + n
	if end < o.index {
		return nil, ErrTooLarge
	}

	if err := o.ensure(end); err != nil {
		return nil, err
	}

	p := o.buf[o.index:end]
	o.index = end

	if end > o.capacity {
		o.capacity = end
	}

	return p, nil
}

func (o *HeapBuffer) ensure(end int) error {
	if end <= len(o.buf) {
		return nil
	}

	if end < 0 || end > MaxSize {
		return ErrTooLarge
	}

	sz := MaxSize
	if end <= MaxSize/growRate {
		sz = end * growRate
	}

	buf := make([]byte, sz)
	copy(buf, o.buf[:o.capacity])
	o.buf = buf

	return nil
}
