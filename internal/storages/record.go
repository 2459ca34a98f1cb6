package storages

import (
	"time"

	"github.com/7phs/binbuf/buffer"
)

// Frame layout: [expiration unix nano int64][value length int32][value].
const (
	expirationSz  = 8
	valueLenSz    = 4
	frameHeaderSz = expirationSz + valueLenSz
	maxValueSz    = buffer.MaxSize - frameHeaderSz
)

type record struct {
	value      []byte
	expiration time.Time
}

func newRecord(value []byte, expiration time.Time) record {
	return record{
		value:      value,
		expiration: expiration,
	}
}

func (o *record) isExpired(now time.Time) bool {
	return !o.expiration.After(now)
}

func encodeRecord(buf *buffer.HeapBuffer, rec record) ([]byte, error) {
	if len(rec.value) > maxValueSz {
		return nil, ErrOutOfLimit
	}

	buf.Clear()

	if err := buf.WriteLong(rec.expiration.UnixNano()); err != nil {
		return nil, err
	}

	if err := buf.WriteInt(int32(len(rec.value))); err != nil {
		return nil, err
	}

	if err := buf.WriteBytes(rec.value); err != nil {
		return nil, err
	}

	return buf.ToByteArray(), nil
}

// decodeRecord parses a frame produced by encodeRecord. The returned value
// does not alias frame.
func decodeRecord(frame []byte) (record, error) {
	buf := buffer.Wrap(frame)
	buf.Rewind()

	expiration, err := buf.ReadLong()
	if err != nil {
		return record{}, ErrCorruptedRecord
	}

	sz, err := buf.ReadInt()
	if err != nil || sz < 0 || int(sz) != buf.ReadableBytes() {
		return record{}, ErrCorruptedRecord
	}

	value, err := buf.ReadBytes(int(sz))
	if err != nil {
		return record{}, ErrCorruptedRecord
	}

	return newRecord(value, time.Unix(0, expiration)), nil
}

// frameExpiration reads the expiration header without decoding the value.
func frameExpiration(frame []byte) (time.Time, error) {
	ns, err := buffer.BytesInt64(frame, 0)
	if err != nil {
		return time.Time{}, ErrCorruptedRecord
	}

	return time.Unix(0, ns), nil
}
