package buffer

import "encoding/binary"

// Int32Bytes returns the 4-byte big-endian form of v.
func Int32Bytes(v int32) []byte {
	b := make([]byte, intSz)
	binary.BigEndian.PutUint32(b, uint32(v))

	return b
}

// Int64Bytes returns the 8-byte big-endian form of v.
func Int64Bytes(v int64) []byte {
	b := make([]byte, longSz)
	binary.BigEndian.PutUint64(b, uint64(v))

	return b
}

// BytesInt32 decodes the 4 bytes starting at b[off].
func BytesInt32(b []byte, off int) (int32, error) {
	o, err := wrapAt(b, off, intSz)
	if err != nil {
		return 0, err
	}

	return o.ReadInt()
}

// BytesInt64 decodes the 8 bytes starting at b[off].
func BytesInt64(b []byte, off int) (int64, error) {
	o, err := wrapAt(b, off, longSz)
	if err != nil {
		return 0, err
	}

	return o.ReadLong()
}

// wrapAt views b[off:off+n] as a buffer positioned at its first byte. The
// copy is sized exactly to n, decoding a single value needs no spare room.
func wrapAt(b []byte, off, n int) (*HeapBuffer, error) {
	if err := checkRange(off, n, len(b)); err != nil {
		return nil, ErrOutOfRange
	}

	o := &HeapBuffer{
		buf:      make([]byte, n),
		capacity: n,
	}
	copy(o.buf, b[off:off+n])

	return o, nil
}
