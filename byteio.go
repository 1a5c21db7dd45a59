package rdb

import (
	"encoding/binary"
	"io"
)

// byteReader wraps a blocking byte source and hands back, for every
// primitive it reads, both the decoded value and the exact bytes
// consumed to produce it. Short reads are always fatal (KindTruncated).
type byteReader struct {
	src io.Reader
}

func newByteReader(src io.Reader) *byteReader {
	return &byteReader{src: src}
}

// readExact reads n bytes and returns them; the caller owns the slice.
func (r *byteReader) readExact(n int) ([]byte, error) {
	if n == 0 {
		return emptyBytes, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, newErr(KindTruncated, "", err)
	}
	return buf, nil
}

func (r *byteReader) skip(n int) error {
	_, err := r.readExact(n)
	return err
}

func (r *byteReader) readU8() (uint8, []byte, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, nil, err
	}
	return b[0], b, nil
}

func (r *byteReader) readI8() (int8, []byte, error) {
	v, b, err := r.readU8()
	return int8(v), b, err
}

func (r *byteReader) readU16LE() (uint16, []byte, error) {
	b, err := r.readExact(2)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint16(b), b, nil
}

func (r *byteReader) readI16LE() (int16, []byte, error) {
	v, b, err := r.readU16LE()
	return int16(v), b, err
}

func (r *byteReader) readU32LE() (uint32, []byte, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint32(b), b, nil
}

func (r *byteReader) readI32LE() (int32, []byte, error) {
	v, b, err := r.readU32LE()
	return int32(v), b, err
}

func (r *byteReader) readU32BE() (uint32, []byte, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, nil, err
	}
	return binary.BigEndian.Uint32(b), b, nil
}

func (r *byteReader) readU64LE() (uint64, []byte, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint64(b), b, nil
}

func (r *byteReader) readI64LE() (int64, []byte, error) {
	v, b, err := r.readU64LE()
	return int64(v), b, err
}

// readI24LE reads a 3-byte little-endian two's-complement integer,
// sign-extended to int32.
func (r *byteReader) readI24LE() (int32, []byte, error) {
	b, err := r.readExact(3)
	if err != nil {
		return 0, nil, err
	}
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	v = (v << 8) >> 8 // sign-extend
	return v, b, nil
}

var emptyBytes = make([]byte, 0)

func concatBytes(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
