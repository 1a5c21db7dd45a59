package rdb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZiplistHeader writes the 10-byte zlbytes/zltail/zllen header a
// real ziplist arena always starts with. zlbytes and zltail aren't
// consulted by the decoder, so their values here are arbitrary.
func writeZiplistHeader(buf *bytes.Buffer, zllen uint16) {
	buf.Write([]byte{0, 0, 0, 0}) // zlbytes
	buf.Write([]byte{0, 0, 0, 0}) // zltail
	buf.WriteByte(byte(zllen))
	buf.WriteByte(byte(zllen >> 8))
}

func TestZiplistEntries_StringsAndInts(t *testing.T) {
	var buf bytes.Buffer
	writeZiplistHeader(&buf, 2)
	// entry 1: prevlen=0, 6-bit string length 3, "abc"
	buf.WriteByte(0x00)
	buf.WriteByte(0x03)
	buf.WriteString("abc")
	// entry 2: prevlen=5 (fits in one byte), immediate 4-bit int value 7
	// (encoded as 0xF0 + (7+1) = 0xF8)
	buf.WriteByte(0x05)
	buf.WriteByte(0xF8)
	// terminator
	buf.WriteByte(ziplistEnd)

	r := newByteReader(bytes.NewReader(buf.Bytes()))
	_, err := r.readZiplistHeader()
	require.NoError(t, err)
	var got []string
	n, err := r.readZiplistEntries(-1, func(v string) error {
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"abc", "7"}, got)
}

func TestZiplistEntries_CountMismatchErrors(t *testing.T) {
	var buf bytes.Buffer
	writeZiplistHeader(&buf, 1)
	buf.WriteByte(0x00)
	buf.WriteByte(0x03)
	buf.WriteString("abc")
	buf.WriteByte(ziplistEnd)

	r := newByteReader(bytes.NewReader(buf.Bytes()))
	_, err := r.readZiplistHeader()
	require.NoError(t, err)
	_, err = r.readZiplistEntries(2, func(string) error { return nil })
	require.Error(t, err)
}

func TestZipmapEntries(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(2) // zmlen, unused by the reader itself
	// key "ab" (len 2), value "c" (len 1), free 0
	buf.WriteByte(2)
	buf.WriteString("ab")
	buf.WriteByte(1)
	buf.WriteByte(0)
	buf.WriteString("c")
	buf.WriteByte(255) // terminator

	r := newByteReader(bytes.NewReader(buf.Bytes()))
	if _, _, err := r.readU8(); err != nil { // consume zmlen like dispatch does
		t.Fatal(err)
	}

	type pair struct{ field, value string }
	var got []pair
	n, err := r.readZipmapEntries(func(field, value string) error {
		got = append(got, pair{field, value})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []pair{{"ab", "c"}}, got)
}

func TestZipmapLength_Boundary(t *testing.T) {
	// 253 is still an inline length, not a big-length introducer.
	r := newByteReader(bytes.NewReader([]byte{253}))
	length, isEnd, err := r.readZipmapLength()
	require.NoError(t, err)
	assert.False(t, isEnd)
	assert.Equal(t, 253, length)

	// 254 introduces a 4-byte little-endian length.
	r = newByteReader(bytes.NewReader([]byte{254, 0x00, 0x01, 0x00, 0x00}))
	length, isEnd, err = r.readZipmapLength()
	require.NoError(t, err)
	assert.False(t, isEnd)
	assert.Equal(t, 256, length)

	// 255 terminates.
	r = newByteReader(bytes.NewReader([]byte{255}))
	_, isEnd, err = r.readZipmapLength()
	require.NoError(t, err)
	assert.True(t, isEnd)
}

func TestIntsetEntries_SignedValues(t *testing.T) {
	var buf bytes.Buffer
	// encoding width 2 (int16), count 2: values -1 and 300.
	buf.Write([]byte{2, 0, 0, 0})
	buf.Write([]byte{2, 0, 0, 0})
	buf.Write([]byte{0xFF, 0xFF}) // -1 as int16 LE
	buf.Write([]byte{0x2C, 0x01}) // 300 as int16 LE

	r := newByteReader(bytes.NewReader(buf.Bytes()))
	var got []string
	n, err := r.readIntsetEntries(func(v string) error {
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"-1", "300"}, got)
}
