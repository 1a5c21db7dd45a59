package rdb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSet struct {
	key, value string
	expiry     *int64
}

type recordedHash struct {
	key    string
	fields map[string]string
}

type recorder struct {
	BaseObserver

	startRDB, endRDB int
	dbsStarted       []int
	dbsEnded         []int
	sets             []recordedSet
	hashStarts       []string
	hashFieldCounts  map[string]int
	hashEnds         []string
	currentHash      string
}

func newRecorder() *recorder {
	return &recorder{hashFieldCounts: make(map[string]int)}
}

func (rc *recorder) StartRDB() { rc.startRDB++ }
func (rc *recorder) EndRDB()   { rc.endRDB++ }

func (rc *recorder) StartDatabase(dbNumber int, info DatabaseInfo) {
	rc.dbsStarted = append(rc.dbsStarted, dbNumber)
}

func (rc *recorder) EndDatabase(dbNumber int, info EndInfo) {
	rc.dbsEnded = append(rc.dbsEnded, dbNumber)
}

func (rc *recorder) Set(key, value string, expiry *int64, info StringInfo) {
	rc.sets = append(rc.sets, recordedSet{key, value, expiry})
}

func (rc *recorder) StartHash(key string, length uint64, expiry *int64, info HashInfo) {
	rc.hashStarts = append(rc.hashStarts, key)
	rc.currentHash = key
}

func (rc *recorder) HSet(key, field, value string, info ElementInfo) {
	rc.hashFieldCounts[key]++
}

func (rc *recorder) EndHash(key string) {
	rc.hashEnds = append(rc.hashEnds, key)
}

func len6(n int) []byte { return []byte{byte(n)} }

func rdbHeader() []byte {
	return []byte("REDIS0006")
}

func buildSimpleFile() []byte {
	var buf bytes.Buffer
	buf.Write(rdbHeader())
	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(0))

	buf.WriteByte(byte(TypeString))
	buf.Write(len6(3))
	buf.WriteString("foo")
	buf.Write(len6(3))
	buf.WriteString("bar")

	buf.WriteByte(byte(TypeHash))
	buf.Write(len6(1))
	buf.WriteString("h")
	buf.Write(len6(2))
	buf.Write(len6(1))
	buf.WriteString("a")
	buf.Write(len6(1))
	buf.WriteString("1")
	buf.Write(len6(1))
	buf.WriteString("b")
	buf.Write(len6(1))
	buf.WriteString("2")

	buf.WriteByte(byte(opCodeEOF))
	return buf.Bytes()
}

func TestParse_BasicKeysAndEventCounts(t *testing.T) {
	rc := newRecorder()
	err := Parse(bytes.NewReader(buildSimpleFile()), rc, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, rc.startRDB)
	assert.Equal(t, 1, rc.endRDB)
	assert.Equal(t, []int{0}, rc.dbsStarted)
	assert.Equal(t, []int{0}, rc.dbsEnded)

	require.Len(t, rc.sets, 1)
	assert.Equal(t, "foo", rc.sets[0].key)
	assert.Equal(t, "bar", rc.sets[0].value)
	assert.Nil(t, rc.sets[0].expiry)

	assert.Equal(t, []string{"h"}, rc.hashStarts)
	assert.Equal(t, []string{"h"}, rc.hashEnds)
	assert.Equal(t, 2, rc.hashFieldCounts["h"])
}

func TestParse_BadMagicRejected(t *testing.T) {
	data := append([]byte("WRONG0006"), byte(opCodeEOF))
	err := Parse(bytes.NewReader(data), newRecorder(), Options{})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindBadMagic, pe.Kind)
}

func TestParse_ExpiryDoesNotLeakAcrossSelectDB(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rdbHeader())

	// db0: a key with a seconds-resolution expiry.
	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(0))
	buf.WriteByte(byte(opCodeExpireTime))
	buf.Write([]byte{0x10, 0x00, 0x00, 0x00}) // 16 unix seconds, little-endian
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(3))
	buf.WriteString("exp")
	buf.Write(len6(1))
	buf.WriteString("v")

	// db1: a key with no expiry at all.
	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(1))
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(5))
	buf.WriteString("noexp")
	buf.Write(len6(2))
	buf.WriteString("v2")

	buf.WriteByte(byte(opCodeEOF))

	rc := newRecorder()
	err := Parse(bytes.NewReader(buf.Bytes()), rc, Options{})
	require.NoError(t, err)

	require.Len(t, rc.sets, 2)
	require.NotNil(t, rc.sets[0].expiry)
	assert.Equal(t, int64(16), *rc.sets[0].expiry)
	assert.Nil(t, rc.sets[1].expiry)
}

func TestParse_ExpireTimeMSConvertsToSeconds(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rdbHeader())
	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(0))
	buf.WriteByte(byte(opCodeExpireTimeMS))
	msBytes := make([]byte, 8)
	msBytes[0] = 0x88 // 5000 ms little-endian (0x1388)
	msBytes[1] = 0x13
	buf.Write(msBytes) // 5000 ms == 5 seconds
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(1))
	buf.WriteString("k")
	buf.Write(len6(1))
	buf.WriteString("v")
	buf.WriteByte(byte(opCodeEOF))

	rc := newRecorder()
	err := Parse(bytes.NewReader(buf.Bytes()), rc, Options{})
	require.NoError(t, err)
	require.Len(t, rc.sets, 1)
	require.NotNil(t, rc.sets[0].expiry)
	assert.Equal(t, int64(5), *rc.sets[0].expiry)
}

func TestParse_DBFilterExcludesOtherDatabases(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rdbHeader())

	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(0))
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(1))
	buf.WriteString("a")
	buf.Write(len6(1))
	buf.WriteString("1")

	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(1))
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(1))
	buf.WriteString("b")
	buf.Write(len6(1))
	buf.WriteString("2")

	buf.WriteByte(byte(opCodeEOF))

	rc := newRecorder()
	err := Parse(bytes.NewReader(buf.Bytes()), rc, Options{Filters: Filters{DBs: []int{1}}})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, rc.dbsStarted)
	require.Len(t, rc.sets, 1)
	assert.Equal(t, "b", rc.sets[0].key)
}

func TestParse_RawSpansReconstructKeyValueBytes(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(opCodeSelectDB))
	buf.Write(len6(0))
	buf.WriteByte(byte(TypeString))
	buf.Write(len6(3))
	buf.WriteString("foo")
	buf.Write(len6(3))
	buf.WriteString("bar")
	payload := buf.Bytes()

	var full bytes.Buffer
	full.Write(rdbHeader())
	full.Write(payload)
	full.WriteByte(byte(opCodeEOF))

	var spans rawSpanObserver
	err := Parse(bytes.NewReader(full.Bytes()), &spans, Options{})
	require.NoError(t, err)

	reconstructed := concatBytes(spans.spans...)
	assert.Equal(t, payload, reconstructed)
}

// rawSpanObserver records every raw byte span handed to it, in event
// order, to verify that the file can be reconstructed byte-for-byte.
type rawSpanObserver struct {
	BaseObserver
	spans [][]byte
}

func (s *rawSpanObserver) StartDatabase(dbNumber int, info DatabaseInfo) {
	s.spans = append(s.spans, info.OrigDBNumber)
}

func (s *rawSpanObserver) Set(key, value string, expiry *int64, info StringInfo) {
	s.spans = append(s.spans, info.OrigDataType, info.OrigKey, info.OrigVal)
}
