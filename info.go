package rdb

// The Info types carry the raw byte spans that produced each decoded
// event (spec §5). Concatenating every span emitted while reading a
// file reproduces that file byte for byte, except for the 9-byte
// magic/version header, which no event reports, and the bytes of keys
// skipped by Filters, which produce no events.

// DatabaseInfo accompanies StartDatabase.
type DatabaseInfo struct {
	OrigDBNumber []byte
}

// EndInfo accompanies EndDatabase.
type EndInfo struct {
	OrigEndDB []byte
}

// StringInfo accompanies Set.
type StringInfo struct {
	OrigExpiry   []byte
	OrigDataType []byte
	OrigKey      []byte
	OrigLength   []byte
	OrigVal      []byte
}

// ListInfo accompanies StartList.
type ListInfo struct {
	OrigExpiry   []byte
	OrigDataType []byte
	OrigKey      []byte
	OrigLength   []byte
}

// SetInfo accompanies StartSet.
type SetInfo struct {
	OrigExpiry   []byte
	OrigDataType []byte
	OrigKey      []byte
	OrigLength   []byte
}

// ZsetInfo accompanies StartSortedSet.
type ZsetInfo struct {
	OrigExpiry   []byte
	OrigDataType []byte
	OrigKey      []byte
	OrigLength   []byte
}

// HashInfo accompanies StartHash.
type HashInfo struct {
	OrigExpiry   []byte
	OrigDataType []byte
	OrigKey      []byte
	OrigLength   []byte
}

// ElementInfo accompanies every per-element callback (RPush, SAdd, ZAdd,
// HSet). Elements decoded from a packed arena (ziplist/zipmap/intset)
// leave these nil: the arena string's raw span, already reported in the
// OrigLength field of the enclosing Start* event's info, reconstructs
// every element byte for byte,
// so a second copy here would be redundant.
type ElementInfo struct {
	OrigField     []byte
	OrigValue     []byte
	OrigRawString []byte
}
