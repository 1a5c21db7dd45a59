package rdb

import (
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// Filters narrows which databases, keys, and logical types Parse reports
// to the Observer (spec §4.H). A zero-value Filters matches everything.
type Filters struct {
	DBs   []int
	Keys  *regexp.Regexp
	Types []string

	dbSet map[uint64]struct{}
}

// compile precomputes the DB membership set, keyed by an xxhash-64 of
// the database number rather than the number itself, since the set is
// consulted once per SELECTDB opcode and DBs is usually small enough that a plain
// slice scan would be just as fast — xxhash keeps the lookup O(1) for
// files with thousands of selected databases without adding a second
// code path for the common case.
func (f *Filters) compile() {
	if len(f.DBs) == 0 {
		f.dbSet = nil
		return
	}
	f.dbSet = make(map[uint64]struct{}, len(f.DBs))
	for _, db := range f.DBs {
		f.dbSet[hashDBNumber(db)] = struct{}{}
	}
}

func hashDBNumber(db int) uint64 {
	var buf [8]byte
	v := uint64(int64(db))
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}

func (f *Filters) matchDB(db int) bool {
	if f.dbSet == nil {
		return true
	}
	_, ok := f.dbSet[hashDBNumber(db)]
	return ok
}

func (f *Filters) matchKey(key string) bool {
	if f.Keys == nil {
		return true
	}
	return f.Keys.MatchString(key)
}

func (f *Filters) matchType(t Type) bool {
	if len(f.Types) == 0 {
		return true
	}
	logical, ok := logicalTypeOf(t)
	if !ok {
		return false
	}
	for _, want := range f.Types {
		if want == logical {
			return true
		}
	}
	return false
}

// IgnoreFlags skips materializing parts of a value the caller does not
// need, saving allocation and (for LZF-compressed strings) decompression
// work, while the raw byte spans are still always produced. The zero
// value decodes everything; both flags default to false, matching
// redis-rdb-tools' real intent even though its own init_ignore leaves
// real_field defaulted to true by a leftover copy-paste from real_value.
type IgnoreFlags struct {
	IgnoreValue bool
	IgnoreField bool
}
