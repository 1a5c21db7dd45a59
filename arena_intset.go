package rdb

import "strconv"

// readIntsetEntries decodes an intset arena: a 4-byte encoding width, a
// 4-byte element count, then that many little-endian integers of the
// given width. Entries are read as signed values — an intset stores
// negative members directly, and treating them as unsigned would corrupt
// every negative element.
func (r *byteReader) readIntsetEntries(cb func(string) error) (read int, err error) {
	encoding, _, err := r.readU32LE()
	if err != nil {
		return 0, err
	}
	count, _, err := r.readU32LE()
	if err != nil {
		return 0, err
	}

	for i := uint32(0); i < count; i++ {
		var value int64
		switch encoding {
		case 2:
			v, _, err := r.readI16LE()
			if err != nil {
				return read, err
			}
			value = int64(v)
		case 4:
			v, _, err := r.readI32LE()
			if err != nil {
				return read, err
			}
			value = int64(v)
		case 8:
			v, _, err := r.readI64LE()
			if err != nil {
				return read, err
			}
			value = v
		default:
			return read, newErr(KindCorruptIntset, "", nil)
		}

		if err := cb(strconv.FormatInt(value, 10)); err != nil {
			return read, err
		}
		read++
	}

	return read, nil
}
