package rdb

// readZipmapLength reads one zipmap element-length prefix: a value below
// 254 is an inline length, exactly 254 introduces a 4-byte little-endian
// length, and 255 marks the end of the zipmap.
func (r *byteReader) readZipmapLength() (length int, isEnd bool, err error) {
	b, _, err := r.readU8()
	if err != nil {
		return 0, false, err
	}
	switch {
	case b < 254:
		return int(b), false, nil
	case b == 254:
		v, _, err := r.readU32LE()
		if err != nil {
			return 0, false, err
		}
		return int(v), false, nil
	default: // 255
		return 0, true, nil
	}
}

// readZipmapEntries drains a zipmap arena, positioned just past its
// leading zmlen byte, calling cb with each decoded field/value pair.
// Zipmap corruption is reported with the same error kind as ziplist
// corruption since both are legacy packed-list arenas.
func (r *byteReader) readZipmapEntries(cb func(field, value string) error) (read int, err error) {
	for {
		keyLen, isEnd, err := r.readZipmapLength()
		if err != nil {
			return read, err
		}
		if isEnd {
			return read, nil
		}
		key, err := r.readExact(keyLen)
		if err != nil {
			return read, err
		}

		valLen, isEnd, err := r.readZipmapLength()
		if err != nil {
			return read, err
		}
		if isEnd {
			return read, newErr(KindCorruptZiplist, "", nil)
		}
		free, _, err := r.readU8()
		if err != nil {
			return read, err
		}
		value, err := r.readExact(valLen)
		if err != nil {
			return read, err
		}
		if free > 0 {
			if err := r.skip(int(free)); err != nil {
				return read, err
			}
		}

		if err := cb(string(key), string(value)); err != nil {
			return read, err
		}
		read++
	}
}
