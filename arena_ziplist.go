package rdb

import "strconv"

const ziplistEnd uint8 = 0xFF

// readZiplistEntry reads one ziplist entry (spec §4.E) and returns its
// logical value as a decimal string (for integers) or the raw bytes
// (for strings). isEnd reports that the sentinel terminator was read
// instead of an entry.
func (r *byteReader) readZiplistEntry() (value string, isEnd bool, err error) {
	prevLen0, _, err := r.readU8()
	if err != nil {
		return "", false, err
	}
	if prevLen0 == ziplistEnd {
		return "", true, nil
	}
	if prevLen0 == 254 {
		if err = r.skip(4); err != nil {
			return "", false, err
		}
	}

	header, _, err := r.readU8()
	if err != nil {
		return "", false, err
	}

	switch header & 0xC0 {
	case 0x00:
		n := int(header & 0x3F)
		data, err := r.readExact(n)
		if err != nil {
			return "", false, err
		}
		return string(data), false, nil
	case 0x40:
		b1, _, err := r.readU8()
		if err != nil {
			return "", false, err
		}
		n := int(header&0x3F)<<8 | int(b1)
		data, err := r.readExact(n)
		if err != nil {
			return "", false, err
		}
		return string(data), false, nil
	case 0x80:
		n, _, err := r.readU32BE()
		if err != nil {
			return "", false, err
		}
		data, err := r.readExact(int(n))
		if err != nil {
			return "", false, err
		}
		return string(data), false, nil
	}

	switch header {
	case 0xC0:
		v, _, err := r.readI16LE()
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(int(v)), false, nil
	case 0xD0:
		v, _, err := r.readI32LE()
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(int(v)), false, nil
	case 0xE0:
		v, _, err := r.readI64LE()
		if err != nil {
			return "", false, err
		}
		return strconv.FormatInt(v, 10), false, nil
	case 0xF0:
		v, _, err := r.readI24LE()
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(int(v)), false, nil
	case 0xFE:
		v, _, err := r.readI8()
		if err != nil {
			return "", false, err
		}
		return strconv.Itoa(int(v)), false, nil
	}

	if header >= 0xF1 && header <= 0xFD {
		return strconv.Itoa(int(header&0x0F) - 1), false, nil
	}

	return "", false, newErr(KindCorruptZiplist, "", nil)
}

// readZiplistHeader consumes a ziplist's 10-byte header: a 4-byte
// zlbytes total length, a 4-byte zltail offset to the last entry
// (neither of which this decoder needs, since it walks entries
// sequentially and finds the end via the terminator), and a 2-byte
// zllen entry count.
func (r *byteReader) readZiplistHeader() (zllen uint16, err error) {
	if err := r.skip(8); err != nil {
		return 0, err
	}
	n, _, err := r.readU16LE()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// readZiplistEntries drains a ziplist arena (already positioned past its
// 10-byte header, see readZiplistHeader) until the terminator, calling
// cb for each entry. count entries are expected when count >= 0; pass -1
// when the count is not known in advance and the terminator alone ends
// the scan.
func (r *byteReader) readZiplistEntries(count int, cb func(string) error) (read int, err error) {
	for count < 0 || read < count {
		value, isEnd, err := r.readZiplistEntry()
		if err != nil {
			return read, err
		}
		if isEnd {
			if count >= 0 {
				return read, newErr(KindCorruptZiplist, "", nil)
			}
			return read, nil
		}
		if err := cb(value); err != nil {
			return read, err
		}
		read++
	}

	end, _, err := r.readU8()
	if err != nil {
		return read, err
	}
	if end != ziplistEnd {
		return read, newErr(KindCorruptZiplist, "", nil)
	}
	return read, nil
}
