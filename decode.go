package rdb

// decodeLength reads the length/encoding prefix described in spec §4.B.
// It returns the decoded length (or, when encoded is true, the low 6 bits
// of the first byte, reinterpreted as one of the lenEnc* constants), whether
// the byte introduced a special encoding rather than a plain length,
// and the exact bytes consumed.
func (r *byteReader) decodeLength() (length uint64, encoded bool, raw []byte, err error) {
	b0, raw0, err := r.readU8()
	if err != nil {
		return 0, false, nil, err
	}

	switch b0 & lenTagMask {
	case len6Bit:
		return uint64(b0 & 0x3F), false, raw0, nil
	case len14Bit:
		b1, raw1, err := r.readU8()
		if err != nil {
			return 0, false, nil, err
		}
		length = uint64(b0&0x3F)<<8 | uint64(b1)
		return length, false, concatBytes(raw0, raw1), nil
	case len32Bit:
		v, raw1, err := r.readU32BE()
		if err != nil {
			return 0, false, nil, err
		}
		return uint64(v), false, concatBytes(raw0, raw1), nil
	case lenEncodedValue:
		return uint64(b0 & 0x3F), true, raw0, nil
	}

	// unreachable: the switch above is exhaustive over the 2-bit tag.
	return 0, false, nil, newErr(KindTruncated, "", nil)
}
