package rdb

import "strconv"

// decodeString reads a length-prefixed, integer-encoded, or LZF-compressed
// string, per spec §4.C. When decodeLogical is false the decoded value is
// not produced (nil) to save the cost of materializing it — dispatchString
// and dispatchHash pass false for string values and hash fields/values
// when the matching IgnoreFlags field is set, and skipValue always does — but the raw span is always
// produced regardless. Hashes stored as a ziplist or zipmap always decode
// their fields and values; IgnoreFlags does not apply to them.
func (r *byteReader) decodeString(decodeLogical bool) (value []byte, raw []byte, err error) {
	length, encoded, lenRaw, err := r.decodeLength()
	if err != nil {
		return nil, nil, err
	}

	if !encoded {
		data, err := r.readExact(int(length))
		if err != nil {
			return nil, nil, err
		}
		raw = concatBytes(lenRaw, data)
		if !decodeLogical {
			return nil, raw, nil
		}
		return data, raw, nil
	}

	switch length {
	case lenEncInt8:
		v, vRaw, err := r.readI8()
		if err != nil {
			return nil, nil, err
		}
		raw = concatBytes(lenRaw, vRaw)
		if !decodeLogical {
			return nil, raw, nil
		}
		return []byte(strconv.Itoa(int(v))), raw, nil
	case lenEncInt16:
		v, vRaw, err := r.readI16LE()
		if err != nil {
			return nil, nil, err
		}
		raw = concatBytes(lenRaw, vRaw)
		if !decodeLogical {
			return nil, raw, nil
		}
		return []byte(strconv.Itoa(int(v))), raw, nil
	case lenEncInt32:
		v, vRaw, err := r.readI32LE()
		if err != nil {
			return nil, nil, err
		}
		raw = concatBytes(lenRaw, vRaw)
		if !decodeLogical {
			return nil, raw, nil
		}
		return []byte(strconv.Itoa(int(v))), raw, nil
	case lenEncLZF:
		clen, clenEnc, clenRaw, err := r.decodeLength()
		if err != nil {
			return nil, nil, err
		}
		_ = clenEnc
		ulen, ulenEnc, ulenRaw, err := r.decodeLength()
		if err != nil {
			return nil, nil, err
		}
		_ = ulenEnc
		compressed, err := r.readExact(int(clen))
		if err != nil {
			return nil, nil, err
		}
		raw = concatBytes(lenRaw, clenRaw, ulenRaw, compressed)
		if !decodeLogical {
			return nil, raw, nil
		}
		out, err := decodeLZF(compressed, int(ulen))
		if err != nil {
			return nil, nil, err
		}
		return out, raw, nil
	default:
		return nil, nil, newErr(KindUnknownStringEncoding, "", nil)
	}
}
