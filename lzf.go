package rdb

// decodeLZF reconstructs the original byte string from an LZF
// (FastLZ level-1 style) back-reference compressed stream, per spec §4.D.
//
// The input is scanned one control byte at a time:
//   - c < 32: a literal run of c+1 bytes, copied verbatim from the input.
//   - otherwise: a back-reference. The encoded length is c>>5; if that
//     equals 7, one more byte is read and added to it. The final copy
//     length is length+2. The reference offset into the growing output
//     is out_len - ((c&0x1F)<<8) - next_byte - 1, and bytes are copied
//     one at a time so self-overlapping runs replicate correctly.
//
// The reconstructed output must have exactly expectedLen bytes.
func decodeLZF(in []byte, expectedLen int) ([]byte, error) {
	out := make([]byte, 0, expectedLen)
	inLen := len(in)
	i := 0

	for i < inLen {
		ctrl := in[i]
		i++

		if ctrl < 32 {
			run := int(ctrl) + 1
			if i+run > inLen || len(out)+run > expectedLen {
				return nil, newErr(KindCorruptLZF, "", nil)
			}
			out = append(out, in[i:i+run]...)
			i += run
			continue
		}

		length := int(ctrl >> 5)
		if length == 7 {
			if i >= inLen {
				return nil, newErr(KindCorruptLZF, "", nil)
			}
			length += int(in[i])
			i++
		}
		length += 2

		if i >= inLen {
			return nil, newErr(KindCorruptLZF, "", nil)
		}
		ref := len(out) - (int(ctrl&0x1F) << 8) - int(in[i]) - 1
		i++

		if ref < 0 || len(out)+length > expectedLen {
			return nil, newErr(KindCorruptLZF, "", nil)
		}

		for ; length > 0; length-- {
			out = append(out, out[ref])
			ref++
		}
	}

	if len(out) != expectedLen {
		return nil, newErr(KindCorruptLZF, "", nil)
	}

	return out, nil
}
