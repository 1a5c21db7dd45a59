package rdb

// Version is the highest RDB format version this parser understands.
// Per spec, versions 1 through Version (inclusive) are accepted.
const Version = 6

// Type is the one-byte object-type opcode that introduces a key's value.
type Type uint8

const (
	TypeString      Type = 0
	TypeList        Type = 1
	TypeSet         Type = 2
	TypeZset        Type = 3
	TypeHash        Type = 4
	TypeHashZipmap  Type = 9
	TypeListZiplist Type = 10
	TypeSetIntset   Type = 11
	TypeZsetZiplist Type = 12
	TypeHashZiplist Type = 13
)

// framing opcodes, read in the same byte position as a Type but never
// dispatched to the object decoder.
const (
	opCodeExpireTimeMS Type = 252
	opCodeExpireTime   Type = 253
	opCodeSelectDB     Type = 254
	opCodeEOF          Type = 255
)

// length-prefix 2-bit tags, see decode.go.
const (
	len6Bit         uint8 = 0b00000000
	len14Bit        uint8 = 0b01000000
	len32Bit        uint8 = 0b10000000
	lenEncodedValue uint8 = 0b11000000
	lenTagMask      uint8 = 0b11000000
)

// length-encoding discriminants, under the `11` tag.
const (
	lenEncInt8  uint64 = 0
	lenEncInt16 uint64 = 1
	lenEncInt32 uint64 = 2
	lenEncLZF   uint64 = 3
)

// logicalTypeOf maps an object-type opcode to the filter's type name,
// following redis-rdb-tools' DATA_TYPE_MAPPING.
func logicalTypeOf(t Type) (string, bool) {
	switch t {
	case TypeString:
		return "string", true
	case TypeList, TypeListZiplist:
		return "list", true
	case TypeSet, TypeSetIntset:
		return "set", true
	case TypeZset, TypeZsetZiplist:
		return "sortedset", true
	case TypeHash, TypeHashZipmap, TypeHashZiplist:
		return "hash", true
	default:
		return "", false
	}
}
