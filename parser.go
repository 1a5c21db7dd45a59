package rdb

import (
	"io"
)

// Options configures a Parse call (spec §4.G, §4.H).
type Options struct {
	Filters     Filters
	IgnoreFlags IgnoreFlags
}

var rdbMagic = [5]byte{'R', 'E', 'D', 'I', 'S'}

// Parse reads an RDB file from r and drives observer through its
// contents (spec §4.G). It returns the first error encountered; observer
// methods themselves do not return errors, so only malformed input or a
// read error from r can cause Parse to fail.
func Parse(r io.Reader, observer Observer, opts Options) error {
	opts.Filters.compile()
	br := newByteReader(r)

	if err := checkMagic(br); err != nil {
		return err
	}

	observer.StartRDB()

	currentDB := -1
	haveDB := false
	dbActive := true

	for {
		opcode, opcodeRaw, err := br.readU8()
		if err != nil {
			return err
		}
		t := Type(opcode)

		switch t {
		case opCodeEOF:
			if haveDB && dbActive {
				observer.EndDatabase(currentDB, EndInfo{OrigEndDB: opcodeRaw})
			}
			observer.EndRDB()
			return nil

		case opCodeSelectDB:
			dbNum, _, lenRaw, err := br.decodeLength()
			if err != nil {
				return err
			}
			if haveDB && dbActive {
				observer.EndDatabase(currentDB, EndInfo{OrigEndDB: emptyBytes})
			}
			currentDB = int(dbNum)
			haveDB = true
			dbActive = opts.Filters.matchDB(currentDB)
			if dbActive {
				observer.StartDatabase(currentDB, DatabaseInfo{OrigDBNumber: concatBytes(opcodeRaw, lenRaw)})
			}
			continue

		case opCodeExpireTimeMS:
			ms, msRaw, err := br.readU64LE()
			if err != nil {
				return err
			}
			expiry := int64(ms / 1000)
			if err := br.readKeyedValue(opts, observer, dbActive, &expiry, concatBytes(opcodeRaw, msRaw)); err != nil {
				return err
			}
			continue

		case opCodeExpireTime:
			secs, secsRaw, err := br.readU32LE()
			if err != nil {
				return err
			}
			expiry := int64(secs)
			if err := br.readKeyedValue(opts, observer, dbActive, &expiry, concatBytes(opcodeRaw, secsRaw)); err != nil {
				return err
			}
			continue

		default:
			if err := br.dispatchKeyedValue(t, opts, observer, dbActive, nil, opcodeRaw, nil); err != nil {
				return err
			}
		}
	}
}

// readKeyedValue reads the object-type opcode following an expire
// marker, then delegates to dispatchKeyedValue.
func (r *byteReader) readKeyedValue(opts Options, observer Observer, dbActive bool, expiry *int64, expiryRaw []byte) error {
	typeByte, typeRaw, err := r.readU8()
	if err != nil {
		return err
	}
	return r.dispatchKeyedValue(Type(typeByte), opts, observer, dbActive, expiry, typeRaw, expiryRaw)
}

// dispatchKeyedValue reads a key string and its value, honoring the
// active filters, once the object type and any expiry are known.
func (r *byteReader) dispatchKeyedValue(t Type, opts Options, observer Observer, dbActive bool, expiry *int64, typeRaw, expiryRaw []byte) error {
	keyBytes, keyRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	key := string(keyBytes)

	env := envelope{expiryRaw: expiryRaw, typeRaw: typeRaw, keyRaw: keyRaw}

	if !dbActive || !opts.Filters.matchKey(key) {
		return skipValue(r, t)
	}
	return dispatchValue(r, t, key, expiry, env, observer, &opts.Filters, opts.IgnoreFlags)
}

func checkMagic(r *byteReader) error {
	magic, err := r.readExact(5)
	if err != nil {
		return newErr(KindBadMagic, "", err)
	}
	for i := range rdbMagic {
		if magic[i] != rdbMagic[i] {
			return newErr(KindBadMagic, "", nil)
		}
	}

	versionBytes, err := r.readExact(4)
	if err != nil {
		return newErr(KindBadVersion, "", err)
	}
	version := 0
	for _, b := range versionBytes {
		if b < '0' || b > '9' {
			return newErr(KindBadVersion, "", nil)
		}
		version = version*10 + int(b-'0')
	}
	if version < 1 || version > Version {
		return newErr(KindBadVersion, "", nil)
	}
	return nil
}
