package rdb

import (
	"bytes"
	"math"
	"strconv"
)

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
	nan    = math.NaN()
)

// envelope carries the raw byte spans read by the driver (parser.go)
// before it knows which decoder in this file needs to run: the expire
// opcode and payload (if any), the object-type opcode, and the key
// string's own raw span.
type envelope struct {
	expiryRaw []byte
	typeRaw   []byte
	keyRaw    []byte
}

// dispatchValue decodes one key's value according to t and emits the
// matching Observer calls (spec §4.F). r is positioned just past the key
// string when this is called.
func dispatchValue(r *byteReader, t Type, key string, expiry *int64, env envelope, observer Observer, filters *Filters, ignore IgnoreFlags) error {
	if !filters.matchType(t) {
		return skipValue(r, t)
	}

	switch t {
	case TypeString:
		return dispatchString(r, key, expiry, env, observer, ignore)
	case TypeList:
		return dispatchList(r, key, expiry, env, observer)
	case TypeSet:
		return dispatchSet(r, key, expiry, env, observer)
	case TypeZset:
		return dispatchZset(r, key, expiry, env, observer)
	case TypeHash:
		return dispatchHash(r, key, expiry, env, observer, ignore)
	case TypeListZiplist:
		return dispatchListZiplist(r, key, expiry, env, observer)
	case TypeSetIntset:
		return dispatchSetIntset(r, key, expiry, env, observer)
	case TypeZsetZiplist:
		return dispatchZsetZiplist(r, key, expiry, env, observer)
	case TypeHashZiplist:
		return dispatchHashZiplist(r, key, expiry, env, observer)
	case TypeHashZipmap:
		return dispatchHashZipmap(r, key, expiry, env, observer)
	default:
		return newErr(KindUnknownObjectType, key, nil)
	}
}

func dispatchString(r *byteReader, key string, expiry *int64, env envelope, observer Observer, ignore IgnoreFlags) error {
	value, valRaw, err := r.decodeString(!ignore.IgnoreValue)
	if err != nil {
		return err
	}
	observer.Set(key, string(value), expiry, StringInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigVal:      valRaw,
	})
	return nil
}

func dispatchList(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	length, _, lenRaw, err := r.decodeLength()
	if err != nil {
		return err
	}
	observer.StartList(key, length, expiry, ListInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   lenRaw,
	})
	for i := uint64(0); i < length; i++ {
		elem, elemRaw, err := r.decodeString(true)
		if err != nil {
			return err
		}
		observer.RPush(key, string(elem), ElementInfo{OrigValue: elemRaw})
	}
	observer.EndList(key)
	return nil
}

func dispatchSet(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	card, _, lenRaw, err := r.decodeLength()
	if err != nil {
		return err
	}
	observer.StartSet(key, card, expiry, SetInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   lenRaw,
	})
	for i := uint64(0); i < card; i++ {
		member, memberRaw, err := r.decodeString(true)
		if err != nil {
			return err
		}
		observer.SAdd(key, string(member), ElementInfo{OrigValue: memberRaw})
	}
	observer.EndSet(key)
	return nil
}

func dispatchZset(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	length, _, lenRaw, err := r.decodeLength()
	if err != nil {
		return err
	}
	observer.StartSortedSet(key, length, expiry, ZsetInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   lenRaw,
	})
	for i := uint64(0); i < length; i++ {
		member, memberRaw, err := r.decodeString(true)
		if err != nil {
			return err
		}
		score, scoreRaw, err := r.readLegacyScore()
		if err != nil {
			return err
		}
		observer.ZAdd(key, score, string(member), ElementInfo{OrigValue: concatBytes(memberRaw, scoreRaw)})
	}
	observer.EndSortedSet(key)
	return nil
}

func dispatchHash(r *byteReader, key string, expiry *int64, env envelope, observer Observer, ignore IgnoreFlags) error {
	length, _, lenRaw, err := r.decodeLength()
	if err != nil {
		return err
	}
	observer.StartHash(key, length, expiry, HashInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   lenRaw,
	})
	for i := uint64(0); i < length; i++ {
		field, fieldRaw, err := r.decodeString(!ignore.IgnoreField)
		if err != nil {
			return err
		}
		value, valueRaw, err := r.decodeString(!ignore.IgnoreValue)
		if err != nil {
			return err
		}
		observer.HSet(key, string(field), string(value), ElementInfo{OrigField: fieldRaw, OrigValue: valueRaw})
	}
	observer.EndHash(key)
	return nil
}

// readLegacyScore reads a sorted-set score in the textual encoding used
// by RDB versions before binary doubles: a length byte (255 = -inf,
// 254 = +inf, 253 = NaN) or an ASCII float of that many bytes.
func (r *byteReader) readLegacyScore() (score float64, raw []byte, err error) {
	n, nRaw, err := r.readU8()
	if err != nil {
		return 0, nil, err
	}
	switch n {
	case 255:
		return negInf, nRaw, nil
	case 254:
		return posInf, nRaw, nil
	case 253:
		return nan, nRaw, nil
	}
	data, err := r.readExact(int(n))
	if err != nil {
		return 0, nil, err
	}
	v, perr := strconv.ParseFloat(string(data), 64)
	if perr != nil {
		return 0, nil, newErr(KindBadScore, "", perr)
	}
	return v, concatBytes(nRaw, data), nil
}

func dispatchListZiplist(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	arena, arenaRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	ar := newByteReader(bytes.NewReader(arena))
	if _, err := ar.readZiplistHeader(); err != nil {
		return err
	}
	var elems []string
	if _, err := ar.readZiplistEntries(-1, func(v string) error {
		elems = append(elems, v)
		return nil
	}); err != nil {
		return err
	}

	observer.StartList(key, uint64(len(elems)), expiry, ListInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   arenaRaw,
	})
	for _, v := range elems {
		observer.RPush(key, v, ElementInfo{})
	}
	observer.EndList(key)
	return nil
}

func dispatchSetIntset(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	arena, arenaRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	ar := newByteReader(bytes.NewReader(arena))
	var members []string
	if _, err := ar.readIntsetEntries(func(v string) error {
		members = append(members, v)
		return nil
	}); err != nil {
		return err
	}

	observer.StartSet(key, uint64(len(members)), expiry, SetInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   arenaRaw,
	})
	for _, v := range members {
		observer.SAdd(key, v, ElementInfo{})
	}
	observer.EndSet(key)
	return nil
}

func dispatchZsetZiplist(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	arena, arenaRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	ar := newByteReader(bytes.NewReader(arena))
	if _, err := ar.readZiplistHeader(); err != nil {
		return err
	}
	var entries []string
	if _, err := ar.readZiplistEntries(-1, func(v string) error {
		entries = append(entries, v)
		return nil
	}); err != nil {
		return err
	}
	if len(entries)%2 != 0 {
		return newErr(KindCorruptZiplist, key, nil)
	}

	observer.StartSortedSet(key, uint64(len(entries)/2), expiry, ZsetInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   arenaRaw,
	})
	for i := 0; i < len(entries); i += 2 {
		member := entries[i]
		score, perr := strconv.ParseFloat(entries[i+1], 64)
		if perr != nil {
			return newErr(KindBadScore, key, perr)
		}
		observer.ZAdd(key, score, member, ElementInfo{})
	}
	observer.EndSortedSet(key)
	return nil
}

func dispatchHashZiplist(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	arena, arenaRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	ar := newByteReader(bytes.NewReader(arena))
	if _, err := ar.readZiplistHeader(); err != nil {
		return err
	}
	var entries []string
	if _, err := ar.readZiplistEntries(-1, func(v string) error {
		entries = append(entries, v)
		return nil
	}); err != nil {
		return err
	}
	if len(entries)%2 != 0 {
		return newErr(KindCorruptZiplist, key, nil)
	}

	observer.StartHash(key, uint64(len(entries)/2), expiry, HashInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   arenaRaw,
	})
	for i := 0; i < len(entries); i += 2 {
		observer.HSet(key, entries[i], entries[i+1], ElementInfo{})
	}
	observer.EndHash(key)
	return nil
}

func dispatchHashZipmap(r *byteReader, key string, expiry *int64, env envelope, observer Observer) error {
	arena, arenaRaw, err := r.decodeString(true)
	if err != nil {
		return err
	}
	ar := newByteReader(bytes.NewReader(arena))
	if _, _, err := ar.readU8(); err != nil { // leading zmlen byte, unused
		return err
	}

	type pair struct{ field, value string }
	var pairs []pair
	if _, err := ar.readZipmapEntries(func(field, value string) error {
		pairs = append(pairs, pair{field, value})
		return nil
	}); err != nil {
		return err
	}

	observer.StartHash(key, uint64(len(pairs)), expiry, HashInfo{
		OrigExpiry:   env.expiryRaw,
		OrigDataType: env.typeRaw,
		OrigKey:      env.keyRaw,
		OrigLength:   arenaRaw,
	})
	for _, p := range pairs {
		observer.HSet(key, p.field, p.value, ElementInfo{})
	}
	observer.EndHash(key)
	return nil
}

// skipValue reads and discards a value of type t without producing
// Observer calls, for keys excluded by Filters (by database, key pattern
// or type). It must still
// consume exactly the bytes the value occupies so the stream stays
// aligned for the next key.
func skipValue(r *byteReader, t Type) error {
	switch t {
	case TypeString, TypeListZiplist, TypeSetIntset, TypeZsetZiplist, TypeHashZiplist, TypeHashZipmap:
		_, _, err := r.decodeString(false)
		return err
	case TypeList, TypeSet:
		length, _, _, err := r.decodeLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < length; i++ {
			if _, _, err := r.decodeString(false); err != nil {
				return err
			}
		}
		return nil
	case TypeZset:
		length, _, _, err := r.decodeLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < length; i++ {
			if _, _, err := r.decodeString(false); err != nil {
				return err
			}
			if _, _, err := r.readLegacyScore(); err != nil {
				return err
			}
		}
		return nil
	case TypeHash:
		length, _, _, err := r.decodeLength()
		if err != nil {
			return err
		}
		for i := uint64(0); i < length; i++ {
			if _, _, err := r.decodeString(false); err != nil {
				return err
			}
			if _, _, err := r.decodeString(false); err != nil {
				return err
			}
		}
		return nil
	default:
		return newErr(KindUnknownObjectType, "", nil)
	}
}
