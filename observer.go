package rdb

// Observer receives a stream of decode events as Parse walks an RDB file,
// in the style of a SAX content handler (spec §7). Every method is
// called synchronously from the goroutine running Parse and returns
// nothing; only malformed input or a read error can abort a walk, via the
// error Parse itself returns.
type Observer interface {
	StartRDB()
	StartDatabase(dbNumber int, info DatabaseInfo)
	Set(key, value string, expiry *int64, info StringInfo)
	StartList(key string, length uint64, expiry *int64, info ListInfo)
	RPush(key, elem string, info ElementInfo)
	EndList(key string)
	StartSet(key string, cardinality uint64, expiry *int64, info SetInfo)
	SAdd(key, member string, info ElementInfo)
	EndSet(key string)
	StartSortedSet(key string, length uint64, expiry *int64, info ZsetInfo)
	ZAdd(key string, score float64, member string, info ElementInfo)
	EndSortedSet(key string)
	StartHash(key string, length uint64, expiry *int64, info HashInfo)
	HSet(key string, field, value string, info ElementInfo)
	EndHash(key string)
	EndDatabase(dbNumber int, info EndInfo)
	EndRDB()
}

// BaseObserver implements Observer with no-op methods. Embed it in a
// concrete observer and override only the callbacks of interest.
type BaseObserver struct{}

func (BaseObserver) StartRDB()                                                  {}
func (BaseObserver) StartDatabase(dbNumber int, info DatabaseInfo)              {}
func (BaseObserver) Set(key, value string, expiry *int64, info StringInfo)      {}
func (BaseObserver) StartList(key string, length uint64, expiry *int64, info ListInfo) {}
func (BaseObserver) RPush(key, elem string, info ElementInfo)                   {}
func (BaseObserver) EndList(key string)                                        {}
func (BaseObserver) StartSet(key string, cardinality uint64, expiry *int64, info SetInfo) {}
func (BaseObserver) SAdd(key, member string, info ElementInfo)                  {}
func (BaseObserver) EndSet(key string)                                         {}
func (BaseObserver) StartSortedSet(key string, length uint64, expiry *int64, info ZsetInfo) {}
func (BaseObserver) ZAdd(key string, score float64, member string, info ElementInfo) {}
func (BaseObserver) EndSortedSet(key string)                                   {}
func (BaseObserver) StartHash(key string, length uint64, expiry *int64, info HashInfo) {}
func (BaseObserver) HSet(key string, field, value string, info ElementInfo)     {}
func (BaseObserver) EndHash(key string)                                        {}
func (BaseObserver) EndDatabase(dbNumber int, info EndInfo)                     {}
func (BaseObserver) EndRDB()                                                    {}

var _ Observer = BaseObserver{}
