package rdb

import (
	"strconv"

	"github.com/ohler55/ojg/oj"
)

// Inspector is a diagnostic Observer that renders a parsed RDB file's
// logical contents as JSON, one object per database. It is meant for
// ad-hoc inspection of a dump, not for production consumption — callers
// that care about performance or byte-exact fidelity should implement
// Observer directly instead.
type Inspector struct {
	BaseObserver

	databases map[int]map[string]any
	current   int

	listAcc []any
	setAcc  []any
	zsetAcc map[string]float64
	hashAcc map[string]string
}

// NewInspector returns an Inspector ready to be passed to Parse.
func NewInspector() *Inspector {
	return &Inspector{databases: make(map[int]map[string]any)}
}

func (ins *Inspector) StartDatabase(dbNumber int, info DatabaseInfo) {
	ins.current = dbNumber
	if ins.databases[dbNumber] == nil {
		ins.databases[dbNumber] = make(map[string]any)
	}
}

func (ins *Inspector) Set(key, value string, expiry *int64, info StringInfo) {
	ins.databases[ins.current][key] = value
}

func (ins *Inspector) StartList(key string, length uint64, expiry *int64, info ListInfo) {
	ins.listAcc = make([]any, 0, length)
}

func (ins *Inspector) RPush(key, elem string, info ElementInfo) {
	ins.listAcc = append(ins.listAcc, elem)
}

func (ins *Inspector) EndList(key string) {
	ins.databases[ins.current][key] = ins.listAcc
	ins.listAcc = nil
}

func (ins *Inspector) StartSet(key string, cardinality uint64, expiry *int64, info SetInfo) {
	ins.setAcc = make([]any, 0, cardinality)
}

func (ins *Inspector) SAdd(key, member string, info ElementInfo) {
	ins.setAcc = append(ins.setAcc, member)
}

func (ins *Inspector) EndSet(key string) {
	ins.databases[ins.current][key] = ins.setAcc
	ins.setAcc = nil
}

func (ins *Inspector) StartSortedSet(key string, length uint64, expiry *int64, info ZsetInfo) {
	ins.zsetAcc = make(map[string]float64, length)
}

func (ins *Inspector) ZAdd(key string, score float64, member string, info ElementInfo) {
	ins.zsetAcc[member] = score
}

func (ins *Inspector) EndSortedSet(key string) {
	ins.databases[ins.current][key] = ins.zsetAcc
	ins.zsetAcc = nil
}

func (ins *Inspector) StartHash(key string, length uint64, expiry *int64, info HashInfo) {
	ins.hashAcc = make(map[string]string, length)
}

func (ins *Inspector) HSet(key, field, value string, info ElementInfo) {
	ins.hashAcc[field] = value
}

func (ins *Inspector) EndHash(key string) {
	ins.databases[ins.current][key] = ins.hashAcc
	ins.hashAcc = nil
}

// JSON renders the accumulated databases as an indented JSON document
// keyed by database number.
func (ins *Inspector) JSON() string {
	out := make(map[string]any, len(ins.databases))
	for db, keys := range ins.databases {
		out[strconv.Itoa(db)] = keys
	}
	return oj.JSON(out, &oj.Options{Indent: 2, Sort: true})
}
