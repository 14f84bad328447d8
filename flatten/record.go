package flatten

import "sort"

// Record maps path keys to rendered scalar text.
//
// A Record remembers the order in which keys were first set. Setting a key
// again replaces its value without moving it.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// RecordOf builds a record from alternating key, value arguments.
// It panics on an odd number of arguments and is meant for tests and
// literals.
func RecordOf(kv ...string) Record {
	if len(kv)%2 != 0 {
		panic("flatten: RecordOf needs key/value pairs")
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return *r
}

// Set stores value under key.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of keys in the record.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// SortedKeys returns the keys in ascending byte order.
func (r Record) SortedKeys() []string {
	out := r.Keys()
	sort.Strings(out)
	return out
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Clone returns a deep copy that shares nothing with r.
func (r Record) Clone() Record {
	return Record{keys: r.Keys(), values: r.Map()}
}
