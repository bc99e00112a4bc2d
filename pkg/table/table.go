// Package table implements the open-addressed, linear-probed hash table
// shared by the VM's globals store and its interned-string set.
package table

import (
	"bytes"

	"github.com/JBank25/golox/pkg/object"
	"github.com/JBank25/golox/pkg/value"
)

const maxLoad = 0.75
const minCapacity = 8

type entry struct {
	key   *object.String
	value value.Value
}

// Table maps interned strings to values. A nil key with a nil value marks a
// slot that was never used; a nil key with a non-nil value is a tombstone
// left behind by Delete, kept so later probes don't stop short of a live
// entry that hashed past it.
type Table struct {
	count   int
	entries []entry
}

func New() *Table {
	return &Table{}
}

func growCapacity(capacity int) int {
	if capacity < minCapacity {
		return minCapacity
	}
	return capacity * 2
}

// findEntry returns the slot key should occupy: the matching live entry, the
// first tombstone seen along the probe sequence, or the first truly empty
// slot if neither exists. Callers never see this miss the table boundary
// because Set keeps the table below maxLoad.
func findEntry(entries []entry, key *object.String) *entry {
	capacity := len(entries)
	idx := int(key.Hash) % capacity
	var tombstone *entry
	for {
		e := &entries[idx]
		if e.key == nil {
			if e.value.IsNil() {
				if tombstone != nil {
					return tombstone
				}
				return e
			}
			if tombstone == nil {
				tombstone = e
			}
		} else if e.key == key {
			return e
		}
		idx = (idx + 1) % capacity
	}
}

// Get reports the value stored for key, if any.
func (t *Table) Get(key *object.String) (value.Value, bool) {
	if t.count == 0 {
		return value.Nil, false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return value.Nil, false
	}
	return e.value, true
}

// Set stores val under key, growing the backing array first if doing so
// would push the load factor past maxLoad. It reports whether key was new.
func (t *Table) Set(key *object.String, val value.Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}
	e := findEntry(t.entries, key)
	isNewKey := e.key == nil
	if isNewKey && e.value.IsNil() {
		t.count++
	}
	e.key = key
	e.value = val
	return isNewKey
}

// Delete removes key, leaving a tombstone so other entries sharing its
// probe sequence remain reachable.
func (t *Table) Delete(key *object.String) bool {
	if t.count == 0 {
		return false
	}
	e := findEntry(t.entries, key)
	if e.key == nil {
		return false
	}
	e.key = nil
	e.value = value.Bool(true)
	return true
}

// AddAll copies every live entry of other into t, overwriting collisions.
func (t *Table) AddAll(other *Table) {
	for _, e := range other.entries {
		if e.key != nil {
			t.Set(e.key, e.value)
		}
	}
}

// FindString looks up a string by its raw bytes and precomputed hash,
// without allocating an *object.String to do it. This is what lets the
// heap's intern step check for an existing string before deciding whether
// to copy the candidate bytes onto the heap at all.
func (t *Table) FindString(chars []byte, hash uint32) *object.String {
	if t.count == 0 {
		return nil
	}
	capacity := len(t.entries)
	idx := int(hash) % capacity
	for {
		e := &t.entries[idx]
		if e.key == nil {
			if e.value.IsNil() {
				return nil
			}
		} else if e.key.Hash == hash && bytes.Equal(e.key.Chars, chars) {
			return e.key
		}
		idx = (idx + 1) % capacity
	}
}

func (t *Table) adjustCapacity(newCapacity int) {
	newEntries := make([]entry, newCapacity)
	t.count = 0
	for _, e := range t.entries {
		if e.key == nil {
			continue
		}
		dest := findEntry(newEntries, e.key)
		dest.key = e.key
		dest.value = e.value
		t.count++
	}
	t.entries = newEntries
}

// Count reports the number of occupied slots: live entries plus any
// tombstones left by Delete since the last resize.
func (t *Table) Count() int { return t.count }
