// Package heap owns the VM's heap-allocated objects: the intrusive
// allocation list that lets teardown free every object exactly once, and
// the interned-string set that gives every distinct string's bytes exactly
// one live *object.String.
//
// The compiler and the VM share one Heap instance — identifier constants
// and string literals are interned at compile time, runtime concatenations
// are interned at run time, and both draw from the same backing table so
// that `"a" + "b" == "ab"` by pointer comparison.
package heap

import (
	"github.com/JBank25/golox/pkg/object"
	"github.com/JBank25/golox/pkg/table"
	"github.com/JBank25/golox/pkg/value"
)

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// HashBytes computes the FNV-1a hash used for every interned string.
func HashBytes(b []byte) uint32 {
	hash := fnvOffsetBasis
	for _, c := range b {
		hash ^= uint32(c)
		hash *= fnvPrime
	}
	return hash
}

// Heap is the VM's object store: every *object.String it ever allocates is
// reachable from head, in reverse allocation order.
type Heap struct {
	strings *table.Table
	head    *object.String
}

func New() *Heap {
	return &Heap{strings: table.New()}
}

// Strings returns the backing intern table, shared read/write between the
// compiler (identifier constants) and the VM (globals keys, concatenation).
func (h *Heap) Strings() *table.Table { return h.strings }

// Head returns the most recently allocated object, for walking the full
// list at teardown.
func (h *Heap) Head() *object.String { return h.head }

// Copy interns a string built from bytes the caller still owns: if an equal
// string already exists it is reused, otherwise the bytes are copied onto
// the heap. Use this for source-derived literals and identifiers, whose
// backing bytes are a view into someone else's buffer.
func (h *Heap) Copy(chars []byte) *object.String {
	hash := HashBytes(chars)
	if s := h.strings.FindString(chars, hash); s != nil {
		return s
	}
	owned := make([]byte, len(chars))
	copy(owned, chars)
	return h.allocate(owned, hash)
}

// Take interns a string built from bytes the caller is done with: if an
// equal string already exists the candidate bytes are simply dropped,
// otherwise they become the new string's backing array without copying.
// Use this for runtime-computed strings, such as concatenation results,
// whose buffer nothing else references.
func (h *Heap) Take(chars []byte) *object.String {
	hash := HashBytes(chars)
	if s := h.strings.FindString(chars, hash); s != nil {
		return s
	}
	return h.allocate(chars, hash)
}

func (h *Heap) allocate(chars []byte, hash uint32) *object.String {
	s := &object.String{Chars: chars, Hash: hash, Next: h.head}
	h.head = s
	h.strings.Set(s, value.Nil)
	return s
}
