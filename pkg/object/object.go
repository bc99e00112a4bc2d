// Package object defines the VM's heap-allocated value kinds.
//
// The reference design gives every heap object a common header (a type tag
// plus an intrusive "next" pointer used to walk every live allocation at
// teardown) with per-kind structs embedding it. The only kind this language
// actually produces at runtime is the string, so there is nothing to tag or
// downcast: String carries its own intrusive link directly.
package object

// String is an interned, immutable sequence of bytes. Equal content always
// means equal identity: the heap that allocates these (see pkg/heap) never
// produces two distinct *String values with the same bytes, so callers may
// compare pointers instead of contents.
type String struct {
	Chars []byte
	Hash  uint32

	// Next links this object into the heap's allocation list, in allocation
	// order, most recent first. Only the heap that created the string
	// touches this field.
	Next *String
}

func (s *String) Len() int { return len(s.Chars) }

func (s *String) String() string { return string(s.Chars) }
