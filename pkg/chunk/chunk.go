// Package chunk implements the compiled bytecode buffer the compiler emits
// into and the VM executes: a flat byte stream, a parallel line table for
// diagnostics, and a constant pool.
package chunk

import (
	"github.com/pkg/errors"

	"github.com/JBank25/golox/pkg/value"
)

// Op identifies a bytecode instruction. Operand-bearing ops are documented
// with the bytes that follow them in the code stream.
type Op byte

const (
	OpConstant Op = iota // 1 byte: constant pool index
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetLocal      // 1 byte: stack slot
	OpSetLocal      // 1 byte: stack slot
	OpGetGlobal     // 1 byte: constant pool index of the name
	OpDefineGlobal  // 1 byte: constant pool index of the name
	OpSetGlobal     // 1 byte: constant pool index of the name
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump        // 2 bytes: forward offset, big-endian
	OpJumpIfFalse // 2 bytes: forward offset, big-endian
	OpLoop        // 2 bytes: backward offset, big-endian
	OpReturn
)

// MaxConstants is the largest number of distinct constants a single chunk
// can hold: the pool index is a single byte operand.
const MaxConstants = 256

// Chunk is one compiled unit: the language has no separate functions, so a
// whole program compiles into exactly one chunk.
type Chunk struct {
	Code      []byte
	Lines     []int // Lines[i] is the source line that produced Code[i]
	Constants []value.Value
}

func New() *Chunk {
	return &Chunk{}
}

// Write appends a single byte, tagging it with the source line it came
// from for runtime error reporting.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp is Write for an opcode, spelled out for readability at call sites.
func (c *Chunk) WriteOp(op Op, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index. It
// fails once the pool already holds MaxConstants entries, since the index
// operand is a single byte.
func (c *Chunk) AddConstant(v value.Value) (byte, error) {
	if len(c.Constants) >= MaxConstants {
		return 0, errors.New("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return byte(len(c.Constants) - 1), nil
}
