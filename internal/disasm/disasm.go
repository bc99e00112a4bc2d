// Package disasm renders a chunk's bytecode as human-readable text, used by
// the VM's optional per-instruction trace and by the `golox disasm`
// subcommand.
package disasm

import (
	"fmt"
	"io"

	"github.com/JBank25/golox/pkg/chunk"
)

// Chunk writes a full disassembly of c to w, labeled with name.
func Chunk(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = Instruction(w, c, offset)
	}
}

// Instruction writes the single instruction at offset and returns the
// offset of the next one.
func Instruction(w io.Writer, c *chunk.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := chunk.Op(c.Code[offset])
	switch op {
	case chunk.OpConstant:
		return constantInstruction(w, "OP_CONSTANT", c, offset)
	case chunk.OpNil:
		return simpleInstruction(w, "OP_NIL", offset)
	case chunk.OpTrue:
		return simpleInstruction(w, "OP_TRUE", offset)
	case chunk.OpFalse:
		return simpleInstruction(w, "OP_FALSE", offset)
	case chunk.OpPop:
		return simpleInstruction(w, "OP_POP", offset)
	case chunk.OpGetLocal:
		return byteInstruction(w, "OP_GET_LOCAL", c, offset)
	case chunk.OpSetLocal:
		return byteInstruction(w, "OP_SET_LOCAL", c, offset)
	case chunk.OpGetGlobal:
		return constantInstruction(w, "OP_GET_GLOBAL", c, offset)
	case chunk.OpDefineGlobal:
		return constantInstruction(w, "OP_DEFINE_GLOBAL", c, offset)
	case chunk.OpSetGlobal:
		return constantInstruction(w, "OP_SET_GLOBAL", c, offset)
	case chunk.OpEqual:
		return simpleInstruction(w, "OP_EQUAL", offset)
	case chunk.OpGreater:
		return simpleInstruction(w, "OP_GREATER", offset)
	case chunk.OpLess:
		return simpleInstruction(w, "OP_LESS", offset)
	case chunk.OpAdd:
		return simpleInstruction(w, "OP_ADD", offset)
	case chunk.OpSubtract:
		return simpleInstruction(w, "OP_SUBTRACT", offset)
	case chunk.OpMultiply:
		return simpleInstruction(w, "OP_MULTIPLY", offset)
	case chunk.OpDivide:
		return simpleInstruction(w, "OP_DIVIDE", offset)
	case chunk.OpNot:
		return simpleInstruction(w, "OP_NOT", offset)
	case chunk.OpNegate:
		return simpleInstruction(w, "OP_NEGATE", offset)
	case chunk.OpPrint:
		return simpleInstruction(w, "OP_PRINT", offset)
	case chunk.OpJump:
		return jumpInstruction(w, "OP_JUMP", 1, c, offset)
	case chunk.OpJumpIfFalse:
		return jumpInstruction(w, "OP_JUMP_IF_FALSE", 1, c, offset)
	case chunk.OpLoop:
		return jumpInstruction(w, "OP_LOOP", -1, c, offset)
	case chunk.OpReturn:
		return simpleInstruction(w, "OP_RETURN", offset)
	default:
		fmt.Fprintf(w, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, name string, offset int) int {
	fmt.Fprintf(w, "%s\n", name)
	return offset + 1
}

func byteInstruction(w io.Writer, name string, c *chunk.Chunk, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d\n", name, slot)
	return offset + 2
}

func constantInstruction(w io.Writer, name string, c *chunk.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", name, idx, c.Constants[idx].String())
	return offset + 2
}

func jumpInstruction(w io.Writer, name string, sign int, c *chunk.Chunk, offset int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-16s %4d -> %d\n", name, offset, target)
	return offset + 3
}
