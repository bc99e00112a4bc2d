// Package vm implements the stack-based bytecode interpreter: the final
// stage of the pipeline, after the lexer and compiler have produced a
// chunk.
//
//	source -> lexer -> compiler (direct bytecode emission) -> chunk -> vm
//
// The VM owns every piece of mutable runtime state: the value stack, the
// globals table, and the heap of interned strings (shared with the
// compiler so identifier and literal interning land in the same set that
// runtime string values do).
package vm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/JBank25/golox/internal/disasm"
	"github.com/JBank25/golox/pkg/chunk"
	"github.com/JBank25/golox/pkg/compiler"
	"github.com/JBank25/golox/pkg/heap"
	"github.com/JBank25/golox/pkg/table"
	"github.com/JBank25/golox/pkg/value"
)

// StackMax bounds the value stack: with no function calls there is no
// recursion depth to budget for beyond nested expression evaluation, so a
// generous fixed size is simpler than a growable one.
const StackMax = 256

// InterpretResult classifies how Interpret finished, mapped to the CLI's
// process exit codes by cmd/golox.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM executes one chunk at a time. Globals and the heap persist across
// calls to Interpret, which is what lets a REPL build up state statement
// by statement.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack    [StackMax]value.Value
	stackTop int

	globals *table.Table
	heap    *heap.Heap

	stdout io.Writer
	stderr io.Writer

	trace bool
	log   zerolog.Logger
}

// New builds a VM that writes program output to stdout and diagnostics to
// stderr.
func New(stdout, stderr io.Writer) *VM {
	return &VM{
		globals: table.New(),
		heap:    heap.New(),
		stdout:  stdout,
		stderr:  stderr,
		log:     zerolog.New(stderr).With().Timestamp().Logger(),
	}
}

// SetTrace turns per-instruction zerolog tracing on or off.
func (vm *VM) SetTrace(enabled bool) { vm.trace = enabled }

// Heap exposes the VM's object heap, the one Interpret hands to the
// compiler on every call — compiling and running share one intern set
// across the VM's lifetime.
func (vm *VM) Heap() *heap.Heap { return vm.heap }

// Interpret compiles source against the VM's heap and, if compilation
// succeeds, runs the resulting chunk.
func (vm *VM) Interpret(source string) InterpretResult {
	c := chunk.New()
	if !compiler.Compile(source, c, vm.heap, vm.stderr) {
		return InterpretCompileError
	}

	vm.chunk = c
	vm.ip = 0
	vm.stackTop = 0
	return vm.run()
}

// Close drops the VM's runtime state. The reference implementation this
// design corrects only reinitialized its globals table at teardown and
// left the intern table dangling; here both die together.
func (vm *VM) Close() {
	vm.globals = table.New()
	vm.heap = heap.New()
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() { vm.stackTop = 0 }

func (vm *VM) runtimeError(format string, args ...interface{}) {
	line := vm.chunk.Lines[vm.ip-1]
	err := newRuntimeError(line, format, args...)
	fmt.Fprint(vm.stderr, err.Error())
	vm.resetStack()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.chunk.Code[vm.ip]
	lo := vm.chunk.Code[vm.ip+1]
	vm.ip += 2
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) run() InterpretResult {
	for {
		if vm.trace {
			vm.traceInstruction()
		}

		op := chunk.Op(vm.readByte())
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())

		case chunk.OpNil:
			vm.push(value.Nil)
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			slot := vm.readByte()
			vm.push(vm.stack[slot])
		case chunk.OpSetLocal:
			slot := vm.readByte()
			vm.stack[slot] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := vm.readConstant().AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				vm.runtimeError("Undefined variable '%s'.", name.String())
				return InterpretRuntimeError
			}
			vm.push(v)
		case chunk.OpDefineGlobal:
			name := vm.readConstant().AsString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.OpSetGlobal:
			name := vm.readConstant().AsString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				vm.runtimeError("Undefined variable '%s'.", name.String())
				return InterpretRuntimeError
			}

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if res, ok := vm.numericCompare(func(a, b float64) bool { return a > b }); ok {
				vm.push(res)
			} else {
				return InterpretRuntimeError
			}
		case chunk.OpLess:
			if res, ok := vm.numericCompare(func(a, b float64) bool { return a < b }); ok {
				vm.push(res)
			} else {
				return InterpretRuntimeError
			}

		case chunk.OpAdd:
			if !vm.add() {
				return InterpretRuntimeError
			}
		case chunk.OpSubtract:
			if !vm.numericBinary(func(a, b float64) float64 { return a - b }) {
				return InterpretRuntimeError
			}
		case chunk.OpMultiply:
			if !vm.numericBinary(func(a, b float64) float64 { return a * b }) {
				return InterpretRuntimeError
			}
		case chunk.OpDivide:
			if !vm.numericBinary(func(a, b float64) float64 { return a / b }) {
				return InterpretRuntimeError
			}

		case chunk.OpNot:
			vm.push(value.Bool(vm.pop().IsFalsey()))
		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				vm.runtimeError("Operand must be a number.")
				return InterpretRuntimeError
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, vm.pop().String())

		case chunk.OpJump:
			offset := vm.readShort()
			vm.ip += offset
		case chunk.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.ip += offset
			}
		case chunk.OpLoop:
			offset := vm.readShort()
			vm.ip -= offset

		case chunk.OpReturn:
			return InterpretOK
		}
	}
}

func (vm *VM) numericBinary(op func(a, b float64) float64) bool {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		vm.runtimeError("Operands must be numbers.")
		return false
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(value.Number(op(a, b)))
	return true
}

func (vm *VM) numericCompare(op func(a, b float64) bool) (value.Value, bool) {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		vm.runtimeError("Operands must be numbers.")
		return value.Value{}, false
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	return value.Bool(op(a, b)), true
}

func (vm *VM) add() bool {
	switch {
	case vm.peek(0).IsString() && vm.peek(1).IsString():
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		concatenated := make([]byte, 0, a.Len()+b.Len())
		concatenated = append(concatenated, a.Chars...)
		concatenated = append(concatenated, b.Chars...)
		vm.push(value.String(vm.heap.Take(concatenated)))
		return true
	case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(value.Number(a + b))
		return true
	default:
		vm.runtimeError("Operands must be two numbers or two strings.")
		return false
	}
}

func (vm *VM) traceInstruction() {
	var buf bytes.Buffer
	disasm.Instruction(&buf, vm.chunk, vm.ip)

	stack := make([]string, 0, vm.stackTop)
	for i := 0; i < vm.stackTop; i++ {
		stack = append(stack, vm.stack[i].String())
	}

	vm.log.Debug().
		Int("ip", vm.ip).
		Strs("stack", stack).
		Msg(trimNewline(buf.String()))
}

func trimNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}
