package vm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBank25/golox/pkg/vm"
)

func run(t *testing.T, source string) (stdout, stderr string, result vm.InterpretResult) {
	t.Helper()
	var out, errOut strings.Builder
	machine := vm.New(&out, &errOut)
	result = machine.Interpret(source)
	return out.String(), errOut.String(), result
}

func TestArithmeticAndPrint(t *testing.T) {
	out, errs, result := run(t, `print 1 + 2 * 3;`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, errs, result := run(t, `print "foo" + "bar";`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "foobar\n", out)
}

func TestGlobalsPersistAcrossStatements(t *testing.T) {
	out, errs, result := run(t, `var x = 1; x = x + 1; print x;`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "2\n", out)
}

func TestLocalsInBlockScope(t *testing.T) {
	out, errs, result := run(t, `{ var a = 1; var b = 2; print a + b; }`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "3\n", out)
}

func TestIfElse(t *testing.T) {
	out, errs, result := run(t, `if (1 < 2) print "yes"; else print "no";`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "yes\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, errs, result := run(t, `var i = 0; while (i < 3) { print i; i = i + 1; }`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoop(t *testing.T) {
	out, errs, result := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestAndOrShortCircuit(t *testing.T) {
	out, errs, result := run(t, `print false and (1/0 == 1); print true or (1/0 == 1);`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestFalsiness(t *testing.T) {
	out, errs, result := run(t, `print nil == false; print !nil; print !0;`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "false\ntrue\nfalse\n", out)
}

func TestUndefinedGlobalReadIsRuntimeError(t *testing.T) {
	_, errs, result := run(t, `print undefined;`)
	assert.Equal(t, vm.InterpretRuntimeError, result)
	assert.Contains(t, errs, "Undefined variable 'undefined'.")
	assert.Contains(t, errs, "[line 1] in script")
}

func TestUndefinedGlobalAssignIsRuntimeError(t *testing.T) {
	_, errs, result := run(t, `undefined = 1;`)
	assert.Equal(t, vm.InterpretRuntimeError, result)
	assert.Contains(t, errs, "Undefined variable 'undefined'.")
}

func TestTypeErrorOnArithmetic(t *testing.T) {
	_, errs, result := run(t, `print 1 + "a";`)
	assert.Equal(t, vm.InterpretRuntimeError, result)
	assert.Contains(t, errs, "Operands must be two numbers or two strings.")
}

func TestTypeErrorOnNegate(t *testing.T) {
	_, errs, result := run(t, `print -"a";`)
	assert.Equal(t, vm.InterpretRuntimeError, result)
	assert.Contains(t, errs, "Operand must be a number.")
}

func TestCompileErrorDoesNotRun(t *testing.T) {
	out, _, result := run(t, `print ;`)
	assert.Equal(t, vm.InterpretCompileError, result)
	assert.Empty(t, out)
}

func TestStateIsResetAfterRuntimeErrorButHeapPersists(t *testing.T) {
	var out, errOut strings.Builder
	machine := vm.New(&out, &errOut)

	require.Equal(t, vm.InterpretOK, machine.Interpret(`var x = "hello";`))
	require.Equal(t, vm.InterpretRuntimeError, machine.Interpret(`print 1 + "a";`))

	out.Reset()
	result := machine.Interpret(`print x;`)
	assert.Equal(t, vm.InterpretOK, result)
	assert.Equal(t, "hello\n", out.String())
}

func TestStringEqualityByInterning(t *testing.T) {
	out, errs, result := run(t, `var a = "ab"; var b = "a" + "b"; print a == b;`)
	require.Equal(t, vm.InterpretOK, result, errs)
	assert.Equal(t, "true\n", out)
}
