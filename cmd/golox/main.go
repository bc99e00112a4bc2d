// Command golox runs the language's scanner/compiler/VM pipeline: as a
// one-shot file runner, a REPL, or a disassembler for inspecting compiled
// bytecode.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/JBank25/golox/internal/disasm"
	"github.com/JBank25/golox/pkg/chunk"
	"github.com/JBank25/golox/pkg/compiler"
	"github.com/JBank25/golox/pkg/heap"
	"github.com/JBank25/golox/pkg/vm"
)

const version = "0.1.0"

const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitUsageError   = 64
)

func main() {
	trace := flag.Bool("trace", false, "enable per-instruction execution tracing")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		runREPL(*trace)
		return
	}

	switch args[0] {
	case "version", "-v", "--version":
		fmt.Printf("golox version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	case "repl":
		runREPL(*trace)
	case "run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: no file specified")
			printUsage()
			os.Exit(exitUsageError)
		}
		os.Exit(runFile(args[1], *trace))
	case "disasm":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: no file specified")
			printUsage()
			os.Exit(exitUsageError)
		}
		os.Exit(disassembleFile(args[1]))
	default:
		os.Exit(runFile(args[0], *trace))
	}
}

func printUsage() {
	fmt.Println("golox - a small bytecode-compiled scripting language")
	fmt.Println("\nUsage:")
	fmt.Println("  golox                  Start the REPL")
	fmt.Println("  golox [file]           Compile and run a source file")
	fmt.Println("  golox run [file]       Compile and run a source file")
	fmt.Println("  golox disasm [file]    Compile a file and print its disassembly")
	fmt.Println("  golox repl             Start the REPL")
	fmt.Println("  golox version          Show version")
	fmt.Println("  golox help             Show this help")
	fmt.Println("\nFlags:")
	fmt.Println("  -trace                 Log each instruction as it executes")
}

func runFile(path string, trace bool) int {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}

	machine := vm.New(os.Stdout, os.Stderr)
	machine.SetTrace(trace)

	switch machine.Interpret(source) {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

func disassembleFile(path string) int {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}

	c := chunk.New()
	h := heap.New()
	if !compiler.Compile(source, c, h, os.Stderr) {
		return exitCompileError
	}
	disasm.Chunk(os.Stdout, c, path)
	return exitOK
}

func runREPL(trace bool) {
	fmt.Printf("golox %s\n", version)
	fmt.Println("Enter statements one at a time; Ctrl+D to quit.")

	machine := vm.New(os.Stdout, os.Stderr)
	machine.SetTrace(trace)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		machine.Interpret(line)
	}
}
