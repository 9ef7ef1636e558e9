// Command mongoxlate translates a single MongoDB shell expression to a
// target language, reading source from stdin or a file argument and
// writing the translation to stdout. It plays the role cmd/able/main.go
// plays for the teacher's interpreter — argument parsing, error printing
// to stderr, exit codes — scaled down to this module's one-shot,
// one-expression-in/one-target-out contract instead of a manifest-driven
// program runner.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mongoxlate/pkg/translate"
)

const cliToolVersion = "mongoxlate 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	target, rest, err := parseTarget(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	source, err := readSource(rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read source: %v\n", err)
		return 1
	}

	out, err := translate.String(source, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, out)
	return 0
}

// parseTarget expects `--target <python|java> [file]` and returns the
// resolved Target plus whatever arguments remain.
func parseTarget(args []string) (translate.Target, []string, error) {
	if len(args) < 2 || args[0] != "--target" {
		return "", nil, errors.New("mongoxlate requires --target <python|java>")
	}
	switch args[1] {
	case "python":
		return translate.Python, args[2:], nil
	case "java":
		return translate.Java, args[2:], nil
	default:
		return "", nil, fmt.Errorf("unsupported target %q (want python or java)", args[1])
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " "))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: mongoxlate --target <python|java> [file]")
	fmt.Fprintln(os.Stderr, "  reads a single MongoDB shell expression from file, or stdin if omitted")
}
