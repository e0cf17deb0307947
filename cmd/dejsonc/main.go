// Command dejsonc compiles a dejson schema source file into a pair of Go
// files: a record-view header and a metadata/dispatcher table, the Go
// equivalents of the original dejson compiler's generated C header.
//
// Usage:
//
//	dejsonc --output <base> [--config <file>] [--verbose] [--json-errors] <input>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/leiradel/dejson/internal/codegen"
	"github.com/leiradel/dejson/internal/schemalang"
)

// diagnostic is the shape written to stderr when --json-errors is set,
// one object per failure (spec.md §6's error-reporting contract, extended
// per SPEC_FULL.md §6 for tool integration).
type diagnostic struct {
	Input   string `json:"input"`
	Message string `json:"message"`
}

// cliArgs is the result of parseArgs: dejsonc accepts its flags in any
// order relative to the input path, matching the original's argv loop
// (SPEC_FULL.md §9) rather than Go's flag package, which stops parsing at
// the first non-flag argument.
type cliArgs struct {
	output     string
	configPath string
	verbose    bool
	jsonErrors bool
	input      string
}

func parseArgs(argv []string) (cliArgs, error) {
	var a cliArgs
	var sawOutput, sawInput bool

	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--output":
			i++
			if i >= len(argv) {
				return cliArgs{}, fmt.Errorf("--output requires an argument")
			}
			a.output, sawOutput = argv[i], true
		case "--config":
			i++
			if i >= len(argv) {
				return cliArgs{}, fmt.Errorf("--config requires an argument")
			}
			a.configPath = argv[i]
		case "--verbose":
			a.verbose = true
		case "--json-errors":
			a.jsonErrors = true
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		default:
			if sawInput {
				return cliArgs{}, fmt.Errorf("unexpected extra argument %q", argv[i])
			}
			a.input, sawInput = argv[i], true
		}
	}

	if !sawOutput {
		return cliArgs{}, fmt.Errorf("--output is required")
	}
	if !sawInput {
		return cliArgs{}, fmt.Errorf("an input file is required")
	}
	return a, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		showHelp()
		os.Exit(1)
	}

	config := &GeneratorConfig{Verbose: a.verbose, JSONErrors: a.jsonErrors}
	if a.configPath != "" {
		data, err := os.ReadFile(a.configPath)
		if err != nil {
			fail("", fmt.Errorf("reading config %s: %w", a.configPath, err), false)
		}
		fileConfig, err := loadConfig(data)
		if err != nil {
			fail("", fmt.Errorf("parsing config %s: %w", a.configPath, err), false)
		}
		config = fileConfig
		// Flags explicitly set on the command line still win over the
		// config file's values.
		if a.verbose {
			config.Verbose = true
		}
		if a.jsonErrors {
			config.JSONErrors = true
		}
	}

	output := a.output
	input := a.input

	if config.Verbose {
		color.Cyan("dejsonc: compiling %s -> %s_record.go, %s_meta.go", input, output, output)
	}

	src, err := os.ReadFile(input)
	if err != nil {
		fail(input, fmt.Errorf("reading %s: %w", input, err), config.JSONErrors)
	}

	unit, err := schemalang.Parse(src)
	if err != nil {
		fail(input, err, config.JSONErrors)
	}
	if config.Verbose {
		color.Cyan("dejsonc: parsed %d record(s)", len(unit.Records))
	}

	layout, err := codegen.BuildLayout(unit)
	if err != nil {
		fail(input, err, config.JSONErrors)
	}

	pkg := packageNameFor(output)

	recordSrc := codegen.GenerateRecordViews(pkg, layout)
	metaSrc := codegen.GenerateMetadata(pkg, layout)

	if err := os.WriteFile(output+"_record.go", []byte(recordSrc), 0o644); err != nil {
		os.Remove(output + "_record.go")
		fail(input, fmt.Errorf("writing %s_record.go: %w", output, err), config.JSONErrors)
	}
	if err := os.WriteFile(output+"_meta.go", []byte(metaSrc), 0o644); err != nil {
		os.Remove(output + "_record.go")
		os.Remove(output + "_meta.go")
		fail(input, fmt.Errorf("writing %s_meta.go: %w", output, err), config.JSONErrors)
	}

	if config.Verbose {
		color.Green("dejsonc: wrote %s_record.go and %s_meta.go (package %s)", output, output, pkg)
	}
}

// packageNameFor infers the generated files' package name from the
// output base path's directory, falling back to "main" for a bare
// filename or a "." directory. dejsonc has no --package flag (the CLI
// contract in SPEC_FULL.md §6 fixes its flag set to --output/--config/
// --verbose/--json-errors), so this inference is the only source of the
// package name.
func packageNameFor(outputBase string) string {
	dir := filepath.Base(filepath.Dir(outputBase))
	if dir == "." || dir == "/" || dir == "" {
		return "main"
	}
	return dir
}

// fail prints a diagnostic prefixed with the input file name to stderr,
// optionally duplicating it as a JSON object, then exits 1 — dejsonc
// never leaves partial output files behind (SPEC_FULL.md §7).
func fail(input string, err error, asJSON bool) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
	if asJSON {
		data, marshalErr := json.Marshal(diagnostic{Input: input, Message: err.Error()})
		if marshalErr == nil {
			fmt.Fprintln(os.Stderr, string(data))
		}
	}
	os.Exit(1)
}

func showHelp() {
	fmt.Fprintln(os.Stderr, `dejsonc - dejson schema compiler

USAGE:
    dejsonc --output <base> [--config <file>] [--verbose] [--json-errors] <input>

FLAGS (any order, mixed freely with the input path):
    --output <base>   required; base path for the two generated files
    --config <file>   optional YAML file supplying verbose/json-errors
    --verbose         print progress to stderr
    --json-errors     additionally write a failure as a JSON object to stderr

OUTPUT:
    Writes <base>_record.go (record views) and <base>_meta.go (metadata
    tables and Resolver dispatcher) on success. Exits 1 on any argument,
    I/O, or schema error, with no partial output files.`)
}
