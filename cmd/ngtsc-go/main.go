package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/program"
)

func usage() {
	fmt.Println(`ngtsc-go - Angular definition compiler
Usage: ngtsc-go <command> [args]

Commands:
  compile [flags] <packages...>   Compile decorated declarations
  help                            Show help

Compile flags:
  -dir <path>      Directory to load packages from (default ".")
  -outdir <path>   Write generated files instead of printing to stdout`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "help":
		usage()
	case "compile":
		if err := compile(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func compile(args []string) error {
	flags := flag.NewFlagSet("compile", flag.ExitOnError)
	dir := flags.String("dir", ".", "directory to load packages from")
	outDir := flags.String("outdir", "", "write generated files instead of printing to stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	patterns := flags.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	declarations, err := program.LoadDeclarations(*dir, patterns...)
	if err != nil {
		return err
	}

	compilation := program.NewCompilation()
	if err := compilation.AnalyzeAll(declarations); err != nil {
		return err
	}
	compiled, err := compilation.CompileAll()
	if err != nil {
		return err
	}

	for _, diagnostic := range compilation.Diagnostics() {
		fmt.Fprintln(os.Stderr, diagnostic.Error())
	}

	for _, file := range compiled {
		if *outDir == "" {
			fmt.Printf("// %s\n%s\n", file.FileName, file.Source())
			continue
		}
		name := strings.TrimSuffix(filepath.Base(file.FileName), ".go") + ".ngfactory.js"
		target := filepath.Join(*outDir, name)
		if err := os.WriteFile(target, []byte(file.Source()), 0o644); err != nil {
			return err
		}
	}

	if len(compilation.Diagnostics()) > 0 {
		return fmt.Errorf("compilation produced %d diagnostic(s)", len(compilation.Diagnostics()))
	}
	return nil
}
