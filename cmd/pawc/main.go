// Command pawc is the Paw compiler driver: a thin caller of the
// lexer/parser/analyzer/codegen pipeline stages defined in internal/.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/funvibe/pawc/internal/analyzer"
	"github.com/funvibe/pawc/internal/codegen/cgen"
	"github.com/funvibe/pawc/internal/codegen/llvmgen"
	"github.com/funvibe/pawc/internal/config"
	"github.com/funvibe/pawc/internal/diagnostics"
	"github.com/funvibe/pawc/internal/lexer"
	"github.com/funvibe/pawc/internal/parser"
	"github.com/funvibe/pawc/internal/pipeline"
	"github.com/funvibe/pawc/internal/prettyprinter"
)

var (
	emitFlag   string
	optFlag    string
	outputFlag string
	printAST   bool
	dumpTree   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pawc <file>",
		Short: "Compiler for the Paw language",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	root.Flags().StringVar(&emitFlag, "emit", string(config.DefaultEmitTarget), "codegen backend: c or llvm-ir")
	root.Flags().StringVarP(&outputFlag, "output", "o", "", "output file path (default: stdout)")
	root.Flags().StringVarP(&optFlag, "O", "O", "0", "optimization level passed to the external toolchain (0-3)")
	root.Flags().BoolVar(&printAST, "print-ast", false, "print the reconstructed source instead of codegen output")
	root.Flags().BoolVar(&dumpTree, "dump-ast", false, "print a debug tree dump of the AST instead of codegen output")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newInitCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Type-check a source file without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			ctx, err := loadAndAnalyze(args[0])
			if err != nil {
				return err
			}
			if printDiagnostics(ctx.Errors) {
				return fmt.Errorf("%d error(s)", len(ctx.Errors))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s checked in %s\n", args[0], humanize.RelTime(start, time.Now(), "", ""))
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a new Paw project in dir (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			mainPath := filepath.Join(dir, "main"+config.SourceFileExt)
			if _, err := os.Stat(mainPath); err == nil {
				return fmt.Errorf("%s already exists", mainPath)
			}
			const starter = `fn main() -> i32 {
    print("hello, paw");
    return 0;
}
`
			if err := os.WriteFile(mainPath, []byte(starter), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", mainPath)
			return nil
		},
	}
}

// loadAndAnalyze runs the pipeline through the TypeChecker stage and
// stops there, used by both `check` and `runCompile`'s own validation.
func loadAndAnalyze(path string) (*pipeline.PipelineContext, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := pipeline.NewPipelineContext(string(src))
	ctx.FilePath = path

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.Processor{},
		&analyzer.Processor{},
	)
	return p.Run(ctx), nil
}

func parseOptLevel(s string) config.OptLevel {
	n, err := cast.ToIntE(strings.TrimPrefix(s, "O"))
	if err != nil || n < int(config.OptNone) {
		return config.OptNone
	}
	if n > int(config.MaxOptLevel) {
		return config.MaxOptLevel
	}
	return config.OptLevel(n)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	start := time.Now()

	ctx, err := loadAndAnalyze(path)
	if err != nil {
		return err
	}
	if printDiagnostics(ctx.Errors) {
		return fmt.Errorf("%d error(s)", len(ctx.Errors))
	}

	if printAST {
		return writeOutput(cmd, prettyprinter.Print(ctx.Program))
	}
	if dumpTree {
		return writeOutput(cmd, prettyprinter.Dump(ctx.Program))
	}

	target := config.EmitTarget(emitFlag)
	opt := parseOptLevel(optFlag)

	var out, commentPrefix string
	switch target {
	case config.EmitLLVM:
		ctx = (&llvmgen.Processor{}).Process(ctx)
		out, commentPrefix = ctx.LLVMOutput, ";"
	case config.EmitC:
		ctx = (&cgen.Processor{}).Process(ctx)
		out, commentPrefix = ctx.COutput, "//"
	default:
		return fmt.Errorf("unknown --emit target %q (want %q or %q)", emitFlag, config.EmitC, config.EmitLLVM)
	}
	if printDiagnostics(ctx.Errors) {
		return fmt.Errorf("%d error(s)", len(ctx.Errors))
	}

	// This module performs no optimization itself; the level is only
	// recorded for whatever external toolchain (cc, opt/llc) runs next.
	out = fmt.Sprintf("%s compiled by pawc -O%d --emit=%s\n%s", commentPrefix, opt, target, out)

	if err := writeOutput(cmd, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "compiled %s (%s, %s) in %s\n",
		path, target, humanize.Bytes(uint64(len(out))), humanize.RelTime(start, time.Now(), "", ""))
	return nil
}

func writeOutput(cmd *cobra.Command, text string) error {
	if outputFlag == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return os.WriteFile(outputFlag, []byte(text), 0o644)
}

var colorize = isatty.IsTerminal(os.Stderr.Fd())

// printDiagnostics prints every diagnostic to stderr and reports
// whether there were any.
func printDiagnostics(errs []*diagnostics.CompileError) bool {
	for _, e := range errs {
		if colorize {
			fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", e.Error())
		} else {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}
	return len(errs) > 0
}
