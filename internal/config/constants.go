package config

const SourceFileExt = ".paw"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".paw"}

// EmitTarget names a codegen backend selectable via --emit.
type EmitTarget string

const (
	EmitC    EmitTarget = "c"
	EmitLLVM EmitTarget = "llvm-ir"
)

// DefaultEmitTarget is used when --emit is not given on the command line.
const DefaultEmitTarget = EmitC

// OptLevel is an external-toolchain optimization level, passed through
// verbatim to the C compiler or llc/opt invoked on the emitted
// artifact — this module performs no optimization passes of its own
// (see spec.md's Non-goals).
type OptLevel int

const (
	OptNone OptLevel = iota
	OptBasic
	OptMore
	OptAggressive
)

// MaxOptLevel is the highest -O level cmd/pawc accepts.
const MaxOptLevel = OptAggressive

// Built-in enum/constructor names the analyzer and codegens treat
// specially (the two-variant shape `?` error propagation assumes).
const (
	ResultTypeName = "Result"
	OkCtorName     = "Ok"
	ErrCtorName    = "Err"
)
