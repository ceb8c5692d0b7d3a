package annotations

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
)

// CompileResult is one field added to a declaration by compilation
type CompileResult struct {
	// Name of the generated static field
	Name string

	// Initializer is the expression assigned to the field
	Initializer output.OutputExpression

	// Statements are emitted alongside the field assignment
	Statements []output.OutputStatement

	// Type of the generated field
	Type output.Type
}

// AnalysisOutput carries the analysis produced for one declaration
type AnalysisOutput struct {
	Analysis interface{}
}

// DecoratorHandler implements the analysis and compilation of one decorator.
//
// The compilation protocol has two phases. During analysis every declaration
// is detected and analyzed in isolation; handlers may record global
// information such as selectors. Compilation runs only after every
// declaration has been analyzed, and may read the global information but
// never modify it.
//
// Analyze may decline a declaration by returning a nil output with a nil
// error; such declarations take no part in compilation.
type DecoratorHandler interface {
	// Name identifies the handler in diagnostics
	Name() string

	// Detect returns the decorator this handler is responsible for, or nil
	// when the declaration is not of interest
	Detect(decl *reflection.Declaration) *reflection.Decorator

	// Analyze processes the declaration during the first phase
	Analyze(decl *reflection.Declaration, decorator *reflection.Decorator) (*AnalysisOutput, error)

	// Compile generates the declaration's definition fields during the
	// second phase. It is only invoked for declarations whose analysis
	// produced an output. The pool is scoped to this single invocation;
	// constants are never shared across declarations.
	Compile(decl *reflection.Declaration, analysis interface{}, pool *constant.ConstantPool) ([]*CompileResult, error)
}
