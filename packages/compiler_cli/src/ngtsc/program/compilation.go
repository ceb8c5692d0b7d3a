package program

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/annotations"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

// analyzedDeclaration pairs a declaration with the handler that claimed it
// and the analysis it produced
type analyzedDeclaration struct {
	declaration *reflection.Declaration
	handler     annotations.DecoratorHandler
	analysis    interface{}
}

// CompiledFile holds the generated statements for one source file
type CompiledFile struct {
	FileName   string
	Statements []output.OutputStatement
}

// Source returns the emitted JavaScript for the file
func (f *CompiledFile) Source() string {
	return output.EmitStatements(f.Statements)
}

// Compilation drives the two phase compilation of a set of declarations.
// AnalyzeAll must process every declaration before CompileAll runs; the
// compilation scope a component sees depends on declarations that may be
// analyzed after it.
type Compilation struct {
	handlers []annotations.DecoratorHandler
	registry *scope.SelectorScopeRegistry

	analyzed []*analyzedDeclaration
	sealed   bool

	diagnostics []*diagnostics.FatalDiagnosticError
}

// NewCompilation creates a Compilation with the standard decorator handlers
func NewCompilation() *Compilation {
	registry := scope.NewSelectorScopeRegistry()
	evaluator := partial_evaluator.NewEvaluator(reflection.IsObjectLiteral)
	return &Compilation{
		handlers: []annotations.DecoratorHandler{
			annotations.NewComponentDecoratorHandler(evaluator, registry),
			annotations.NewDirectiveDecoratorHandler(evaluator, registry),
			annotations.NewPipeDecoratorHandler(evaluator, registry),
			annotations.NewNgModuleDecoratorHandler(evaluator, registry),
		},
		registry: registry,
	}
}

// AnalyzeAll runs the analysis phase over every declaration. A fatal
// diagnostic in one declaration is recorded and does not stop the analysis
// of the others.
func (c *Compilation) AnalyzeAll(declarations []*reflection.Declaration) error {
	if c.sealed {
		panic("AnalyzeAll called after compilation started")
	}
	for _, decl := range declarations {
		if err := c.analyzeDeclaration(decl); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compilation) analyzeDeclaration(decl *reflection.Declaration) error {
	for _, handler := range c.handlers {
		decorator := handler.Detect(decl)
		if decorator == nil {
			continue
		}
		analysis, err := handler.Analyze(decl, decorator)
		if err != nil {
			if fatal, ok := err.(*diagnostics.FatalDiagnosticError); ok {
				c.diagnostics = append(c.diagnostics, fatal)
				return nil
			}
			return err
		}
		if analysis == nil {
			// The handler declined the declaration.
			return nil
		}
		c.analyzed = append(c.analyzed, &analyzedDeclaration{
			declaration: decl,
			handler:     handler,
			analysis:    analysis.Analysis,
		})
		return nil
	}
	return nil
}

// Diagnostics returns the fatal diagnostics recorded so far
func (c *Compilation) Diagnostics() []*diagnostics.FatalDiagnosticError {
	return c.diagnostics
}

// CompileAll runs the compilation phase. The first call seals the registry,
// after which no further analysis is accepted. Every declaration gets its own
// constant pool; constants are never shared across declarations. Pools of
// declarations in the same file share name counters so the generated
// constants keep unique names.
func (c *Compilation) CompileAll() ([]*CompiledFile, error) {
	if !c.sealed {
		c.registry.SealAnalysis()
		c.sealed = true
	}

	type fileCompilation struct {
		claimedNames map[string]int
		statements   []output.OutputStatement
	}
	var fileOrder []string
	files := map[string]*fileCompilation{}

	for _, analyzed := range c.analyzed {
		fileName := analyzed.declaration.FileName
		file, ok := files[fileName]
		if !ok {
			file = &fileCompilation{claimedNames: map[string]int{}}
			files[fileName] = file
			fileOrder = append(fileOrder, fileName)
		}
		pool := constant.NewConstantPoolSharingNames(file.claimedNames)
		results, err := analyzed.handler.Compile(analyzed.declaration, analyzed.analysis, pool)
		if err != nil {
			if fatal, ok := err.(*diagnostics.FatalDiagnosticError); ok {
				c.diagnostics = append(c.diagnostics, fatal)
				continue
			}
			return nil, err
		}
		if len(results) > 0 {
			results[0].Statements = append(pool.GetStatements(), results[0].Statements...)
		}
		for _, res := range results {
			file.statements = append(file.statements, res.Statements...)
			file.statements = append(file.statements, output.NewExpressionStatement(
				output.NewWritePropExpr(
					output.NewReadVarExpr(analyzed.declaration.Name, nil, nil),
					res.Name, res.Initializer, res.Type, nil),
				nil))
		}
	}

	compiled := make([]*CompiledFile, 0, len(fileOrder))
	for _, fileName := range fileOrder {
		compiled = append(compiled, &CompiledFile{FileName: fileName, Statements: files[fileName].statements})
	}
	return compiled, nil
}
