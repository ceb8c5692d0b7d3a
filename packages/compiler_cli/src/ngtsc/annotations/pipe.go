package annotations

import (
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

// PipeAnalysis is the analysis output of the pipe handler
type PipeAnalysis struct {
	PipeName string
	Pure     bool
}

// PipeDecoratorHandler compiles Pipe decorators
type PipeDecoratorHandler struct {
	evaluator *partial_evaluator.Evaluator
	registry  *scope.SelectorScopeRegistry
}

// NewPipeDecoratorHandler creates a new PipeDecoratorHandler
func NewPipeDecoratorHandler(
	evaluator *partial_evaluator.Evaluator,
	registry *scope.SelectorScopeRegistry,
) *PipeDecoratorHandler {
	return &PipeDecoratorHandler{evaluator: evaluator, registry: registry}
}

// Name identifies the handler in diagnostics
func (h *PipeDecoratorHandler) Name() string {
	return "PipeDecoratorHandler"
}

// Detect returns the Pipe decorator of the declaration, if any
func (h *PipeDecoratorHandler) Detect(decl *reflection.Declaration) *reflection.Decorator {
	return findDecorator(decl, reflection.DecoratorKindPipe)
}

// Analyze validates the decorator and registers the pipe's name
func (h *PipeDecoratorHandler) Analyze(
	decl *reflection.Declaration,
	decorator *reflection.Decorator,
) (*AnalysisOutput, error) {
	config, err := extractDecoratorConfig(decl, decorator, h.evaluator)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, nil
	}
	raw, ok := config.Get("name")
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodePipeMissingName, decl.FileName, decl.Name,
			"@Pipe decorator is missing name field")
	}
	pipeName, ok := raw.(string)
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
			"name must be a string")
	}
	pure := true
	if rawPure, ok := config.Get("pure"); ok {
		value, ok := rawPure.(bool)
		if !ok {
			return nil, diagnostics.NewFatalDiagnosticError(
				diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
				"pure must be a boolean")
		}
		pure = value
	}
	h.registry.RegisterPipe(decl, pipeName)
	return &AnalysisOutput{Analysis: &PipeAnalysis{PipeName: pipeName, Pure: pure}}, nil
}

// Compile generates the pipe definition field
func (h *PipeDecoratorHandler) Compile(
	decl *reflection.Declaration,
	analysis interface{},
	pool *constant.ConstantPool,
) ([]*CompileResult, error) {
	pipeAnalysis := analysis.(*PipeAnalysis)
	res := render3.CompilePipeFromMetadata(&render3.R3PipeMetadata{
		Name:     decl.Name,
		Type:     render3.WrapReference(decl.Name),
		PipeName: pipeAnalysis.PipeName,
		Pure:     pipeAnalysis.Pure,
	})
	return []*CompileResult{{
		Name:        "ngPipeDef",
		Initializer: res.Expression,
		Statements:  res.Statements,
		Type:        res.Type,
	}}, nil
}
