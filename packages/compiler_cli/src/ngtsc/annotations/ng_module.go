package annotations

import (
	"fmt"

	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

// NgModuleAnalysis is the analysis output of the module handler
type NgModuleAnalysis struct {
	Declarations []string
	Imports      []string
	Exports      []string
}

// NgModuleDecoratorHandler compiles NgModule decorators
type NgModuleDecoratorHandler struct {
	evaluator *partial_evaluator.Evaluator
	registry  *scope.SelectorScopeRegistry
}

// NewNgModuleDecoratorHandler creates a new NgModuleDecoratorHandler
func NewNgModuleDecoratorHandler(
	evaluator *partial_evaluator.Evaluator,
	registry *scope.SelectorScopeRegistry,
) *NgModuleDecoratorHandler {
	return &NgModuleDecoratorHandler{evaluator: evaluator, registry: registry}
}

// Name identifies the handler in diagnostics
func (h *NgModuleDecoratorHandler) Name() string {
	return "NgModuleDecoratorHandler"
}

// Detect returns the NgModule decorator of the declaration, if any
func (h *NgModuleDecoratorHandler) Detect(decl *reflection.Declaration) *reflection.Decorator {
	return findDecorator(decl, reflection.DecoratorKindNgModule)
}

// Analyze validates the decorator and registers the module's members
func (h *NgModuleDecoratorHandler) Analyze(
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
	analysis := &NgModuleAnalysis{}
	if analysis.Declarations, err = extractReferenceList(decl, config, "declarations"); err != nil {
		return nil, err
	}
	if analysis.Imports, err = extractReferenceList(decl, config, "imports"); err != nil {
		return nil, err
	}
	if analysis.Exports, err = extractReferenceList(decl, config, "exports"); err != nil {
		return nil, err
	}
	h.registry.RegisterModule(decl, analysis.Declarations)
	return &AnalysisOutput{Analysis: analysis}, nil
}

// Compile generates the module definition field
func (h *NgModuleDecoratorHandler) Compile(
	decl *reflection.Declaration,
	analysis interface{},
	pool *constant.ConstantPool,
) ([]*CompileResult, error) {
	moduleAnalysis := analysis.(*NgModuleAnalysis)
	res := render3.CompileNgModuleFromMetadata(&render3.R3NgModuleMetadata{
		Name:         decl.Name,
		Type:         render3.WrapReference(decl.Name),
		Declarations: namesToReferences(moduleAnalysis.Declarations),
		Imports:      namesToReferences(moduleAnalysis.Imports),
		Exports:      namesToReferences(moduleAnalysis.Exports),
	})
	return []*CompileResult{{
		Name:        "ngModuleDef",
		Initializer: res.Expression,
		Statements:  res.Statements,
		Type:        res.Type,
	}}, nil
}

func extractReferenceList(
	decl *reflection.Declaration,
	config *partial_evaluator.ObjectValue,
	field string,
) ([]string, error) {
	raw, ok := config.Get(field)
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
			fmt.Sprintf("%s must be a list of references", field))
	}
	names := make([]string, 0, len(list))
	for _, entry := range list {
		ref, ok := entry.(*partial_evaluator.Reference)
		if !ok {
			return nil, diagnostics.NewFatalDiagnosticError(
				diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
				fmt.Sprintf("%s entries must be references", field))
		}
		names = append(names, ref.Name)
	}
	return names, nil
}

func namesToReferences(names []string) []render3.R3Reference {
	refs := make([]render3.R3Reference, len(names))
	for i, name := range names {
		refs[i] = render3.WrapReference(name)
	}
	return refs
}
