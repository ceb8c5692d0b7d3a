package annotations

import (
	"fmt"

	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3/view"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

// directiveMetadata is the directive information shared between the
// directive and component handlers
type directiveMetadata struct {
	Selector *string
	Inputs   map[string]string
	Outputs  map[string]string
}

// extractDecoratorConfig validates the decorator argument list and evaluates
// the single configuration object. A nil object with a nil error means the
// declaration opted out of compilation.
func extractDecoratorConfig(
	decl *reflection.Declaration,
	decorator *reflection.Decorator,
	evaluator *partial_evaluator.Evaluator,
) (*partial_evaluator.ObjectValue, error) {
	if len(decorator.Args) != 1 {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeDecoratorArityWrong, decl.FileName, decl.Name,
			fmt.Sprintf("Incorrect number of arguments to @%s decorator", decorator.Name))
	}
	lit, ok := reflection.IsObjectLiteral(decorator.Args[0])
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeDecoratorArgNotLiteral, decl.FileName, decl.Name,
			fmt.Sprintf("@%s argument must be literal.", decorator.Name))
	}
	value := evaluator.Evaluate(lit)
	config, ok := value.(*partial_evaluator.ObjectValue)
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeDecoratorArgNotLiteral, decl.FileName, decl.Name,
			fmt.Sprintf("@%s argument must be literal.", decorator.Name))
	}
	if jit, ok := config.Get("jit"); ok {
		if enabled, ok := jit.(bool); ok && enabled {
			return nil, nil
		}
	}
	return config, nil
}

// extractDirectiveMetadata reads the directive fields out of an evaluated
// decorator configuration
func extractDirectiveMetadata(
	decl *reflection.Declaration,
	config *partial_evaluator.ObjectValue,
) (*directiveMetadata, error) {
	meta := &directiveMetadata{
		Inputs:  map[string]string{},
		Outputs: map[string]string{},
	}
	if raw, ok := config.Get("selector"); ok {
		selector, ok := raw.(string)
		if !ok {
			return nil, diagnostics.NewFatalDiagnosticError(
				diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
				"selector must be a string")
		}
		meta.Selector = &selector
	}
	var err error
	if meta.Inputs, err = extractStringMap(decl, config, "inputs"); err != nil {
		return nil, err
	}
	if meta.Outputs, err = extractStringMap(decl, config, "outputs"); err != nil {
		return nil, err
	}
	return meta, nil
}

// extractStringMap reads a field that maps public names onto member names.
// Entries may be written as an object or as a list of "public: member"
// strings; a bare string maps the name onto itself.
func extractStringMap(
	decl *reflection.Declaration,
	config *partial_evaluator.ObjectValue,
	field string,
) (map[string]string, error) {
	result := map[string]string{}
	raw, ok := config.Get(field)
	if !ok {
		return result, nil
	}
	switch value := raw.(type) {
	case *partial_evaluator.ObjectValue:
		for _, key := range value.Keys() {
			entry, _ := value.Get(key)
			str, ok := entry.(string)
			if !ok {
				return nil, diagnostics.NewFatalDiagnosticError(
					diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
					fmt.Sprintf("%s values must be strings", field))
			}
			result[key] = str
		}
		return result, nil
	case []interface{}:
		for _, entry := range value {
			str, ok := entry.(string)
			if !ok {
				return nil, diagnostics.NewFatalDiagnosticError(
					diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
					fmt.Sprintf("%s entries must be strings", field))
			}
			result[str] = str
		}
		return result, nil
	}
	return nil, diagnostics.NewFatalDiagnosticError(
		diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
		fmt.Sprintf("%s must be an object or a list of strings", field))
}

// DirectiveAnalysis is the analysis output of the directive handler
type DirectiveAnalysis struct {
	Meta *directiveMetadata
}

// DirectiveDecoratorHandler compiles Directive decorators
type DirectiveDecoratorHandler struct {
	evaluator *partial_evaluator.Evaluator
	registry  *scope.SelectorScopeRegistry
}

// NewDirectiveDecoratorHandler creates a new DirectiveDecoratorHandler
func NewDirectiveDecoratorHandler(
	evaluator *partial_evaluator.Evaluator,
	registry *scope.SelectorScopeRegistry,
) *DirectiveDecoratorHandler {
	return &DirectiveDecoratorHandler{evaluator: evaluator, registry: registry}
}

// Name identifies the handler in diagnostics
func (h *DirectiveDecoratorHandler) Name() string {
	return "DirectiveDecoratorHandler"
}

// Detect returns the Directive decorator of the declaration, if any
func (h *DirectiveDecoratorHandler) Detect(decl *reflection.Declaration) *reflection.Decorator {
	return findDecorator(decl, reflection.DecoratorKindDirective)
}

// Analyze validates the decorator and registers the directive's selector
func (h *DirectiveDecoratorHandler) Analyze(
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
	meta, err := extractDirectiveMetadata(decl, config)
	if err != nil {
		return nil, err
	}
	if meta.Selector != nil {
		h.registry.RegisterSelector(decl, *meta.Selector)
	}
	return &AnalysisOutput{Analysis: &DirectiveAnalysis{Meta: meta}}, nil
}

// Compile generates the directive definition field
func (h *DirectiveDecoratorHandler) Compile(
	decl *reflection.Declaration,
	analysis interface{},
	pool *constant.ConstantPool,
) ([]*CompileResult, error) {
	directiveAnalysis := analysis.(*DirectiveAnalysis)
	meta := buildDirectiveMetadata(decl, directiveAnalysis.Meta)
	res := view.CompileDirectiveFromMetadata(meta, pool)
	return []*CompileResult{{
		Name:        "ngDirectiveDef",
		Initializer: res.Expression,
		Statements:  res.Statements,
		Type:        res.Type,
	}}, nil
}

func buildDirectiveMetadata(decl *reflection.Declaration, meta *directiveMetadata) *view.R3DirectiveMetadata {
	return &view.R3DirectiveMetadata{
		Name:           decl.Name,
		Type:           render3.WrapReference(decl.Name),
		TypeSourceSpan: util.SyntheticTypeSourceSpan("Directive", decl.Name, decl.FileName),
		Selector:       meta.Selector,
		Inputs:         meta.Inputs,
		Outputs:        meta.Outputs,
	}
}

func findDecorator(decl *reflection.Declaration, kind reflection.DecoratorKind) *reflection.Decorator {
	for _, decorator := range decl.Decorators {
		if decorator.Kind == kind && decorator.Origin == reflection.DecoratorOrigin {
			return decorator
		}
	}
	return nil
}
