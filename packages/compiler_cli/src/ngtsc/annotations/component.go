package annotations

import (
	"fmt"
	"strings"

	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3/view"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

// ComponentAnalysis is the analysis output of the component handler
type ComponentAnalysis struct {
	Meta     *directiveMetadata
	Template *view.ParsedTemplate
}

// ComponentDecoratorHandler compiles Component decorators.
//
// Analysis validates the decorator configuration, parses the inline template
// and registers the component's selector. Compilation reads the component's
// compilation scope from the registry and generates the component
// definition, so it must not run before every declaration has been
// analyzed.
type ComponentDecoratorHandler struct {
	evaluator *partial_evaluator.Evaluator
	registry  *scope.SelectorScopeRegistry
}

// NewComponentDecoratorHandler creates a new ComponentDecoratorHandler
func NewComponentDecoratorHandler(
	evaluator *partial_evaluator.Evaluator,
	registry *scope.SelectorScopeRegistry,
) *ComponentDecoratorHandler {
	return &ComponentDecoratorHandler{evaluator: evaluator, registry: registry}
}

// Name identifies the handler in diagnostics
func (h *ComponentDecoratorHandler) Name() string {
	return "ComponentDecoratorHandler"
}

// Detect returns the Component decorator of the declaration, if any
func (h *ComponentDecoratorHandler) Detect(decl *reflection.Declaration) *reflection.Decorator {
	return findDecorator(decl, reflection.DecoratorKindComponent)
}

// Analyze validates the decorator, parses the template and registers the
// component's selector
func (h *ComponentDecoratorHandler) Analyze(
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
	template, err := h.parseTemplate(decl, config)
	if err != nil {
		return nil, err
	}
	if meta.Selector != nil {
		h.registry.RegisterSelector(decl, *meta.Selector)
	}
	return &AnalysisOutput{Analysis: &ComponentAnalysis{Meta: meta, Template: template}}, nil
}

func (h *ComponentDecoratorHandler) parseTemplate(
	decl *reflection.Declaration,
	config *partial_evaluator.ObjectValue,
) (*view.ParsedTemplate, error) {
	raw, ok := config.Get("template")
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeComponentMissingTemplate, decl.FileName, decl.Name,
			"component is missing a template")
	}
	templateStr, ok := raw.(string)
	if !ok {
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
			"template must be a string")
	}

	preserveWhitespaces := false
	if rawOption, ok := config.Get("preserveWhitespaces"); ok {
		value, ok := rawOption.(bool)
		if !ok {
			return nil, diagnostics.NewFatalDiagnosticError(
				diagnostics.ErrorCodeValueHasWrongType, decl.FileName, decl.Name,
				"preserveWhitespaces must be a boolean")
		}
		preserveWhitespaces = value
	}

	templateURL := fmt.Sprintf("%s#%s/template.html", decl.FileName, decl.Name)
	template := view.ParseTemplate(templateStr, templateURL, &view.ParseTemplateOptions{
		PreserveWhitespaces: preserveWhitespaces,
	})
	if len(template.Errors) > 0 {
		messages := make([]string, len(template.Errors))
		for i, templateErr := range template.Errors {
			messages[i] = templateErr.String()
		}
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeTemplateParseError, decl.FileName, decl.Name,
			"Errors parsing template: "+strings.Join(messages, ", "))
	}
	return template, nil
}

// Compile generates the component definition field using the component's
// compilation scope
func (h *ComponentDecoratorHandler) Compile(
	decl *reflection.Declaration,
	analysis interface{},
	pool *constant.ConstantPool,
) ([]*CompileResult, error) {
	componentAnalysis := analysis.(*ComponentAnalysis)

	meta := &view.R3ComponentMetadata{
		R3DirectiveMetadata: *buildDirectiveMetadata(decl, componentAnalysis.Meta),
		Template:            view.R3TemplateMetadata{Nodes: componentAnalysis.Template.Nodes},
		Directives:          []*view.R3DirectiveDependencyMetadata{},
		Pipes:               map[string]*view.R3PipeDependencyMetadata{},
	}

	if compilationScope := h.registry.LookupCompilationScope(decl); compilationScope != nil {
		for _, directive := range compilationScope.Directives {
			meta.Directives = append(meta.Directives, &view.R3DirectiveDependencyMetadata{
				Selector: directive.Selector,
				Name:     directive.Name,
			})
		}
		for name, pipe := range compilationScope.Pipes {
			meta.Pipes[name] = &view.R3PipeDependencyMetadata{
				PipeName: pipe.PipeName,
				Name:     pipe.Name,
			}
		}
	}

	bindingParser := view.MakeBindingParser()
	res := view.CompileComponentFromMetadata(meta, pool, bindingParser)
	if bindingErrors := bindingParser.GetErrors(); len(bindingErrors) > 0 {
		messages := make([]string, len(bindingErrors))
		for i, bindingErr := range bindingErrors {
			messages[i] = bindingErr.String()
		}
		return nil, diagnostics.NewFatalDiagnosticError(
			diagnostics.ErrorCodeTemplateParseError, decl.FileName, decl.Name,
			"Errors parsing template: "+strings.Join(messages, ", "))
	}
	return []*CompileResult{{
		Name:        "ngComponentDef",
		Initializer: res.Expression,
		Statements:  res.Statements,
		Type:        res.Type,
	}}, nil
}
