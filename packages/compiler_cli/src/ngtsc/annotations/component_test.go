package annotations_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/annotations"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/program"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

func loadDeclarations(t *testing.T, src string) []*reflection.Declaration {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "app.go", "package app\n\n"+src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	declarations, err := program.CollectFileDeclarations(file, "app.go")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	return declarations
}

func loadDeclaration(t *testing.T, src string) *reflection.Declaration {
	t.Helper()
	declarations := loadDeclarations(t, src)
	if len(declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(declarations))
	}
	return declarations[0]
}

func newComponentHandler() (*annotations.ComponentDecoratorHandler, *scope.SelectorScopeRegistry) {
	registry := scope.NewSelectorScopeRegistry()
	evaluator := partial_evaluator.NewEvaluator(reflection.IsObjectLiteral)
	return annotations.NewComponentDecoratorHandler(evaluator, registry), registry
}

func analyzeComponent(t *testing.T, src string) (*annotations.ComponentAnalysis, error) {
	t.Helper()
	handler, _ := newComponentHandler()
	decl := loadDeclaration(t, src)
	decorator := handler.Detect(decl)
	if decorator == nil {
		t.Fatal("Detect() = nil")
	}
	out, err := handler.Analyze(decl, decorator)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.Analysis.(*annotations.ComponentAnalysis), nil
}

func fatalCode(t *testing.T, err error) diagnostics.ErrorCode {
	t.Helper()
	fatal, ok := err.(*diagnostics.FatalDiagnosticError)
	if !ok {
		t.Fatalf("error is %T, want *FatalDiagnosticError", err)
	}
	return fatal.Code
}

func TestComponentDetect(t *testing.T) {
	handler, _ := newComponentHandler()

	t.Run("should detect component directives", func(t *testing.T) {
		decl := loadDeclaration(t, `
// ng:Component({selector: "my-app", template: "x"})
type AppComponent struct{}
`)
		decorator := handler.Detect(decl)
		if decorator == nil {
			t.Fatal("Detect() = nil")
		}
		if decorator.Kind != reflection.DecoratorKindComponent || decorator.Origin != "ng" {
			t.Errorf("Detect() = %+v", decorator)
		}
	})

	t.Run("should ignore same named decorators from another origin", func(t *testing.T) {
		decl := &reflection.Declaration{
			Name:     "AppComponent",
			FileName: "app.go",
			Decorators: []*reflection.Decorator{{
				Kind:   reflection.DecoratorKindComponent,
				Name:   "Component",
				Origin: "custom",
			}},
		}
		if decorator := handler.Detect(decl); decorator != nil {
			t.Errorf("Detect() = %+v, want nil for a foreign origin", decorator)
		}
	})

	t.Run("should not detect other decorators", func(t *testing.T) {
		decl := loadDeclaration(t, `
// ng:Pipe({name: "title"})
type TitlePipe struct{}
`)
		if decorator := handler.Detect(decl); decorator != nil {
			t.Errorf("Detect() = %+v, want nil", decorator)
		}
	})
}

func TestComponentAnalyze(t *testing.T) {
	t.Run("should analyze a valid component", func(t *testing.T) {
		analysis, err := analyzeComponent(t, `
// ng:Component({selector: "my-app", template: "<div>hi</div>"})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis == nil {
			t.Fatal("analysis is nil")
		}
		if analysis.Template == nil || len(analysis.Template.Nodes) != 1 {
			t.Errorf("Template = %+v", analysis.Template)
		}
	})

	t.Run("should reject the wrong number of arguments", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component()
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeDecoratorArityWrong {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeDecoratorArityWrong)
		}
	})

	t.Run("should reject non literal arguments", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component(someConfig)
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeDecoratorArgNotLiteral {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeDecoratorArgNotLiteral)
		}
	})

	t.Run("should require a template", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component({selector: "my-app"})
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeComponentMissingTemplate {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeComponentMissingTemplate)
		}
		if !strings.Contains(err.Error(), "component is missing a template") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("should reject a non string selector", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component({selector: 42, template: "x"})
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeValueHasWrongType {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeValueHasWrongType)
		}
	})

	t.Run("should join template parse errors", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component({template: "<div><span></div>"})
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeTemplateParseError {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeTemplateParseError)
		}
		if !strings.Contains(err.Error(), "Errors parsing template: ") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("should skip jit components", func(t *testing.T) {
		analysis, err := analyzeComponent(t, `
// ng:Component({selector: "my-app", template: "x", jit: true})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis != nil {
			t.Errorf("analysis = %+v, want nil for jit components", analysis)
		}
	})

	t.Run("should remove template whitespace by default", func(t *testing.T) {
		analysis, err := analyzeComponent(t, `
// ng:Component({template: "<div> <span>a</span> </div>"})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis.Template.PreserveWhitespaces {
			t.Error("PreserveWhitespaces = true, want false")
		}
	})

	t.Run("should reject a non boolean preserveWhitespaces", func(t *testing.T) {
		_, err := analyzeComponent(t, `
// ng:Component({template: "x", preserveWhitespaces: 42})
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeValueHasWrongType {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeValueHasWrongType)
		}
		if !strings.Contains(err.Error(), "preserveWhitespaces must be a boolean") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("should honor preserveWhitespaces", func(t *testing.T) {
		analysis, err := analyzeComponent(t, `
// ng:Component({template: "<div> </div>", preserveWhitespaces: true})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if !analysis.Template.PreserveWhitespaces {
			t.Error("PreserveWhitespaces = false, want true")
		}
	})
}

func TestComponentCompile(t *testing.T) {
	compile := func(t *testing.T) string {
		t.Helper()
		registry := scope.NewSelectorScopeRegistry()
		evaluator := partial_evaluator.NewEvaluator(reflection.IsObjectLiteral)
		componentHandler := annotations.NewComponentDecoratorHandler(evaluator, registry)
		pipeHandler := annotations.NewPipeDecoratorHandler(evaluator, registry)
		moduleHandler := annotations.NewNgModuleDecoratorHandler(evaluator, registry)

		declarations := loadDeclarations(t, `
// ng:Component({selector: "my-app", template: "<my-child></my-child><span>{{title | upper}}</span>"})
type AppComponent struct{}

// ng:Component({selector: "my-child", template: "child"})
type ChildComponent struct{}

// ng:Pipe({name: "upper"})
type UpperPipe struct{}

// ng:NgModule({declarations: {AppComponent, ChildComponent, UpperPipe}})
type AppModule struct{}
`)

		var appDecl *reflection.Declaration
		var appAnalysis interface{}
		for _, decl := range declarations {
			for _, handler := range []annotations.DecoratorHandler{componentHandler, pipeHandler, moduleHandler} {
				decorator := handler.Detect(decl)
				if decorator == nil {
					continue
				}
				out, err := handler.Analyze(decl, decorator)
				if err != nil {
					t.Fatalf("Analyze(%s): %v", decl.Name, err)
				}
				if decl.Name == "AppComponent" {
					appDecl = decl
					appAnalysis = out.Analysis
				}
				break
			}
		}
		registry.SealAnalysis()

		pool := constant.NewConstantPool()
		results, err := componentHandler.Compile(appDecl, appAnalysis, pool)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if len(results) != 1 || results[0].Name != "ngComponentDef" {
			t.Fatalf("results = %+v", results)
		}
		return output.EmitExpression(results[0].Initializer)
	}

	t.Run("should generate a component definition", func(t *testing.T) {
		source := compile(t)
		for _, want := range []string{
			"ɵɵdefineComponent",
			"type: AppComponent",
			"'my-app'",
			"AppComponent_Template",
			"ɵɵelement",
			"ɵɵtext",
			"ɵɵtextInterpolate",
			"ɵɵpipe",
			"directives: [ChildComponent]",
			"pipes: [UpperPipe]",
		} {
			if !strings.Contains(source, want) {
				t.Errorf("generated source missing %q:\n%s", want, source)
			}
		}
	})

	t.Run("should generate the same output on repeated compiles", func(t *testing.T) {
		if first, second := compile(t), compile(t); first != second {
			t.Errorf("outputs differ:\n%s\n---\n%s", first, second)
		}
	})

	compileSingle := func(t *testing.T, src string) ([]*annotations.CompileResult, error) {
		t.Helper()
		handler, registry := newComponentHandler()
		decl := loadDeclaration(t, src)
		decorator := handler.Detect(decl)
		if decorator == nil {
			t.Fatal("Detect() = nil")
		}
		out, err := handler.Analyze(decl, decorator)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		registry.SealAnalysis()
		return handler.Compile(decl, out.Analysis, constant.NewConstantPool())
	}

	t.Run("should compile property bindings", func(t *testing.T) {
		results, err := compileSingle(t, `
// ng:Component({selector: "my-app", template: "<div [title]=\"name\"></div>"})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		source := output.EmitExpression(results[0].Initializer)
		if !strings.Contains(source, "ɵɵproperty('title', ctx.name)") {
			t.Errorf("generated source missing the property instruction:\n%s", source)
		}
	})

	t.Run("should select the pipeBind instruction by arity", func(t *testing.T) {
		results, err := compileSingle(t, `
// ng:Component({selector: "my-app", template: "{{title | pad:3}}"})
type AppComponent struct{}
`)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		source := output.EmitExpression(results[0].Initializer)
		if !strings.Contains(source, "ɵɵpipeBind2(") {
			t.Errorf("generated source missing ɵɵpipeBind2:\n%s", source)
		}
		if strings.Contains(source, "ɵɵpipeBind1(") {
			t.Errorf("generated source uses ɵɵpipeBind1 for a two value pipe:\n%s", source)
		}
	})

	t.Run("should report binding expression errors", func(t *testing.T) {
		_, err := compileSingle(t, `
// ng:Component({selector: "my-app", template: "<div [title]=\"name +\"></div>"})
type AppComponent struct{}
`)
		if code := fatalCode(t, err); code != diagnostics.ErrorCodeTemplateParseError {
			t.Errorf("Code = %d, want %d", code, diagnostics.ErrorCodeTemplateParseError)
		}
		if !strings.Contains(err.Error(), "Errors parsing template: ") {
			t.Errorf("message = %q", err.Error())
		}
	})
}
