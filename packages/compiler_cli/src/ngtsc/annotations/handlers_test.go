package annotations_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/annotations"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/diagnostics"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/scope"
)

func newEvaluator() *partial_evaluator.Evaluator {
	return partial_evaluator.NewEvaluator(reflection.IsObjectLiteral)
}

func TestDirectiveDecoratorHandler(t *testing.T) {
	analyze := func(t *testing.T, src string) (interface{}, error) {
		t.Helper()
		handler := annotations.NewDirectiveDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
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
		return out.Analysis, nil
	}

	t.Run("should compile a directive definition", func(t *testing.T) {
		handler := annotations.NewDirectiveDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, `
// ng:Directive({selector: "[highlight]", inputs: {color: "color"}})
type HighlightDirective struct{}
`)
		out, err := handler.Analyze(decl, handler.Detect(decl))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		results, err := handler.Compile(decl, out.Analysis, constant.NewConstantPool())
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if len(results) != 1 || results[0].Name != "ngDirectiveDef" {
			t.Fatalf("results = %+v", results)
		}
		source := output.EmitExpression(results[0].Initializer)
		for _, want := range []string{"ɵɵdefineDirective", "type: HighlightDirective", "'[highlight]'", "inputs:"} {
			if !strings.Contains(source, want) {
				t.Errorf("generated source missing %q:\n%s", want, source)
			}
		}
	})

	t.Run("should skip jit directives", func(t *testing.T) {
		analysis, err := analyze(t, `
// ng:Directive({selector: "[x]", jit: true})
type XDirective struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis != nil {
			t.Errorf("analysis = %+v, want nil", analysis)
		}
	})

	t.Run("should reject non string inputs", func(t *testing.T) {
		_, err := analyze(t, `
// ng:Directive({selector: "[x]", inputs: {color: 42}})
type XDirective struct{}
`)
		fatal, ok := err.(*diagnostics.FatalDiagnosticError)
		if !ok || fatal.Code != diagnostics.ErrorCodeValueHasWrongType {
			t.Errorf("err = %v, want value type diagnostic", err)
		}
	})
}

func TestPipeDecoratorHandler(t *testing.T) {
	analyze := func(t *testing.T, src string) (*annotations.PipeAnalysis, error) {
		t.Helper()
		handler := annotations.NewPipeDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, src)
		out, err := handler.Analyze(decl, handler.Detect(decl))
		if err != nil {
			return nil, err
		}
		return out.Analysis.(*annotations.PipeAnalysis), nil
	}

	t.Run("should analyze a pipe", func(t *testing.T) {
		analysis, err := analyze(t, `
// ng:Pipe({name: "title"})
type TitlePipe struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis.PipeName != "title" || !analysis.Pure {
			t.Errorf("analysis = %+v", analysis)
		}
	})

	t.Run("should honor the pure flag", func(t *testing.T) {
		analysis, err := analyze(t, `
// ng:Pipe({name: "title", pure: false})
type TitlePipe struct{}
`)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis.Pure {
			t.Error("Pure = true, want false")
		}
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := analyze(t, `
// ng:Pipe({})
type TitlePipe struct{}
`)
		fatal, ok := err.(*diagnostics.FatalDiagnosticError)
		if !ok || fatal.Code != diagnostics.ErrorCodePipeMissingName {
			t.Errorf("err = %v, want missing name diagnostic", err)
		}
	})

	t.Run("should compile a pipe definition", func(t *testing.T) {
		handler := annotations.NewPipeDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, `
// ng:Pipe({name: "title"})
type TitlePipe struct{}
`)
		out, err := handler.Analyze(decl, handler.Detect(decl))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		results, err := handler.Compile(decl, out.Analysis, constant.NewConstantPool())
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if results[0].Name != "ngPipeDef" {
			t.Errorf("Name = %q, want ngPipeDef", results[0].Name)
		}
		source := output.EmitExpression(results[0].Initializer)
		for _, want := range []string{"ɵɵdefinePipe", "name: 'title'", "type: TitlePipe", "pure: true"} {
			if !strings.Contains(source, want) {
				t.Errorf("generated source missing %q:\n%s", want, source)
			}
		}
	})
}

func TestNgModuleDecoratorHandler(t *testing.T) {
	t.Run("should analyze module members", func(t *testing.T) {
		handler := annotations.NewNgModuleDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, `
// ng:NgModule({declarations: {AppComponent, TitlePipe}, exports: {AppComponent}})
type AppModule struct{}
`)
		out, err := handler.Analyze(decl, handler.Detect(decl))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		analysis := out.Analysis.(*annotations.NgModuleAnalysis)
		if diff := cmp.Diff([]string{"AppComponent", "TitlePipe"}, analysis.Declarations); diff != "" {
			t.Errorf("Declarations mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"AppComponent"}, analysis.Exports); diff != "" {
			t.Errorf("Exports mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject non reference entries", func(t *testing.T) {
		handler := annotations.NewNgModuleDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, `
// ng:NgModule({declarations: {"AppComponent"}})
type AppModule struct{}
`)
		_, err := handler.Analyze(decl, handler.Detect(decl))
		fatal, ok := err.(*diagnostics.FatalDiagnosticError)
		if !ok || fatal.Code != diagnostics.ErrorCodeValueHasWrongType {
			t.Errorf("err = %v, want value type diagnostic", err)
		}
	})

	t.Run("should compile a module definition", func(t *testing.T) {
		handler := annotations.NewNgModuleDecoratorHandler(newEvaluator(), scope.NewSelectorScopeRegistry())
		decl := loadDeclaration(t, `
// ng:NgModule({declarations: {AppComponent}})
type AppModule struct{}
`)
		out, err := handler.Analyze(decl, handler.Detect(decl))
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		results, err := handler.Compile(decl, out.Analysis, constant.NewConstantPool())
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if results[0].Name != "ngModuleDef" {
			t.Errorf("Name = %q, want ngModuleDef", results[0].Name)
		}
		source := output.EmitExpression(results[0].Initializer)
		for _, want := range []string{"ɵɵdefineNgModule", "type: AppModule", "declarations: [AppComponent]"} {
			if !strings.Contains(source, want) {
				t.Errorf("generated source missing %q:\n%s", want, source)
			}
		}
	})
}
