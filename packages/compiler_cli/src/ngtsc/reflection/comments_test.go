package reflection_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
)

func parseDoc(t *testing.T, doc string) *ast.CommentGroup {
	t.Helper()
	src := doc + "\ntype T struct{}\n"
	file, err := parser.ParseFile(token.NewFileSet(), "test.go", "package test\n\n"+src, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	genDecl := file.Decls[0].(*ast.GenDecl)
	return genDecl.Doc
}

func readDecorators(t *testing.T, doc string) []*reflection.Decorator {
	t.Helper()
	decorators, err := reflection.ReadDecorators(parseDoc(t, doc))
	if err != nil {
		t.Fatalf("ReadDecorators: %v", err)
	}
	return decorators
}

func TestReadDecorators(t *testing.T) {
	t.Run("should parse a component directive", func(t *testing.T) {
		decorators := readDecorators(t, `// ng:Component({selector: "my-app", template: "<div></div>"})`)
		if len(decorators) != 1 {
			t.Fatalf("got %d decorators, want 1", len(decorators))
		}
		decorator := decorators[0]
		if decorator.Kind != reflection.DecoratorKindComponent {
			t.Errorf("Kind = %v, want Component", decorator.Kind)
		}
		if decorator.Name != "Component" {
			t.Errorf("Name = %q, want Component", decorator.Name)
		}
		if decorator.Origin != "ng" {
			t.Errorf("Origin = %q, want ng", decorator.Origin)
		}
		if len(decorator.Args) != 1 {
			t.Fatalf("got %d args, want 1", len(decorator.Args))
		}
		if _, ok := reflection.IsObjectLiteral(decorator.Args[0]); !ok {
			t.Errorf("arg %T is not an object literal", decorator.Args[0])
		}
	})

	t.Run("should ignore ordinary comment lines", func(t *testing.T) {
		decorators := readDecorators(t, "// T is a plain type.\n// It has no decorators.")
		if len(decorators) != 0 {
			t.Errorf("got %d decorators, want 0", len(decorators))
		}
	})

	t.Run("should ignore unknown decorator names", func(t *testing.T) {
		decorators := readDecorators(t, `// ng:Injectable({providedIn: "root"})`)
		if len(decorators) != 0 {
			t.Errorf("got %d decorators, want 0", len(decorators))
		}
	})

	t.Run("should keep prose lines around a directive", func(t *testing.T) {
		decorators := readDecorators(t, "// T renders the app shell.\n// ng:Component({template: \"x\"})")
		if len(decorators) != 1 {
			t.Errorf("got %d decorators, want 1", len(decorators))
		}
	})

	t.Run("should split multiple arguments", func(t *testing.T) {
		decorators := readDecorators(t, `// ng:Component({selector: "a"}, extra)`)
		if len(decorators) != 1 {
			t.Fatalf("got %d decorators, want 1", len(decorators))
		}
		if len(decorators[0].Args) != 2 {
			t.Errorf("got %d args, want 2", len(decorators[0].Args))
		}
	})

	t.Run("should parse reference arguments as identifiers", func(t *testing.T) {
		decorators := readDecorators(t, "// ng:Component(someConfig)")
		if len(decorators[0].Args) != 1 {
			t.Fatalf("got %d args, want 1", len(decorators[0].Args))
		}
		if _, ok := decorators[0].Args[0].(*ast.Ident); !ok {
			t.Errorf("arg is %T, want *ast.Ident", decorators[0].Args[0])
		}
		if _, ok := reflection.IsObjectLiteral(decorators[0].Args[0]); ok {
			t.Error("identifier arg should not be an object literal")
		}
	})

	t.Run("should parse nested braces", func(t *testing.T) {
		decorators := readDecorators(t,
			`// ng:NgModule({declarations: {AppComponent, TitlePipe}, exports: {AppComponent}})`)
		lit, ok := reflection.IsObjectLiteral(decorators[0].Args[0])
		if !ok {
			t.Fatal("arg is not an object literal")
		}
		if len(lit.Elts) != 2 {
			t.Errorf("got %d entries, want 2", len(lit.Elts))
		}
	})

	t.Run("should parse directives with no arguments", func(t *testing.T) {
		decorators := readDecorators(t, "// ng:Directive()")
		if len(decorators) != 1 {
			t.Fatalf("got %d decorators, want 1", len(decorators))
		}
		if len(decorators[0].Args) != 0 {
			t.Errorf("got %d args, want 0", len(decorators[0].Args))
		}
	})

	t.Run("should reject malformed directives", func(t *testing.T) {
		_, err := reflection.ReadDecorators(parseDoc(t, "// ng:Component"))
		if err == nil {
			t.Error("expected an error for a directive without parentheses")
		}
	})

	t.Run("should reject unparseable arguments", func(t *testing.T) {
		_, err := reflection.ReadDecorators(parseDoc(t, "// ng:Component({selector: })"))
		if err == nil {
			t.Error("expected an error for an unparseable argument")
		}
	})
}
