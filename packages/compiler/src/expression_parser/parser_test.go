package expression_parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/expression_parser"
)

// unparse renders an expression AST back into a readable form for assertions
func unparse(ast expression_parser.AST) string {
	switch e := ast.(type) {
	case *expression_parser.EmptyExpr:
		return ""
	case *expression_parser.ImplicitReceiver:
		return ""
	case *expression_parser.PropertyRead:
		receiver := unparse(e.Receiver)
		if receiver == "" {
			return e.Name
		}
		return receiver + "." + e.Name
	case *expression_parser.LiteralPrimitive:
		if s, ok := e.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", e.Value)
	case *expression_parser.Binary:
		return "(" + unparse(e.Left) + " " + e.Operation + " " + unparse(e.Right) + ")"
	case *expression_parser.BindingPipe:
		result := "(" + unparse(e.Exp) + " | " + e.Name
		for _, arg := range e.Args {
			result += ":" + unparse(arg)
		}
		return result + ")"
	case *expression_parser.Interpolation:
		var parts []string
		for i, expr := range e.Expressions {
			parts = append(parts, fmt.Sprintf("%q", e.Strings[i]))
			parts = append(parts, "{{"+unparse(expr)+"}}")
		}
		parts = append(parts, fmt.Sprintf("%q", e.Strings[len(e.Strings)-1]))
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("<%T>", ast)
}

func parseBinding(t *testing.T, input string) *expression_parser.ASTWithSource {
	t.Helper()
	parser := expression_parser.NewParser(expression_parser.NewLexer())
	return parser.ParseBinding(input, "TestComp")
}

func TestParseBinding(t *testing.T) {
	check := func(t *testing.T, input, expected string) {
		t.Helper()
		result := parseBinding(t, input)
		if len(result.Errors) > 0 {
			t.Fatalf("ParseBinding(%q) errors: %v", input, result.Errors)
		}
		if got := unparse(result.AST); got != expected {
			t.Errorf("ParseBinding(%q) = %s, want %s", input, got, expected)
		}
	}

	t.Run("should parse property reads", func(t *testing.T) {
		check(t, "name", "name")
		check(t, "user.name.first", "user.name.first")
		check(t, "this.name", "name")
	})

	t.Run("should parse literals", func(t *testing.T) {
		check(t, "42", "42")
		check(t, "1.5", "1.5")
		check(t, "'hello'", `"hello"`)
		check(t, `"hello"`, `"hello"`)
		check(t, "true", "true")
		check(t, "false", "false")
		check(t, "null", "<nil>")
	})

	t.Run("should honor operator precedence", func(t *testing.T) {
		check(t, "a + b * c", "(a + (b * c))")
		check(t, "a * b + c", "((a * b) + c)")
		check(t, "a == b + c", "(a == (b + c))")
		check(t, "a && b || c", "((a && b) || c)")
		check(t, "a < b == c > d", "((a < b) == (c > d))")
	})

	t.Run("should parse parenthesized expressions", func(t *testing.T) {
		check(t, "(a + b) * c", "((a + b) * c)")
	})

	t.Run("should parse pipes", func(t *testing.T) {
		check(t, "name | uppercase", "(name | uppercase)")
		check(t, "value | slice:1:2", "(value | slice:1:2)")
		check(t, "a + b | fmt", "((a + b) | fmt)")
		check(t, "a | first | second", "((a | first) | second)")
	})

	t.Run("should report lexer errors", func(t *testing.T) {
		result := parseBinding(t, "'unterminated")
		if len(result.Errors) == 0 {
			t.Error("expected errors for unterminated string")
		}
	})

	t.Run("should report missing pipe names", func(t *testing.T) {
		result := parseBinding(t, "value | 3")
		if len(result.Errors) == 0 {
			t.Error("expected errors for pipe without a name")
		}
	})
}

func TestParseInterpolation(t *testing.T) {
	parser := expression_parser.NewParser(expression_parser.NewLexer())

	t.Run("should return nil when there is no interpolation", func(t *testing.T) {
		if result := parser.ParseInterpolation("plain text", "TestComp"); result != nil {
			t.Errorf("ParseInterpolation() = %v, want nil", result)
		}
	})

	t.Run("should split static strings and expressions", func(t *testing.T) {
		result := parser.ParseInterpolation("Hello {{name}}!", "TestComp")
		if result == nil {
			t.Fatal("ParseInterpolation() returned nil")
		}
		interpolation, ok := result.AST.(*expression_parser.Interpolation)
		if !ok {
			t.Fatalf("AST is %T, want *Interpolation", result.AST)
		}
		if diff := cmp.Diff([]string{"Hello ", "!"}, interpolation.Strings); diff != "" {
			t.Errorf("Strings mismatch (-want +got):\n%s", diff)
		}
		if len(interpolation.Expressions) != 1 || unparse(interpolation.Expressions[0]) != "name" {
			t.Errorf("Expressions = %v, want [name]", interpolation.Expressions)
		}
	})

	t.Run("should parse multiple interpolations", func(t *testing.T) {
		result := parser.ParseInterpolation("{{a}} and {{b}}", "TestComp")
		if result == nil {
			t.Fatal("ParseInterpolation() returned nil")
		}
		interpolation := result.AST.(*expression_parser.Interpolation)
		if len(interpolation.Expressions) != 2 {
			t.Fatalf("got %d expressions, want 2", len(interpolation.Expressions))
		}
		if diff := cmp.Diff([]string{"", " and ", ""}, interpolation.Strings); diff != "" {
			t.Errorf("Strings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse pipes inside interpolations", func(t *testing.T) {
		result := parser.ParseInterpolation("{{name | uppercase}}", "TestComp")
		if result == nil {
			t.Fatal("ParseInterpolation() returned nil")
		}
		interpolation := result.AST.(*expression_parser.Interpolation)
		if got := unparse(interpolation.Expressions[0]); got != "(name | uppercase)" {
			t.Errorf("expression = %s, want (name | uppercase)", got)
		}
	})
}
