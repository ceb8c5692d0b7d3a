package partial_evaluator_test

import (
	"go/parser"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/partial_evaluator"
	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
)

func evaluate(t *testing.T, src string) interface{} {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}
	evaluator := partial_evaluator.NewEvaluator(reflection.IsObjectLiteral)
	return evaluator.Evaluate(expr)
}

func TestEvaluator(t *testing.T) {
	t.Run("should evaluate literals", func(t *testing.T) {
		cases := map[string]interface{}{
			`"hello"`: "hello",
			"42":      float64(42),
			"1.5":     1.5,
			"true":    true,
			"false":   false,
			"nil":     nil,
		}
		for src, expected := range cases {
			if got := evaluate(t, src); got != expected {
				t.Errorf("Evaluate(%s) = %v, want %v", src, got, expected)
			}
		}
	})

	t.Run("should fold unary and binary operations", func(t *testing.T) {
		cases := map[string]interface{}{
			"-3":            float64(-3),
			"!true":         false,
			"1 + 2":         float64(3),
			"2 * 3":         float64(6),
			`"foo" + "bar"`: "foobar",
		}
		for src, expected := range cases {
			if got := evaluate(t, src); got != expected {
				t.Errorf("Evaluate(%s) = %v, want %v", src, got, expected)
			}
		}
	})

	t.Run("should evaluate identifiers as references", func(t *testing.T) {
		got := evaluate(t, "AppComponent")
		ref, ok := got.(*partial_evaluator.Reference)
		if !ok {
			t.Fatalf("Evaluate() = %T, want *Reference", got)
		}
		if ref.Name != "AppComponent" {
			t.Errorf("Name = %q, want AppComponent", ref.Name)
		}
	})

	t.Run("should evaluate keyed composite literals as objects", func(t *testing.T) {
		got := evaluate(t, `ɵobject{selector: "my-app", standalone: true}`)
		obj, ok := got.(*partial_evaluator.ObjectValue)
		if !ok {
			t.Fatalf("Evaluate() = %T, want *ObjectValue", got)
		}
		if diff := cmp.Diff([]string{"selector", "standalone"}, obj.Keys()); diff != "" {
			t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
		}
		if selector, _ := obj.Get("selector"); selector != "my-app" {
			t.Errorf("selector = %v, want my-app", selector)
		}
		if standalone, _ := obj.Get("standalone"); standalone != true {
			t.Errorf("standalone = %v, want true", standalone)
		}
	})

	t.Run("should evaluate elided composite literals as lists", func(t *testing.T) {
		got := evaluate(t, `ɵobject{names: {"a", "b"}}`)
		obj := got.(*partial_evaluator.ObjectValue)
		names, _ := obj.Get("names")
		if diff := cmp.Diff([]interface{}{"a", "b"}, names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep reference lists", func(t *testing.T) {
		got := evaluate(t, `ɵobject{declarations: {AppComponent, TitlePipe}}`)
		obj := got.(*partial_evaluator.ObjectValue)
		raw, _ := obj.Get("declarations")
		list := raw.([]interface{})
		if len(list) != 2 {
			t.Fatalf("got %d entries, want 2", len(list))
		}
		if list[0].(*partial_evaluator.Reference).Name != "AppComponent" {
			t.Errorf("first entry = %v", list[0])
		}
	})

	t.Run("should mark unsupported expressions as dynamic", func(t *testing.T) {
		for _, src := range []string{"someFn()", "a[0]", "func() {}"} {
			got := evaluate(t, src)
			if _, ok := got.(*partial_evaluator.DynamicValue); !ok {
				t.Errorf("Evaluate(%s) = %T, want *DynamicValue", src, got)
			}
		}
	})
}
