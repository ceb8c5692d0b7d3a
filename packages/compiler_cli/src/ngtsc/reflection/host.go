package reflection

import (
	"go/ast"
)

// DecoratorKind identifies which of the supported decorators a directive
// comment names. The set is closed; unknown names never produce a Decorator.
type DecoratorKind int

const (
	DecoratorKindComponent DecoratorKind = iota
	DecoratorKindDirective
	DecoratorKindPipe
	DecoratorKindNgModule
)

var decoratorKindNames = map[string]DecoratorKind{
	"Component": DecoratorKindComponent,
	"Directive": DecoratorKindDirective,
	"Pipe":      DecoratorKindPipe,
	"NgModule":  DecoratorKindNgModule,
}

// DecoratorKindFromName maps a decorator name onto its kind. The second
// return value is false for names outside the supported set.
func DecoratorKindFromName(name string) (DecoratorKind, bool) {
	kind, ok := decoratorKindNames[name]
	return kind, ok
}

// String returns the decorator name for the kind
func (k DecoratorKind) String() string {
	switch k {
	case DecoratorKindComponent:
		return "Component"
	case DecoratorKindDirective:
		return "Directive"
	case DecoratorKindPipe:
		return "Pipe"
	case DecoratorKindNgModule:
		return "NgModule"
	}
	return "Unknown"
}

// Decorator is a single parsed decorator directive attached to a declaration
type Decorator struct {
	// Kind identifies the decorator within the closed supported set
	Kind DecoratorKind

	// Name is the decorator name as written in the directive
	Name string

	// Origin is the directive prefix the decorator was parsed from
	Origin string

	// Args holds the parsed decorator arguments
	Args []ast.Expr
}

// Declaration is a type declaration that may carry decorator directives.
// Declarations are compared by pointer identity throughout the compiler.
type Declaration struct {
	// Name of the declared type
	Name string

	// FileName of the source file holding the declaration
	FileName string

	// TypeSpec is the underlying syntax node
	TypeSpec *ast.TypeSpec

	// Decorators parsed from the declaration's doc comment
	Decorators []*Decorator
}
