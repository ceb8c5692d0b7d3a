package reflection

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"
)

// DecoratorOrigin is the origin recorded on decorators parsed from ng
// directives. Detection matches on it, so same-named decorators from
// another source are never claimed.
const DecoratorOrigin = "ng"

// DirectivePrefix marks a doc comment line as a decorator directive
const DirectivePrefix = DecoratorOrigin + ":"

// objectMarker names the synthetic composite literal type used to make
// object arguments parseable as Go expressions
const objectMarker = "ɵobject"

// argsMarker names the synthetic call wrapping a directive's argument list
const argsMarker = "ɵargs"

// ReadDecorators parses the decorator directives in a declaration's doc
// comment. Lines that do not start with the directive prefix are ignored, as
// are directives naming a decorator outside the supported set.
func ReadDecorators(doc *ast.CommentGroup) ([]*Decorator, error) {
	if doc == nil {
		return nil, nil
	}
	var decorators []*Decorator
	for _, comment := range doc.List {
		text := strings.TrimPrefix(comment.Text, "//")
		text = strings.TrimSpace(text)
		if !strings.HasPrefix(text, DirectivePrefix) {
			continue
		}
		directive := strings.TrimSpace(strings.TrimPrefix(text, DirectivePrefix))
		decorator, err := parseDirective(directive)
		if err != nil {
			return nil, err
		}
		if decorator != nil {
			decorators = append(decorators, decorator)
		}
	}
	return decorators, nil
}

func parseDirective(directive string) (*Decorator, error) {
	open := strings.Index(directive, "(")
	if open < 0 || !strings.HasSuffix(directive, ")") {
		return nil, fmt.Errorf("malformed directive %q: expected Name(...)", directive)
	}
	name := strings.TrimSpace(directive[:open])
	kind, ok := DecoratorKindFromName(name)
	if !ok {
		return nil, nil
	}
	argSource := directive[open+1 : len(directive)-1]
	args, err := parseDirectiveArgs(argSource)
	if err != nil {
		return nil, fmt.Errorf("malformed directive %q: %v", directive, err)
	}
	return &Decorator{
		Kind:   kind,
		Name:   name,
		Origin: DecoratorOrigin,
		Args:   args,
	}, nil
}

// parseDirectiveArgs parses a directive argument list as Go expressions. The
// whole list is wrapped in a synthetic call so the standard parser splits
// the arguments, and object literals get a synthetic type name so they parse
// as composite literals.
func parseDirectiveArgs(argSource string) ([]ast.Expr, error) {
	trimmed := strings.TrimSpace(argSource)
	if trimmed == "" {
		return nil, nil
	}
	expr, err := parser.ParseExpr(argsMarker + "(" + markObjectLiterals(argSource) + ")")
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return nil, fmt.Errorf("argument list did not parse as a call")
	}
	return call.Args, nil
}

// markObjectLiterals inserts the object marker before every brace that opens
// a top level object literal, leaving string contents and nested braces
// untouched. Nested braces parse as composite literals with elided types.
func markObjectLiterals(source string) string {
	var out strings.Builder
	depth := 0
	var inString byte
	escaped := false
	for i := 0; i < len(source); i++ {
		ch := source[i]
		if inString != 0 {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == inString {
				inString = 0
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			inString = ch
		case '(', '[':
			depth++
		case ')', ']', '}':
			depth--
		case '{':
			if depth == 0 && startsValue(source[:i]) {
				out.WriteString(objectMarker)
			}
			depth++
		}
		out.WriteByte(ch)
	}
	return out.String()
}

// startsValue checks whether a brace at the end of the given prefix opens a
// new value rather than continuing an expression
func startsValue(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t")
	if trimmed == "" {
		return true
	}
	switch trimmed[len(trimmed)-1] {
	case '(', ',', ':':
		return true
	}
	return false
}

// IsObjectLiteral checks whether a parsed decorator argument is an object
// literal produced by the directive parser
func IsObjectLiteral(arg ast.Expr) (*ast.CompositeLit, bool) {
	lit, ok := arg.(*ast.CompositeLit)
	if !ok {
		return nil, false
	}
	if ident, ok := lit.Type.(*ast.Ident); !ok || ident.Name != objectMarker {
		return nil, false
	}
	return lit, true
}
