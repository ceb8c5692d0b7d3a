package ml_parser

import (
	"regexp"
	"strings"
)

// WS_REPLACE_RE matches any run of whitespace characters
var WS_REPLACE_RE = regexp.MustCompile(`[ \t\n\r\f]+`)

// WhitespaceVisitor removes whitespace-only text nodes and collapses
// consecutive whitespace characters into a single space.
type WhitespaceVisitor struct{}

// NewWhitespaceVisitor creates a new WhitespaceVisitor
func NewWhitespaceVisitor() *WhitespaceVisitor {
	return &WhitespaceVisitor{}
}

// VisitElement implements the Visitor interface
func (v *WhitespaceVisitor) VisitElement(element *Element, context interface{}) interface{} {
	if PreservesWhitespace(element.Name) {
		// Content inside pre/textarea/script/style must be left untouched.
		return element
	}
	children := VisitAll(v, element.Children, context)
	return NewElement(
		element.Name,
		element.Attrs,
		children,
		element.IsSelfClosing,
		element.SourceSpan(),
		element.StartSourceSpan,
		element.EndSourceSpan,
		element.IsVoid,
	)
}

// VisitAttribute implements the Visitor interface
func (v *WhitespaceVisitor) VisitAttribute(attribute *Attribute, context interface{}) interface{} {
	return attribute
}

// VisitText implements the Visitor interface
func (v *WhitespaceVisitor) VisitText(text *Text, context interface{}) interface{} {
	isBlank := strings.TrimSpace(text.Value) == ""
	if isBlank {
		return nil
	}
	collapsed := WS_REPLACE_RE.ReplaceAllString(text.Value, " ")
	return NewText(collapsed, text.SourceSpan())
}

// VisitComment implements the Visitor interface
func (v *WhitespaceVisitor) VisitComment(comment *Comment, context interface{}) interface{} {
	return comment
}

// RemoveWhitespaces applies the WhitespaceVisitor to a parse tree result
func RemoveWhitespaces(htmlAstWithErrors *ParseTreeResult) *ParseTreeResult {
	return NewParseTreeResult(
		VisitAll(NewWhitespaceVisitor(), htmlAstWithErrors.RootNodes, nil),
		htmlAstWithErrors.Errors,
	)
}
