package template_parser

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/expression_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

const PROPERTY_PREFIX = "["
const PROPERTY_SUFFIX = "]"
const EVENT_PREFIX = "("
const EVENT_SUFFIX = ")"

// BindingParser parses binding expressions found in templates
type BindingParser struct {
	exprParser *expression_parser.Parser
	Errors     []*util.ParseError
}

// NewBindingParser creates a new BindingParser
func NewBindingParser(exprParser *expression_parser.Parser) *BindingParser {
	return &BindingParser{exprParser: exprParser}
}

// GetErrors returns the errors
func (bp *BindingParser) GetErrors() []*util.ParseError {
	return bp.Errors
}

// ParseInterpolation parses text that may contain interpolation markers.
// It returns nil when the text contains no interpolated expressions.
func (bp *BindingParser) ParseInterpolation(
	value string,
	sourceSpan *util.ParseSourceSpan,
) *expression_parser.ASTWithSource {
	ast := bp.exprParser.ParseInterpolation(value, sourceSpan.Start.String())
	if ast == nil {
		return nil
	}
	bp.collectErrors(ast, sourceSpan)
	return ast
}

// ParsePropertyBinding parses the expression of a property binding attribute
func (bp *BindingParser) ParsePropertyBinding(
	value string,
	sourceSpan *util.ParseSourceSpan,
) *expression_parser.ASTWithSource {
	ast := bp.exprParser.ParseBinding(value, sourceSpan.Start.String())
	bp.collectErrors(ast, sourceSpan)
	return ast
}

// IsPropertyBindingAttribute checks whether an attribute name uses the
// [property] binding syntax.
func IsPropertyBindingAttribute(name string) bool {
	return len(name) > 2 &&
		name[:1] == PROPERTY_PREFIX && name[len(name)-1:] == PROPERTY_SUFFIX
}

// IsEventBindingAttribute checks whether an attribute name uses the
// (event) binding syntax.
func IsEventBindingAttribute(name string) bool {
	return len(name) > 2 &&
		name[:1] == EVENT_PREFIX && name[len(name)-1:] == EVENT_SUFFIX
}

// BindingTargetName strips the binding delimiters from an attribute name
func BindingTargetName(name string) string {
	return name[1 : len(name)-1]
}

func (bp *BindingParser) collectErrors(
	ast *expression_parser.ASTWithSource,
	sourceSpan *util.ParseSourceSpan,
) {
	for _, err := range ast.Errors {
		bp.reportError(err.Message, sourceSpan)
	}
}

func (bp *BindingParser) reportError(message string, sourceSpan *util.ParseSourceSpan) {
	bp.Errors = append(bp.Errors, util.NewParseError(sourceSpan, message))
}
