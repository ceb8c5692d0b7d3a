package view

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/expression_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/ml_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/template_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

// ParseTemplateOptions modifies how a template is parsed
type ParseTemplateOptions struct {
	// PreserveWhitespaces disables whitespace removal when true
	PreserveWhitespaces bool
}

// ParsedTemplate is the result of parsing a component template
type ParsedTemplate struct {
	// Errors holds any parse errors, or nil if parsing succeeded
	Errors []*util.ParseError

	// Nodes are the parsed root nodes of the template
	Nodes []ml_parser.Node

	// PreserveWhitespaces records the option the template was parsed with
	PreserveWhitespaces bool
}

// ParseTemplate parses a component template into HTML AST nodes
func ParseTemplate(template string, templateURL string, options *ParseTemplateOptions) *ParsedTemplate {
	if options == nil {
		options = &ParseTemplateOptions{}
	}
	parser := ml_parser.NewHtmlParser()
	parseResult := parser.Parse(template, templateURL)

	if len(parseResult.Errors) > 0 {
		return &ParsedTemplate{
			Errors:              parseResult.Errors,
			Nodes:               []ml_parser.Node{},
			PreserveWhitespaces: options.PreserveWhitespaces,
		}
	}

	if !options.PreserveWhitespaces {
		parseResult = ml_parser.RemoveWhitespaces(parseResult)
	}

	return &ParsedTemplate{
		Nodes:               parseResult.RootNodes,
		PreserveWhitespaces: options.PreserveWhitespaces,
	}
}

// MakeBindingParser creates a fresh binding parser for template compilation
func MakeBindingParser() *template_parser.BindingParser {
	return template_parser.NewBindingParser(
		expression_parser.NewParser(expression_parser.NewLexer()),
	)
}
