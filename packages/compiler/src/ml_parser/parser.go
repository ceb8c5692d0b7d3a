package ml_parser

import (
	"fmt"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

// TreeError represents a tree parsing error
type TreeError struct {
	*util.ParseError
	ElementName *string
}

// NewTreeError creates a new TreeError
func NewTreeError(elementName *string, span *util.ParseSourceSpan, msg string) *TreeError {
	return &TreeError{
		ParseError:  util.NewParseError(span, msg),
		ElementName: elementName,
	}
}

// ParseTreeResult represents the result of parsing a tree
type ParseTreeResult struct {
	RootNodes []Node
	Errors    []*util.ParseError
}

// NewParseTreeResult creates a new ParseTreeResult
func NewParseTreeResult(rootNodes []Node, errors []*util.ParseError) *ParseTreeResult {
	return &ParseTreeResult{
		RootNodes: rootNodes,
		Errors:    errors,
	}
}

// HtmlParser parses HTML markup into a tree of nodes
type HtmlParser struct{}

// NewHtmlParser creates a new HtmlParser
func NewHtmlParser() *HtmlParser {
	return &HtmlParser{}
}

// Parse parses source code into a ParseTreeResult
func (p *HtmlParser) Parse(source, url string) *ParseTreeResult {
	tokenizeResult := Tokenize(source, url)
	builder := newTreeBuilder(tokenizeResult.Tokens)
	builder.build()

	allErrors := append([]*util.ParseError{}, tokenizeResult.Errors...)
	for _, treeErr := range builder.errors {
		allErrors = append(allErrors, treeErr.ParseError)
	}
	return NewParseTreeResult(builder.rootNodes, allErrors)
}

type treeBuilder struct {
	tokens    []*Token
	index     int
	rootNodes []Node
	stack     []*Element
	errors    []*TreeError
}

func newTreeBuilder(tokens []*Token) *treeBuilder {
	return &treeBuilder{tokens: tokens}
}

func (b *treeBuilder) build() {
	for {
		token := b.advance()
		switch token.Type {
		case TokenTypeTagOpenStart:
			b.consumeStartTag(token)
		case TokenTypeTagClose:
			b.consumeEndTag(token)
		case TokenTypeText:
			if token.Parts[0] != "" {
				b.addToParent(NewText(token.Parts[0], token.SourceSpan))
			}
		case TokenTypeComment:
			b.addToParent(NewComment(token.Parts[0], token.SourceSpan))
		case TokenTypeEOF:
			// Check for unclosed elements
			for i := len(b.stack) - 1; i >= 0; i-- {
				el := b.stack[i]
				b.errors = append(b.errors, NewTreeError(
					&el.Name,
					el.StartSourceSpan,
					fmt.Sprintf("Unclosed tag %q", el.Name),
				))
			}
			return
		}
	}
}

func (b *treeBuilder) advance() *Token {
	token := b.tokens[b.index]
	if b.index < len(b.tokens)-1 {
		b.index++
	}
	return token
}

func (b *treeBuilder) peek() *Token {
	return b.tokens[b.index]
}

func (b *treeBuilder) consumeStartTag(startToken *Token) {
	name := startToken.Parts[0]
	var attrs []*Attribute
	for b.peek().Type == TokenTypeAttrName {
		attrName := b.advance()
		attrValue := ""
		var valueSpan *util.ParseSourceSpan
		span := attrName.SourceSpan
		if b.peek().Type == TokenTypeAttrValue {
			valueToken := b.advance()
			attrValue = valueToken.Parts[0]
			valueSpan = valueToken.SourceSpan
			span = util.NewParseSourceSpan(attrName.SourceSpan.Start, valueToken.SourceSpan.End, nil, nil)
		}
		attrs = append(attrs, NewAttribute(attrName.Parts[0], attrValue, span, valueSpan))
	}

	selfClosing := false
	endToken := b.peek()
	if endToken.Type == TokenTypeTagOpenEnd || endToken.Type == TokenTypeTagOpenEndVoid {
		b.advance()
		selfClosing = endToken.Type == TokenTypeTagOpenEndVoid
	}

	isVoid := IsVoidElement(name)
	startSpan := util.NewParseSourceSpan(startToken.SourceSpan.Start, endToken.SourceSpan.End, nil, nil)
	el := NewElement(name, attrs, nil, selfClosing, startSpan, startSpan, nil, isVoid)
	b.addToParent(el)
	if !selfClosing && !isVoid {
		b.stack = append(b.stack, el)
	}
}

func (b *treeBuilder) consumeEndTag(token *Token) {
	name := token.Parts[0]
	if IsVoidElement(name) {
		b.errors = append(b.errors, NewTreeError(
			&name,
			token.SourceSpan,
			fmt.Sprintf("Void elements do not have end tags %q", name),
		))
		return
	}
	if len(b.stack) == 0 || b.stack[len(b.stack)-1].Name != name {
		b.errors = append(b.errors, NewTreeError(
			&name,
			token.SourceSpan,
			fmt.Sprintf("Unexpected closing tag %q. It may happen when the tag has already been closed by another tag.", name),
		))
		return
	}
	el := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	el.EndSourceSpan = token.SourceSpan
}

func (b *treeBuilder) addToParent(node Node) {
	if len(b.stack) == 0 {
		b.rootNodes = append(b.rootNodes, node)
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, node)
}
