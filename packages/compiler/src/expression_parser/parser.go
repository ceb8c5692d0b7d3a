package expression_parser

import (
	"fmt"
	"strings"
)

// InterpolationConfig holds the markers that delimit interpolated expressions
type InterpolationConfig struct {
	Start string
	End   string
}

// DefaultInterpolationConfig is the standard {{ }} interpolation config
var DefaultInterpolationConfig = &InterpolationConfig{Start: "{{", End: "}}"}

// Parser parses binding expressions into an AST
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// ParseBinding parses a property binding expression
func (p *Parser) ParseBinding(input string, location string) *ASTWithSource {
	tokens := p.lexer.Tokenize(input)
	pa := newParseAST(input, location, tokens)
	ast := pa.parsePipe()
	return NewASTWithSource(ast, input, location, pa.errors)
}

// ParseInterpolation parses text containing interpolation markers. It returns
// nil when the input contains no interpolated expressions.
func (p *Parser) ParseInterpolation(input string, location string) *ASTWithSource {
	pieces := splitInterpolation(input, DefaultInterpolationConfig)
	if pieces == nil {
		return nil
	}
	var expressions []AST
	var allErrors []*ParserError
	for _, expr := range pieces.expressions {
		tokens := p.lexer.Tokenize(expr)
		pa := newParseAST(expr, location, tokens)
		expressions = append(expressions, pa.parsePipe())
		allErrors = append(allErrors, pa.errors...)
	}
	interpolation := NewInterpolation(NewParseSpan(0, len(input)), pieces.strings, expressions)
	return NewASTWithSource(interpolation, input, location, allErrors)
}

type splitInterpolationResult struct {
	strings     []string
	expressions []string
}

func splitInterpolation(input string, config *InterpolationConfig) *splitInterpolationResult {
	if !strings.Contains(input, config.Start) {
		return nil
	}
	result := &splitInterpolationResult{}
	rest := input
	for {
		startIdx := strings.Index(rest, config.Start)
		if startIdx < 0 {
			result.strings = append(result.strings, rest)
			break
		}
		endIdx := strings.Index(rest[startIdx+len(config.Start):], config.End)
		if endIdx < 0 {
			result.strings = append(result.strings, rest)
			break
		}
		result.strings = append(result.strings, rest[:startIdx])
		exprStart := startIdx + len(config.Start)
		result.expressions = append(result.expressions, strings.TrimSpace(rest[exprStart:exprStart+endIdx]))
		rest = rest[exprStart+endIdx+len(config.End):]
	}
	if len(result.expressions) == 0 {
		return nil
	}
	return result
}

type parseAST struct {
	input    string
	location string
	tokens   []*Token
	index    int
	errors   []*ParserError
}

func newParseAST(input string, location string, tokens []*Token) *parseAST {
	return &parseAST{input: input, location: location, tokens: tokens}
}

func (p *parseAST) peek() *Token {
	if p.index >= len(p.tokens) {
		return nil
	}
	return p.tokens[p.index]
}

func (p *parseAST) next() *Token {
	token := p.peek()
	if token != nil {
		p.index++
	}
	return token
}

func (p *parseAST) inputIndex() int {
	token := p.peek()
	if token == nil {
		return len(p.input)
	}
	return token.Index
}

func (p *parseAST) span(start int) *ParseSpan {
	return NewParseSpan(start, p.inputIndex())
}

func (p *parseAST) consumeOptionalCharacter(ch string) bool {
	token := p.peek()
	if token != nil && token.IsCharacter(ch) {
		p.index++
		return true
	}
	return false
}

func (p *parseAST) consumeOptionalOperator(op string) bool {
	token := p.peek()
	if token != nil && token.IsOperator(op) {
		p.index++
		return true
	}
	return false
}

func (p *parseAST) expectCharacter(ch string) {
	if !p.consumeOptionalCharacter(ch) {
		p.reportError(fmt.Sprintf("Missing expected %s", ch))
	}
}

func (p *parseAST) reportError(message string) {
	p.errors = append(p.errors, NewParserError(message, p.input, p.location))
	p.index = len(p.tokens)
}

func (p *parseAST) parsePipe() AST {
	start := p.inputIndex()
	result := p.parseExpression()
	for p.consumeOptionalOperator("|") {
		nameToken := p.next()
		if nameToken == nil || !nameToken.IsIdentifier() {
			p.reportError("Expected pipe name")
			return NewEmptyExpr(p.span(start))
		}
		var args []AST
		for p.consumeOptionalCharacter(":") {
			args = append(args, p.parseExpression())
		}
		result = NewBindingPipe(p.span(start), result, nameToken.StrValue, args)
	}
	return result
}

func (p *parseAST) parseExpression() AST {
	return p.parseLogicalOr()
}

func (p *parseAST) parseLogicalOr() AST {
	start := p.inputIndex()
	result := p.parseLogicalAnd()
	for p.consumeOptionalOperator("||") {
		right := p.parseLogicalAnd()
		result = NewBinary(p.span(start), "||", result, right)
	}
	return result
}

func (p *parseAST) parseLogicalAnd() AST {
	start := p.inputIndex()
	result := p.parseEquality()
	for p.consumeOptionalOperator("&&") {
		right := p.parseEquality()
		result = NewBinary(p.span(start), "&&", result, right)
	}
	return result
}

func (p *parseAST) parseEquality() AST {
	start := p.inputIndex()
	result := p.parseRelational()
	for {
		token := p.peek()
		if token == nil || token.Type != TokenTypeOperator {
			return result
		}
		switch token.StrValue {
		case "==", "!=":
			p.index++
			right := p.parseRelational()
			result = NewBinary(p.span(start), token.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAST) parseRelational() AST {
	start := p.inputIndex()
	result := p.parseAdditive()
	for {
		token := p.peek()
		if token == nil || token.Type != TokenTypeOperator {
			return result
		}
		switch token.StrValue {
		case "<", ">", "<=", ">=":
			p.index++
			right := p.parseAdditive()
			result = NewBinary(p.span(start), token.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAST) parseAdditive() AST {
	start := p.inputIndex()
	result := p.parseMultiplicative()
	for {
		token := p.peek()
		if token == nil || token.Type != TokenTypeOperator {
			return result
		}
		switch token.StrValue {
		case "+", "-":
			p.index++
			right := p.parseMultiplicative()
			result = NewBinary(p.span(start), token.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAST) parseMultiplicative() AST {
	start := p.inputIndex()
	result := p.parsePrimary()
	for {
		token := p.peek()
		if token == nil || token.Type != TokenTypeOperator {
			return result
		}
		switch token.StrValue {
		case "*", "/", "%":
			p.index++
			right := p.parsePrimary()
			result = NewBinary(p.span(start), token.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAST) parsePrimary() AST {
	start := p.inputIndex()
	token := p.peek()
	if token == nil {
		return NewEmptyExpr(p.span(start))
	}

	switch {
	case token.IsCharacter("("):
		p.index++
		result := p.parsePipe()
		p.expectCharacter(")")
		return result
	case token.IsNumber():
		p.index++
		return NewLiteralPrimitive(p.span(start), token.NumValue)
	case token.IsString():
		p.index++
		return NewLiteralPrimitive(p.span(start), token.StrValue)
	case token.IsKeyword():
		p.index++
		switch token.StrValue {
		case "null":
			return NewLiteralPrimitive(p.span(start), nil)
		case "true":
			return NewLiteralPrimitive(p.span(start), true)
		case "false":
			return NewLiteralPrimitive(p.span(start), false)
		case "this":
			return p.parseAccessChain(start, NewImplicitReceiver(p.span(start)))
		}
	case token.IsIdentifier():
		p.index++
		receiver := NewImplicitReceiver(NewParseSpan(start, start))
		return p.parseAccessChain(start, NewPropertyRead(p.span(start), receiver, token.StrValue))
	case token.IsError():
		p.reportError(token.StrValue)
		return NewEmptyExpr(p.span(start))
	}

	p.reportError(fmt.Sprintf("Unexpected token %s", token))
	return NewEmptyExpr(p.span(start))
}

func (p *parseAST) parseAccessChain(start int, receiver AST) AST {
	result := receiver
	for p.consumeOptionalCharacter(".") {
		token := p.next()
		if token == nil || !token.IsIdentifier() {
			p.reportError("Expected identifier after .")
			return NewEmptyExpr(p.span(start))
		}
		result = NewPropertyRead(p.span(start), result, token.StrValue)
	}
	return result
}
