package expression_parser

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType enumerates the token types produced by the lexer
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeKeyword
	TokenTypeString
	TokenTypeNumber
	TokenTypeOperator
	TokenTypeError
)

var keywords = map[string]bool{
	"null":  true,
	"true":  true,
	"false": true,
	"this":  true,
}

// Token is a single lexed expression token
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{Index: index, End: end, Type: typ, NumValue: numValue, StrValue: strValue}
}

// IsCharacter checks whether the token is the given punctuation character
func (t *Token) IsCharacter(ch string) bool {
	return t.Type == TokenTypeCharacter && t.StrValue == ch
}

// IsOperator checks whether the token is the given operator
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsIdentifier checks whether the token is an identifier
func (t *Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsKeyword checks whether the token is a keyword
func (t *Token) IsKeyword() bool {
	return t.Type == TokenTypeKeyword
}

// IsNumber checks whether the token is a number
func (t *Token) IsNumber() bool {
	return t.Type == TokenTypeNumber
}

// IsString checks whether the token is a string
func (t *Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsError checks whether the token is an error token
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// String returns the string representation of the token
func (t *Token) String() string {
	if t.Type == TokenTypeNumber {
		return strconv.FormatFloat(t.NumValue, 'f', -1, 64)
	}
	return t.StrValue
}

// Lexer tokenizes binding expression source text
type Lexer struct{}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize converts expression source into tokens
func (l *Lexer) Tokenize(text string) []*Token {
	s := &exprScanner{input: text}
	var tokens []*Token
	for {
		token := s.scanToken()
		if token == nil {
			break
		}
		tokens = append(tokens, token)
	}
	return tokens
}

type exprScanner struct {
	input string
	index int
}

func (s *exprScanner) peek() byte {
	if s.index >= len(s.input) {
		return 0
	}
	return s.input[s.index]
}

func (s *exprScanner) peekAt(delta int) byte {
	if s.index+delta >= len(s.input) {
		return 0
	}
	return s.input[s.index+delta]
}

func (s *exprScanner) scanToken() *Token {
	for s.index < len(s.input) && isExprWhitespace(s.input[s.index]) {
		s.index++
	}
	if s.index >= len(s.input) {
		return nil
	}

	start := s.index
	ch := s.input[s.index]

	switch {
	case isIdentifierStart(ch):
		return s.scanIdentifier(start)
	case ch >= '0' && ch <= '9':
		return s.scanNumber(start)
	case ch == '\'' || ch == '"':
		return s.scanString(start)
	}

	switch ch {
	case '(', ')', '[', ']', ',', ':', '.':
		s.index++
		return NewToken(start, s.index, TokenTypeCharacter, 0, string(ch))
	case '+', '-', '*', '/', '%', '|', '!', '<', '>', '=', '&':
		return s.scanOperator(start)
	}

	s.index++
	return NewToken(start, s.index, TokenTypeError,
		0, fmt.Sprintf("Unexpected character [%s]", string(ch)))
}

func (s *exprScanner) scanIdentifier(start int) *Token {
	for s.index < len(s.input) && isIdentifierPart(s.input[s.index]) {
		s.index++
	}
	str := s.input[start:s.index]
	typ := TokenTypeIdentifier
	if keywords[str] {
		typ = TokenTypeKeyword
	}
	return NewToken(start, s.index, typ, 0, str)
}

func (s *exprScanner) scanNumber(start int) *Token {
	seenDot := false
	for s.index < len(s.input) {
		ch := s.input[s.index]
		if ch == '.' && !seenDot && s.index+1 < len(s.input) && s.input[s.index+1] >= '0' && s.input[s.index+1] <= '9' {
			seenDot = true
		} else if ch < '0' || ch > '9' {
			break
		}
		s.index++
	}
	value, err := strconv.ParseFloat(s.input[start:s.index], 64)
	if err != nil {
		return NewToken(start, s.index, TokenTypeError, 0, "Invalid number")
	}
	return NewToken(start, s.index, TokenTypeNumber, value, "")
}

func (s *exprScanner) scanString(start int) *Token {
	quote := s.input[s.index]
	s.index++
	var value strings.Builder
	for s.index < len(s.input) && s.input[s.index] != quote {
		ch := s.input[s.index]
		if ch == '\\' && s.index+1 < len(s.input) {
			s.index++
			escaped := s.input[s.index]
			switch escaped {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			default:
				value.WriteByte(escaped)
			}
		} else {
			value.WriteByte(ch)
		}
		s.index++
	}
	if s.index >= len(s.input) {
		return NewToken(start, s.index, TokenTypeError, 0, "Unterminated quote")
	}
	s.index++
	return NewToken(start, s.index, TokenTypeString, 0, value.String())
}

func (s *exprScanner) scanOperator(start int) *Token {
	one := string(s.input[s.index])
	s.index++
	if s.index < len(s.input) {
		two := one + string(s.input[s.index])
		switch two {
		case "==", "!=", "<=", ">=", "&&", "||":
			s.index++
			return NewToken(start, s.index, TokenTypeOperator, 0, two)
		}
	}
	return NewToken(start, s.index, TokenTypeOperator, 0, one)
}

func isExprWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || (ch >= '0' && ch <= '9')
}
