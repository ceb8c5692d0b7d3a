package ml_parser

import (
	"fmt"
	"strings"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

// TokenType enumerates the token types produced by the lexer
type TokenType int

const (
	TokenTypeTagOpenStart TokenType = iota
	TokenTypeAttrName
	TokenTypeAttrValue
	TokenTypeTagOpenEnd
	TokenTypeTagOpenEndVoid
	TokenTypeTagClose
	TokenTypeText
	TokenTypeComment
	TokenTypeEOF
)

// Token is a single lexed token
type Token struct {
	Type       TokenType
	Parts      []string
	SourceSpan *util.ParseSourceSpan
}

// TokenizeResult represents the result of tokenization
type TokenizeResult struct {
	Tokens []*Token
	Errors []*util.ParseError
}

// Tokenize converts markup source into tokens
func Tokenize(source, url string) *TokenizeResult {
	lexer := newLexer(source, url)
	lexer.lex()
	return &TokenizeResult{Tokens: lexer.tokens, Errors: lexer.errors}
}

type lexer struct {
	file   *util.ParseSourceFile
	input  string
	offset int
	line   int
	col    int
	tokens []*Token
	errors []*util.ParseError
}

type cursorState struct {
	offset int
	line   int
	col    int
}

func newLexer(source, url string) *lexer {
	return &lexer{
		file:  util.NewParseSourceFile(source, url),
		input: source,
	}
}

func (l *lexer) lex() {
	for l.offset < len(l.input) {
		if strings.HasPrefix(l.input[l.offset:], "<!--") {
			l.consumeComment()
		} else if strings.HasPrefix(l.input[l.offset:], "</") {
			l.consumeTagClose()
		} else if l.peek() == '<' && isNameStart(l.peekAt(1)) {
			l.consumeTagOpen()
		} else {
			l.consumeText()
		}
	}
	start := l.state()
	l.emit(TokenTypeEOF, nil, start)
}

func (l *lexer) state() cursorState {
	return cursorState{offset: l.offset, line: l.line, col: l.col}
}

func (l *lexer) spanFrom(start cursorState) *util.ParseSourceSpan {
	startLoc := util.NewParseLocation(l.file, start.offset, start.line, start.col)
	endLoc := util.NewParseLocation(l.file, l.offset, l.line, l.col)
	return util.NewParseSourceSpan(startLoc, endLoc, nil, nil)
}

func (l *lexer) emit(typ TokenType, parts []string, start cursorState) {
	l.tokens = append(l.tokens, &Token{Type: typ, Parts: parts, SourceSpan: l.spanFrom(start)})
}

func (l *lexer) error(msg string, start cursorState) {
	l.errors = append(l.errors, util.NewParseError(l.spanFrom(start), msg))
}

func (l *lexer) peek() byte {
	if l.offset >= len(l.input) {
		return 0
	}
	return l.input[l.offset]
}

func (l *lexer) peekAt(delta int) byte {
	if l.offset+delta >= len(l.input) {
		return 0
	}
	return l.input[l.offset+delta]
}

func (l *lexer) advance() byte {
	ch := l.input[l.offset]
	l.offset++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) atEOF() bool {
	return l.offset >= len(l.input)
}

func (l *lexer) consumeComment() {
	start := l.state()
	for i := 0; i < 4; i++ {
		l.advance()
	}
	var value strings.Builder
	for !l.atEOF() && !strings.HasPrefix(l.input[l.offset:], "-->") {
		value.WriteByte(l.advance())
	}
	if l.atEOF() {
		l.error(`Unexpected character "EOF"`, start)
		return
	}
	for i := 0; i < 3; i++ {
		l.advance()
	}
	l.emit(TokenTypeComment, []string{value.String()}, start)
}

func (l *lexer) consumeTagClose() {
	start := l.state()
	l.advance()
	l.advance()
	name := l.consumeName()
	l.skipWhitespace()
	if l.atEOF() {
		l.error(`Unexpected character "EOF"`, start)
		return
	}
	if l.peek() != '>' {
		l.error(fmt.Sprintf("Unexpected character %q", string(l.peek())), l.state())
		return
	}
	l.advance()
	l.emit(TokenTypeTagClose, []string{name}, start)
}

func (l *lexer) consumeTagOpen() {
	start := l.state()
	l.advance()
	name := l.consumeName()
	l.emit(TokenTypeTagOpenStart, []string{name}, start)

	for {
		l.skipWhitespace()
		if l.atEOF() {
			l.error(`Unexpected character "EOF"`, start)
			return
		}
		ch := l.peek()
		if ch == '>' {
			openEnd := l.state()
			l.advance()
			l.emit(TokenTypeTagOpenEnd, nil, openEnd)
			return
		}
		if ch == '/' && l.peekAt(1) == '>' {
			openEnd := l.state()
			l.advance()
			l.advance()
			l.emit(TokenTypeTagOpenEndVoid, nil, openEnd)
			return
		}
		if ch == '=' {
			l.error(fmt.Sprintf("Unexpected character %q", string(ch)), l.state())
			l.advance()
			continue
		}
		l.consumeAttribute()
	}
}

func (l *lexer) consumeAttribute() {
	start := l.state()
	name := l.consumeAttrName()
	l.emit(TokenTypeAttrName, []string{name}, start)
	l.skipWhitespace()
	if l.peek() != '=' {
		return
	}
	l.advance()
	l.skipWhitespace()
	valueStart := l.state()
	var value strings.Builder
	if quote := l.peek(); quote == '"' || quote == '\'' {
		l.advance()
		for !l.atEOF() && l.peek() != quote {
			value.WriteByte(l.advance())
		}
		if l.atEOF() {
			l.error(`Unexpected character "EOF"`, valueStart)
			return
		}
		l.advance()
	} else {
		for !l.atEOF() && !isWhitespace(l.peek()) && l.peek() != '>' {
			value.WriteByte(l.advance())
		}
	}
	l.emit(TokenTypeAttrValue, []string{value.String()}, valueStart)
}

func (l *lexer) consumeText() {
	start := l.state()
	var value strings.Builder
	for !l.atEOF() {
		if l.peek() == '<' && (l.peekAt(1) == '/' || l.peekAt(1) == '!' || isNameStart(l.peekAt(1))) {
			break
		}
		value.WriteByte(l.advance())
	}
	l.emit(TokenTypeText, []string{value.String()}, start)
}

func (l *lexer) consumeName() string {
	var name strings.Builder
	for !l.atEOF() && isNameChar(l.peek()) {
		name.WriteByte(l.advance())
	}
	return name.String()
}

// consumeAttrName reads an attribute name up to the value, the tag end or
// whitespace. Attribute names are permissive so binding forms like [prop]
// and (event) lex as ordinary attributes.
func (l *lexer) consumeAttrName() string {
	var name strings.Builder
	for !l.atEOF() {
		ch := l.peek()
		if isWhitespace(ch) || ch == '=' || ch == '>' || (ch == '/' && l.peekAt(1) == '>') {
			break
		}
		name.WriteByte(l.advance())
	}
	return name.String()
}

func (l *lexer) skipWhitespace() {
	for !l.atEOF() && isWhitespace(l.peek()) {
		l.advance()
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9') || ch == '-' || ch == ':' || ch == '.'
}
