package expression_parser

// ParseSpan records the character range of an expression node relative to the
// expression source
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// AST is the base interface for all expression AST nodes
type AST interface {
	Span() *ParseSpan
	Visit(visitor AstVisitor, context interface{}) interface{}
}

// ASTBase provides the common fields of all expression nodes
type ASTBase struct {
	span *ParseSpan
}

// Span returns the span of the node
func (a *ASTBase) Span() *ParseSpan {
	return a.span
}

// EmptyExpr is produced when the parser could not produce an expression
type EmptyExpr struct {
	ASTBase
}

// NewEmptyExpr creates a new EmptyExpr
func NewEmptyExpr(span *ParseSpan) *EmptyExpr {
	return &EmptyExpr{ASTBase{span: span}}
}

// Visit implements the AST interface
func (e *EmptyExpr) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitEmptyExpr(e, context)
}

// ImplicitReceiver is the receiver of an unqualified property read
type ImplicitReceiver struct {
	ASTBase
}

// NewImplicitReceiver creates a new ImplicitReceiver
func NewImplicitReceiver(span *ParseSpan) *ImplicitReceiver {
	return &ImplicitReceiver{ASTBase{span: span}}
}

// Visit implements the AST interface
func (e *ImplicitReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitImplicitReceiver(e, context)
}

// PropertyRead reads a property from a receiver
type PropertyRead struct {
	ASTBase
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(span *ParseSpan, receiver AST, name string) *PropertyRead {
	return &PropertyRead{ASTBase: ASTBase{span: span}, Receiver: receiver, Name: name}
}

// Visit implements the AST interface
func (e *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(e, context)
}

// LiteralPrimitive is a literal string, number, boolean or null
type LiteralPrimitive struct {
	ASTBase
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(span *ParseSpan, value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{ASTBase: ASTBase{span: span}, Value: value}
}

// Visit implements the AST interface
func (e *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(e, context)
}

// Binary applies a binary operation to two operands
type Binary struct {
	ASTBase
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(span *ParseSpan, operation string, left, right AST) *Binary {
	return &Binary{ASTBase: ASTBase{span: span}, Operation: operation, Left: left, Right: right}
}

// Visit implements the AST interface
func (e *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(e, context)
}

// BindingPipe applies a pipe transformation to an expression
type BindingPipe struct {
	ASTBase
	Exp  AST
	Name string
	Args []AST
}

// NewBindingPipe creates a new BindingPipe
func NewBindingPipe(span *ParseSpan, exp AST, name string, args []AST) *BindingPipe {
	return &BindingPipe{ASTBase: ASTBase{span: span}, Exp: exp, Name: name, Args: args}
}

// Visit implements the AST interface
func (e *BindingPipe) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPipe(e, context)
}

// Interpolation is a sequence of literal string parts interleaved with
// expressions
type Interpolation struct {
	ASTBase
	Strings     []string
	Expressions []AST
}

// NewInterpolation creates a new Interpolation
func NewInterpolation(span *ParseSpan, strings []string, expressions []AST) *Interpolation {
	return &Interpolation{ASTBase: ASTBase{span: span}, Strings: strings, Expressions: expressions}
}

// Visit implements the AST interface
func (e *Interpolation) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitInterpolation(e, context)
}

// ASTWithSource pairs a parsed AST with its source text and location
type ASTWithSource struct {
	AST      AST
	Source   string
	Location string
	Errors   []*ParserError
}

// NewASTWithSource creates a new ASTWithSource
func NewASTWithSource(ast AST, source, location string, errors []*ParserError) *ASTWithSource {
	return &ASTWithSource{AST: ast, Source: source, Location: location, Errors: errors}
}

// ParserError describes an error encountered while parsing an expression
type ParserError struct {
	Message  string
	Input    string
	Location string
}

// NewParserError creates a new ParserError
func NewParserError(message, input, location string) *ParserError {
	return &ParserError{Message: message, Input: input, Location: location}
}

// Error implements the error interface
func (e *ParserError) Error() string {
	return "Parser Error: " + e.Message + " " + e.Input + " " + e.Location
}

// AstVisitor visits expression AST nodes
type AstVisitor interface {
	VisitEmptyExpr(ast *EmptyExpr, context interface{}) interface{}
	VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitPipe(ast *BindingPipe, context interface{}) interface{}
	VisitInterpolation(ast *Interpolation, context interface{}) interface{}
}
