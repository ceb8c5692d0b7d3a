package output

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

// TypeModifier modifies how a type is emitted
type TypeModifier int

const (
	TypeModifierNone TypeModifier = 0
	TypeModifierConst TypeModifier = 1 << 0
)

// Type is the base interface for all output types
type Type interface {
	VisitType(visitor TypeVisitor, context interface{}) interface{}
	Modifiers() TypeModifier
}

// BuiltinTypeName enumerates the builtin type names
type BuiltinTypeName int

const (
	BuiltinTypeNameBool BuiltinTypeName = iota
	BuiltinTypeNameDynamic
	BuiltinTypeNameInt
	BuiltinTypeNameNumber
	BuiltinTypeNameString
	BuiltinTypeNameFunction
	BuiltinTypeNameInferred
	BuiltinTypeNameNone
)

// BuiltinType represents a builtin type
type BuiltinType struct {
	Name      BuiltinTypeName
	modifiers TypeModifier
}

// NewBuiltinType creates a new BuiltinType
func NewBuiltinType(name BuiltinTypeName, modifiers TypeModifier) *BuiltinType {
	return &BuiltinType{Name: name, modifiers: modifiers}
}

// VisitType implements the Type interface
func (t *BuiltinType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitBuiltinType(t, context)
}

// Modifiers returns the type modifiers
func (t *BuiltinType) Modifiers() TypeModifier {
	return t.modifiers
}

// ExpressionType represents a type described by an expression
type ExpressionType struct {
	Value      OutputExpression
	TypeParams []Type
	modifiers  TypeModifier
}

// NewExpressionType creates a new ExpressionType
func NewExpressionType(value OutputExpression, modifiers TypeModifier, typeParams []Type) *ExpressionType {
	return &ExpressionType{Value: value, TypeParams: typeParams, modifiers: modifiers}
}

// VisitType implements the Type interface
func (t *ExpressionType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionType(t, context)
}

// Modifiers returns the type modifiers
func (t *ExpressionType) Modifiers() TypeModifier {
	return t.modifiers
}

// Common builtin type instances
var (
	DynamicType  = NewBuiltinType(BuiltinTypeNameDynamic, TypeModifierNone)
	InferredType = NewBuiltinType(BuiltinTypeNameInferred, TypeModifierNone)
	BoolType     = NewBuiltinType(BuiltinTypeNameBool, TypeModifierNone)
	NumberType   = NewBuiltinType(BuiltinTypeNameNumber, TypeModifierNone)
	StringType   = NewBuiltinType(BuiltinTypeNameString, TypeModifierNone)
	FunctionType = NewBuiltinType(BuiltinTypeNameFunction, TypeModifierNone)
	NoneType     = NewBuiltinType(BuiltinTypeNameNone, TypeModifierNone)
)

// TypeVisitor visits output types
type TypeVisitor interface {
	VisitBuiltinType(typ *BuiltinType, context interface{}) interface{}
	VisitExpressionType(typ *ExpressionType, context interface{}) interface{}
}

// BinaryOperator enumerates the binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
)

// OutputExpression is the base interface for all output expressions
type OutputExpression interface {
	GetType() Type
	GetSourceSpan() *util.ParseSourceSpan
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
	IsEquivalent(e OutputExpression) bool
	IsConstant() bool
}

// ExpressionVisitor visits output expressions
type ExpressionVisitor interface {
	VisitReadVarExpr(expr *ReadVarExpr, context interface{}) interface{}
	VisitReadPropExpr(expr *ReadPropExpr, context interface{}) interface{}
	VisitLiteralExpr(expr *LiteralExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(expr *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(expr *LiteralMapExpr, context interface{}) interface{}
	VisitExternalExpr(expr *ExternalExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{}
	VisitFunctionExpr(expr *FunctionExpr, context interface{}) interface{}
	VisitWritePropExpr(expr *WritePropExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(expr *BinaryOperatorExpr, context interface{}) interface{}
}

// ExpressionBase provides the common fields of all expressions
type ExpressionBase struct {
	Type       Type
	SourceSpan *util.ParseSourceSpan
}

// GetType returns the type of the expression
func (e *ExpressionBase) GetType() Type {
	return e.Type
}

// GetSourceSpan returns the source span of the expression
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// ReadVarExpr reads a variable
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Name:           name,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *ReadVarExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadVarExpr)
	return ok && e.Name == o.Name
}

// IsConstant reports whether the expression is constant
func (e *ReadVarExpr) IsConstant() bool {
	return false
}

// ReadPropExpr reads a property of a receiver
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver OutputExpression, name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Name:           name,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *ReadPropExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ReadPropExpr)
	return ok && e.Name == o.Name && e.Receiver.IsEquivalent(o.Receiver)
}

// IsConstant reports whether the expression is constant
func (e *ReadPropExpr) IsConstant() bool {
	return false
}

// LiteralExpr holds a literal value
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *LiteralExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralExpr)
	return ok && e.Value == o.Value
}

// IsConstant reports whether the expression is constant
func (e *LiteralExpr) IsConstant() bool {
	return true
}

// NullExpr is the literal null
var NullExpr = NewLiteralExpr(nil, nil, nil)

// LiteralArrayExpr holds a literal array
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Entries:        entries,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *LiteralArrayExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralArrayExpr)
	if !ok || len(e.Entries) != len(o.Entries) {
		return false
	}
	for i, entry := range e.Entries {
		if !entry.IsEquivalent(o.Entries[i]) {
			return false
		}
	}
	return true
}

// IsConstant reports whether the expression is constant
func (e *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

// LiteralMapEntry is a single key/value pair of a literal map
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

// NewLiteralMapEntry creates a new LiteralMapEntry
func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// LiteralMapExpr holds a literal map
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Entries:        entries,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *LiteralMapExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*LiteralMapExpr)
	if !ok || len(e.Entries) != len(o.Entries) {
		return false
	}
	for i, entry := range e.Entries {
		oEntry := o.Entries[i]
		if entry.Key != oEntry.Key || !entry.Value.IsEquivalent(oEntry.Value) {
			return false
		}
	}
	return true
}

// IsConstant reports whether the expression is constant
func (e *LiteralMapExpr) IsConstant() bool {
	for _, entry := range e.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

// ExternalReference identifies a symbol imported from another module
type ExternalReference struct {
	ModuleName *string
	Name       *string
}

// ExternalExpr references an external symbol
type ExternalExpr struct {
	ExpressionBase
	Value      *ExternalReference
	TypeParams []Type
}

// NewExternalExpr creates a new ExternalExpr
func NewExternalExpr(value *ExternalReference, typ Type, typeParams []Type, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
		TypeParams:     typeParams,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *ExternalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitExternalExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *ExternalExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*ExternalExpr)
	return ok && strPtrEq(e.Value.ModuleName, o.Value.ModuleName) && strPtrEq(e.Value.Name, o.Value.Name)
}

// IsConstant reports whether the expression is constant
func (e *ExternalExpr) IsConstant() bool {
	return false
}

// InvokeFunctionExpr invokes a function expression
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Fn:             fn,
		Args:           args,
		Pure:           pure,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *InvokeFunctionExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*InvokeFunctionExpr)
	if !ok || e.Pure != o.Pure || !e.Fn.IsEquivalent(o.Fn) || len(e.Args) != len(o.Args) {
		return false
	}
	for i, arg := range e.Args {
		if !arg.IsEquivalent(o.Args[i]) {
			return false
		}
	}
	return true
}

// IsConstant reports whether the expression is constant
func (e *InvokeFunctionExpr) IsConstant() bool {
	return false
}

// FnParam is a function parameter
type FnParam struct {
	Name string
	Type Type
}

// NewFnParam creates a new FnParam
func NewFnParam(name string, typ Type) *FnParam {
	return &FnParam{Name: name, Type: typ}
}

// FunctionExpr is a function expression
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       *string
}

// NewFunctionExpr creates a new FunctionExpr
func NewFunctionExpr(params []*FnParam, statements []OutputStatement, typ Type, sourceSpan *util.ParseSourceSpan, name *string) *FunctionExpr {
	return &FunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Params:         params,
		Statements:     statements,
		Name:           name,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *FunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitFunctionExpr(e, context)
}

// IsEquivalent checks structural equivalence. Function bodies are not
// compared statement-by-statement.
func (e *FunctionExpr) IsEquivalent(other OutputExpression) bool {
	return e == other
}

// IsConstant reports whether the expression is constant
func (e *FunctionExpr) IsConstant() bool {
	return false
}

// ToDeclStmt converts the function expression to a function declaration statement
func (e *FunctionExpr) ToDeclStmt(name string, modifiers StmtModifier) *DeclareFunctionStmt {
	return NewDeclareFunctionStmt(name, e.Params, e.Statements, e.Type, modifiers, e.SourceSpan)
}

// WritePropExpr assigns a value to a property of a receiver
type WritePropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
	Value    OutputExpression
}

// NewWritePropExpr creates a new WritePropExpr
func NewWritePropExpr(receiver OutputExpression, name string, value OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *WritePropExpr {
	return &WritePropExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Name:           name,
		Value:          value,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *WritePropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitWritePropExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *WritePropExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*WritePropExpr)
	return ok && e.Receiver.IsEquivalent(o.Receiver) && e.Name == o.Name &&
		e.Value.IsEquivalent(o.Value)
}

// IsConstant reports whether the expression is constant
func (e *WritePropExpr) IsConstant() bool {
	return false
}

// BinaryOperatorExpr applies a binary operator
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Operator:       operator,
		Lhs:            lhs,
		Rhs:            rhs,
	}
}

// VisitExpression implements the OutputExpression interface
func (e *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(e, context)
}

// IsEquivalent checks structural equivalence
func (e *BinaryOperatorExpr) IsEquivalent(other OutputExpression) bool {
	o, ok := other.(*BinaryOperatorExpr)
	return ok && e.Operator == o.Operator && e.Lhs.IsEquivalent(o.Lhs) && e.Rhs.IsEquivalent(o.Rhs)
}

// IsConstant reports whether the expression is constant
func (e *BinaryOperatorExpr) IsConstant() bool {
	return false
}

// StmtModifier modifies how a statement is emitted
type StmtModifier int

const (
	StmtModifierNone  StmtModifier = 0
	StmtModifierFinal StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 1
)

// OutputStatement is the base interface for all output statements
type OutputStatement interface {
	GetSourceSpan() *util.ParseSourceSpan
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
}

// StatementVisitor visits output statements
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{}
	VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{}
	VisitIfStmt(stmt *IfStmt, context interface{}) interface{}
}

// StatementBase provides the common fields of all statements
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span of the statement
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

// HasModifier checks whether the statement carries a modifier
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareVarStmt declares a variable
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
	Type  Type
}

// NewDeclareVarStmt creates a new DeclareVarStmt
func NewDeclareVarStmt(name string, value OutputExpression, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	return &DeclareVarStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Value:         value,
		Type:          typ,
	}
}

// VisitStatement implements the OutputStatement interface
func (s *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(s, context)
}

// DeclareFunctionStmt declares a function
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
	Type       Type
}

// NewDeclareFunctionStmt creates a new DeclareFunctionStmt
func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Params:        params,
		Statements:    statements,
		Type:          typ,
	}
}

// VisitStatement implements the OutputStatement interface
func (s *DeclareFunctionStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareFunctionStmt(s, context)
}

// ExpressionStatement evaluates an expression for its side effects
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Expr:          expr,
	}
}

// VisitStatement implements the OutputStatement interface
func (s *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStatement(s, context)
}

// ReturnStatement returns a value from a function
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Value:         value,
	}
}

// VisitStatement implements the OutputStatement interface
func (s *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStatement(s, context)
}

// IfStmt is a conditional statement
type IfStmt struct {
	StatementBase
	Condition OutputExpression
	TrueCase  []OutputStatement
	FalseCase []OutputStatement
}

// NewIfStmt creates a new IfStmt
func NewIfStmt(condition OutputExpression, trueCase, falseCase []OutputStatement, sourceSpan *util.ParseSourceSpan) *IfStmt {
	return &IfStmt{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Condition:     condition,
		TrueCase:      trueCase,
		FalseCase:     falseCase,
	}
}

// VisitStatement implements the OutputStatement interface
func (s *IfStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitIfStmt(s, context)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
