package output

import (
	"fmt"
	"strconv"
	"strings"
)

var indentWith = "  "

var binaryOperators = map[BinaryOperator]string{
	BinaryOperatorAnd:          "&&",
	BinaryOperatorBigger:       ">",
	BinaryOperatorBiggerEquals: ">=",
	BinaryOperatorBitwiseAnd:   "&",
	BinaryOperatorDivide:       "/",
	BinaryOperatorEquals:       "==",
	BinaryOperatorIdentical:    "===",
	BinaryOperatorLower:        "<",
	BinaryOperatorLowerEquals:  "<=",
	BinaryOperatorMinus:        "-",
	BinaryOperatorModulo:       "%",
	BinaryOperatorMultiply:     "*",
	BinaryOperatorNotEquals:    "!=",
	BinaryOperatorNotIdentical: "!==",
	BinaryOperatorOr:           "||",
	BinaryOperatorPlus:         "+",
}

// EmitterVisitorContext collects emitted source text line by line
type EmitterVisitorContext struct {
	indent int
	lines  []string
	parts  []string
}

// CreateRootEmitterVisitorContext creates a context with zero indentation
func CreateRootEmitterVisitorContext() *EmitterVisitorContext {
	return &EmitterVisitorContext{}
}

// Print appends a part to the current line
func (ctx *EmitterVisitorContext) Print(part string) {
	if len(ctx.parts) == 0 {
		ctx.parts = append(ctx.parts, strings.Repeat(indentWith, ctx.indent))
	}
	ctx.parts = append(ctx.parts, part)
}

// Println appends a part and terminates the current line
func (ctx *EmitterVisitorContext) Println(lastPart string) {
	ctx.Print(lastPart)
	ctx.lines = append(ctx.lines, strings.Join(ctx.parts, ""))
	ctx.parts = nil
}

// IncIndent increases the indentation level
func (ctx *EmitterVisitorContext) IncIndent() {
	ctx.indent++
}

// DecIndent decreases the indentation level
func (ctx *EmitterVisitorContext) DecIndent() {
	ctx.indent--
}

// ToSource returns the emitted source text
func (ctx *EmitterVisitorContext) ToSource() string {
	lines := ctx.lines
	if len(ctx.parts) > 0 {
		lines = append(lines, strings.Join(ctx.parts, ""))
	}
	return strings.Join(lines, "\n")
}

// JsEmitterVisitor emits output AST nodes as JavaScript source
type JsEmitterVisitor struct{}

// NewJsEmitterVisitor creates a new JsEmitterVisitor
func NewJsEmitterVisitor() *JsEmitterVisitor {
	return &JsEmitterVisitor{}
}

// EmitStatements emits a list of statements as JavaScript source
func EmitStatements(statements []OutputStatement) string {
	visitor := NewJsEmitterVisitor()
	ctx := CreateRootEmitterVisitorContext()
	visitor.VisitAllStatements(statements, ctx)
	return ctx.ToSource()
}

// EmitExpression emits a single expression as JavaScript source
func EmitExpression(expr OutputExpression) string {
	visitor := NewJsEmitterVisitor()
	ctx := CreateRootEmitterVisitorContext()
	expr.VisitExpression(visitor, ctx)
	return ctx.ToSource()
}

func (v *JsEmitterVisitor) getContext(context interface{}) *EmitterVisitorContext {
	return context.(*EmitterVisitorContext)
}

// VisitAllStatements visits all statements in order
func (v *JsEmitterVisitor) VisitAllStatements(statements []OutputStatement, ctx *EmitterVisitorContext) {
	for _, stmt := range statements {
		stmt.VisitStatement(v, ctx)
	}
}

// VisitAllExpressions visits all expressions, separated by a string
func (v *JsEmitterVisitor) VisitAllExpressions(expressions []OutputExpression, ctx *EmitterVisitorContext, separator string) {
	for i, expr := range expressions {
		if i > 0 {
			ctx.Print(separator)
		}
		expr.VisitExpression(v, ctx)
	}
}

// VisitDeclareVarStmt implements the StatementVisitor interface
func (v *JsEmitterVisitor) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	keyword := "var"
	if stmt.HasModifier(StmtModifierFinal) {
		keyword = "const"
	}
	ctx.Print(fmt.Sprintf("%s %s", keyword, stmt.Name))
	if stmt.Value != nil {
		ctx.Print(" = ")
		stmt.Value.VisitExpression(v, ctx)
	}
	ctx.Println(";")
	return nil
}

// VisitDeclareFunctionStmt implements the StatementVisitor interface
func (v *JsEmitterVisitor) VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(fmt.Sprintf("function %s(", stmt.Name))
	v.visitParams(stmt.Params, ctx)
	ctx.Println(") {")
	ctx.IncIndent()
	v.VisitAllStatements(stmt.Statements, ctx)
	ctx.DecIndent()
	ctx.Println("}")
	return nil
}

// VisitExpressionStatement implements the StatementVisitor interface
func (v *JsEmitterVisitor) VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	stmt.Expr.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

// VisitReturnStatement implements the StatementVisitor interface
func (v *JsEmitterVisitor) VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("return ")
	stmt.Value.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

// VisitIfStmt implements the StatementVisitor interface
func (v *JsEmitterVisitor) VisitIfStmt(stmt *IfStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("if (")
	stmt.Condition.VisitExpression(v, ctx)
	ctx.Println(") {")
	ctx.IncIndent()
	v.VisitAllStatements(stmt.TrueCase, ctx)
	ctx.DecIndent()
	if len(stmt.FalseCase) > 0 {
		ctx.Println("} else {")
		ctx.IncIndent()
		v.VisitAllStatements(stmt.FalseCase, ctx)
		ctx.DecIndent()
	}
	ctx.Println("}")
	return nil
}

// VisitReadVarExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitReadVarExpr(expr *ReadVarExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print(expr.Name)
	return nil
}

// VisitReadPropExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitReadPropExpr(expr *ReadPropExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	expr.Receiver.VisitExpression(v, ctx)
	ctx.Print(".")
	ctx.Print(expr.Name)
	return nil
}

// VisitLiteralExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitLiteralExpr(expr *LiteralExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	switch value := expr.Value.(type) {
	case nil:
		ctx.Print("null")
	case string:
		ctx.Print(EscapeIdentifier(value, true))
	case bool:
		ctx.Print(strconv.FormatBool(value))
	default:
		ctx.Print(fmt.Sprintf("%v", value))
	}
	return nil
}

// VisitLiteralArrayExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitLiteralArrayExpr(expr *LiteralArrayExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("[")
	v.VisitAllExpressions(expr.Entries, ctx, ", ")
	ctx.Print("]")
	return nil
}

// VisitLiteralMapExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitLiteralMapExpr(expr *LiteralMapExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("{ ")
	for i, entry := range expr.Entries {
		if i > 0 {
			ctx.Print(", ")
		}
		key := entry.Key
		if entry.Quoted {
			key = EscapeIdentifier(key, true)
		}
		ctx.Print(key + ": ")
		entry.Value.VisitExpression(v, ctx)
	}
	ctx.Print(" }")
	return nil
}

// VisitExternalExpr implements the ExpressionVisitor interface.
// References are emitted by name; module resolution is up to the runtime that
// consumes the generated source.
func (v *JsEmitterVisitor) VisitExternalExpr(expr *ExternalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	if expr.Value.Name != nil {
		ctx.Print(*expr.Value.Name)
	}
	return nil
}

// VisitInvokeFunctionExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	expr.Fn.VisitExpression(v, ctx)
	ctx.Print("(")
	v.VisitAllExpressions(expr.Args, ctx, ", ")
	ctx.Print(")")
	return nil
}

// VisitFunctionExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitFunctionExpr(expr *FunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	name := ""
	if expr.Name != nil {
		name = " " + *expr.Name
	}
	ctx.Print(fmt.Sprintf("function%s(", name))
	v.visitParams(expr.Params, ctx)
	ctx.Println(") {")
	ctx.IncIndent()
	v.VisitAllStatements(expr.Statements, ctx)
	ctx.DecIndent()
	ctx.Print("}")
	return nil
}

// VisitWritePropExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitWritePropExpr(expr *WritePropExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	expr.Receiver.VisitExpression(v, ctx)
	ctx.Print(fmt.Sprintf(".%s = ", expr.Name))
	expr.Value.VisitExpression(v, ctx)
	return nil
}

// VisitBinaryOperatorExpr implements the ExpressionVisitor interface
func (v *JsEmitterVisitor) VisitBinaryOperatorExpr(expr *BinaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	opStr, ok := binaryOperators[expr.Operator]
	if !ok {
		panic(fmt.Sprintf("unknown operator %d", expr.Operator))
	}
	ctx.Print("(")
	expr.Lhs.VisitExpression(v, ctx)
	ctx.Print(fmt.Sprintf(" %s ", opStr))
	expr.Rhs.VisitExpression(v, ctx)
	ctx.Print(")")
	return nil
}

func (v *JsEmitterVisitor) visitParams(params []*FnParam, ctx *EmitterVisitorContext) {
	for i, param := range params {
		if i > 0 {
			ctx.Print(", ")
		}
		ctx.Print(param.Name)
	}
}

// EscapeIdentifier escapes a string for use in generated JavaScript source
func EscapeIdentifier(input string, alwaysQuote bool) string {
	var body strings.Builder
	for _, r := range input {
		switch r {
		case '\\':
			body.WriteString(`\\`)
		case '\'':
			body.WriteString(`\'`)
		case '\n':
			body.WriteString(`\n`)
		case '\r':
			body.WriteString(`\r`)
		default:
			body.WriteRune(r)
		}
	}
	requiresQuotes := alwaysQuote || !isLegalIdentifier(input)
	if requiresQuotes {
		return "'" + body.String() + "'"
	}
	return body.String()
}

func isLegalIdentifier(input string) bool {
	if len(input) == 0 {
		return false
	}
	for i, r := range input {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
