package constant

import (
	"fmt"
	"strings"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
)

const constantPrefix = "_c"

// PoolInclusionLengthThresholdForStrings defines the length threshold for
// strings. Generally all primitive values are excluded from the ConstantPool,
// but there is an exclusion for strings that reach a certain length threshold.
const PoolInclusionLengthThresholdForStrings = 50

// KEY_CONTEXT is the context to use when producing a key.
// This ensures we see the constant not the reference variable when producing a key.
var KEY_CONTEXT = struct{}{}

// FixupExpression is a placeholder node that allows the node to be replaced
// when the actual node is known. This allows the constant pool to change an
// expression from a direct reference to a constant to a shared constant.
type FixupExpression struct {
	output.ExpressionBase
	original output.OutputExpression
	resolved output.OutputExpression
	shared   bool
}

// NewFixupExpression creates a new FixupExpression
func NewFixupExpression(resolved output.OutputExpression) *FixupExpression {
	return &FixupExpression{
		ExpressionBase: output.ExpressionBase{
			Type:       resolved.GetType(),
			SourceSpan: resolved.GetSourceSpan(),
		},
		original: resolved,
		resolved: resolved,
		shared:   false,
	}
}

// VisitExpression implements the OutputExpression interface
func (f *FixupExpression) VisitExpression(visitor output.ExpressionVisitor, context interface{}) interface{} {
	if context == KEY_CONTEXT {
		// When producing a key we want to traverse the constant not the
		// variable used to refer to it.
		return f.original.VisitExpression(visitor, context)
	}
	return f.resolved.VisitExpression(visitor, context)
}

// IsEquivalent checks structural equivalence
func (f *FixupExpression) IsEquivalent(e output.OutputExpression) bool {
	if other, ok := e.(*FixupExpression); ok {
		return f.resolved.IsEquivalent(other.resolved)
	}
	return false
}

// IsConstant reports whether the expression is constant
func (f *FixupExpression) IsConstant() bool {
	return true
}

// Fixup replaces the resolved expression and marks the fixup as shared
func (f *FixupExpression) Fixup(expression output.OutputExpression) {
	f.resolved = expression
	f.shared = true
}

// ConstantPool is a pool of constants scoped to a single compile invocation.
// Constants are never shared across declarations.
type ConstantPool struct {
	statements   []output.OutputStatement
	literals     map[string]*FixupExpression
	claimedNames map[string]int
}

// NewConstantPool creates a new ConstantPool
func NewConstantPool() *ConstantPool {
	return NewConstantPoolSharingNames(make(map[string]int))
}

// NewConstantPoolSharingNames creates a ConstantPool that allocates generated
// names from the given counters. Pools for declarations emitted into the same
// file share counters so their constants never collide, while the constants
// themselves stay private to each pool.
func NewConstantPoolSharingNames(claimedNames map[string]int) *ConstantPool {
	return &ConstantPool{
		statements:   []output.OutputStatement{},
		literals:     make(map[string]*FixupExpression),
		claimedNames: claimedNames,
	}
}

// GetConstLiteral returns a constant literal, potentially shared
func (cp *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if (isLiteralExpr(literal) && !isLongStringLiteral(literal)) || isFixupExpression(literal) {
		// Do not put simple literals into the constant pool or try to produce
		// a constant for a reference to a constant.
		return literal
	}
	key := GenericKeyFnInstance.KeyOf(literal)
	fixup, exists := cp.literals[key]
	newValue := !exists
	if !exists {
		fixup = NewFixupExpression(literal)
		cp.literals[key] = fixup
	}

	if (!newValue && !fixup.shared) || (newValue && forceShared) {
		// Replace the expression with a variable
		name := cp.freshName()
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(
			name,
			literal,
			output.InferredType,
			output.StmtModifierFinal,
			nil,
		))
		fixup.Fixup(output.NewReadVarExpr(name, nil, nil))
	}

	return fixup
}

// UniqueName produces a unique name in the context of this pool.
// The name might be unique among different prefixes if any of the prefixes end
// in a digit so the prefix should be a constant string (not based on user
// input) and must not end in a digit.
func (cp *ConstantPool) UniqueName(name string, alwaysIncludeSuffix bool) string {
	count := cp.claimedNames[name]
	result := name
	if count > 0 || alwaysIncludeSuffix {
		result = fmt.Sprintf("%s%d", name, count)
	}
	cp.claimedNames[name] = count + 1
	return result
}

func (cp *ConstantPool) freshName() string {
	return cp.UniqueName(constantPrefix, true)
}

// GetStatements returns all statements in the pool, in the order produced
func (cp *ConstantPool) GetStatements() []output.OutputStatement {
	return cp.statements
}

// AddStatement adds a statement to the pool
func (cp *ConstantPool) AddStatement(stmt output.OutputStatement) {
	cp.statements = append(cp.statements, stmt)
}

// ExpressionKeyFn is an interface for generating keys from expressions
type ExpressionKeyFn interface {
	KeyOf(expr output.OutputExpression) string
}

// GenericKeyFn generates keys for expressions
type GenericKeyFn struct{}

// GenericKeyFnInstance is the shared GenericKeyFn
var GenericKeyFnInstance = &GenericKeyFn{}

// KeyOf returns a stable key for an expression
func (g *GenericKeyFn) KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *output.LiteralExpr:
		if str, ok := e.Value.(string); ok {
			return fmt.Sprintf("%q", str)
		}
		return fmt.Sprintf("%v", e.Value)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = g.KeyOf(entry)
		}
		return fmt.Sprintf("[%s]", strings.Join(entries, ","))
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = fmt.Sprintf("%q", key)
			}
			entries[i] = fmt.Sprintf("%s:%s", key, g.KeyOf(entry.Value))
		}
		return fmt.Sprintf("{%s}", strings.Join(entries, ","))
	case *output.ExternalExpr:
		moduleName := "null"
		if e.Value.ModuleName != nil {
			moduleName = fmt.Sprintf("%q", *e.Value.ModuleName)
		}
		name := "null"
		if e.Value.Name != nil {
			name = fmt.Sprintf("%q", *e.Value.Name)
		}
		return fmt.Sprintf("import(%s, %s)", moduleName, name)
	case *output.ReadVarExpr:
		return fmt.Sprintf("read(%s)", e.Name)
	default:
		panic(fmt.Sprintf("GenericKeyFn does not handle expressions of type %T", expr))
	}
}

func isLongStringLiteral(expr output.OutputExpression) bool {
	if lit, ok := expr.(*output.LiteralExpr); ok {
		if str, ok := lit.Value.(string); ok {
			return len(str) >= PoolInclusionLengthThresholdForStrings
		}
	}
	return false
}

func isLiteralExpr(expr output.OutputExpression) bool {
	_, ok := expr.(*output.LiteralExpr)
	return ok
}

func isFixupExpression(expr output.OutputExpression) bool {
	_, ok := expr.(*FixupExpression)
	return ok
}
