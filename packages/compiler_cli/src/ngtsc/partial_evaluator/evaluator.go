package partial_evaluator

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
)

// DynamicValue marks an expression the evaluator could not resolve to a
// static value
type DynamicValue struct {
	Node   ast.Expr
	Reason string
}

// String describes why the value is dynamic
func (d *DynamicValue) String() string {
	return d.Reason
}

// Reference is a resolved reference to a declared identifier
type Reference struct {
	Name string
}

// ObjectValue is a resolved object literal. Keys preserve source order.
type ObjectValue struct {
	keys   []string
	values map[string]interface{}
}

// NewObjectValue creates an empty ObjectValue
func NewObjectValue() *ObjectValue {
	return &ObjectValue{values: map[string]interface{}{}}
}

// Set adds or replaces an entry
func (o *ObjectValue) Set(key string, value interface{}) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Has checks whether a key is present
func (o *ObjectValue) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Get returns the value for a key
func (o *ObjectValue) Get(key string) (interface{}, bool) {
	value, ok := o.values[key]
	return value, ok
}

// Keys returns the keys in source order
func (o *ObjectValue) Keys() []string {
	return o.keys
}

// IsObjectLiteralFn checks whether a composite literal is a directive object
// literal. The reflection package installs the real check; keeping it as a
// variable avoids an import cycle.
type IsObjectLiteralFn func(expr ast.Expr) (*ast.CompositeLit, bool)

// Evaluator statically evaluates decorator argument expressions
type Evaluator struct {
	isObjectLiteral IsObjectLiteralFn
}

// NewEvaluator creates a new Evaluator
func NewEvaluator(isObjectLiteral IsObjectLiteralFn) *Evaluator {
	return &Evaluator{isObjectLiteral: isObjectLiteral}
}

// Evaluate resolves an expression to a static value. Strings, booleans and
// numbers map onto their Go values, object literals onto *ObjectValue, lists
// onto []interface{} and identifiers onto *Reference. Anything else becomes
// a *DynamicValue.
func (e *Evaluator) Evaluate(expr ast.Expr) interface{} {
	switch n := expr.(type) {
	case *ast.BasicLit:
		return e.evaluateBasicLit(n)
	case *ast.Ident:
		switch n.Name {
		case "true":
			return true
		case "false":
			return false
		case "nil":
			return nil
		}
		return &Reference{Name: n.Name}
	case *ast.SelectorExpr:
		if ident, ok := n.X.(*ast.Ident); ok {
			return &Reference{Name: ident.Name + "." + n.Sel.Name}
		}
	case *ast.ParenExpr:
		return e.Evaluate(n.X)
	case *ast.UnaryExpr:
		return e.evaluateUnary(n)
	case *ast.BinaryExpr:
		return e.evaluateBinary(n)
	case *ast.CompositeLit:
		return e.evaluateCompositeLit(n)
	}
	return &DynamicValue{Node: expr, Reason: fmt.Sprintf("expression of type %T is not statically analyzable", expr)}
}

func (e *Evaluator) evaluateBasicLit(lit *ast.BasicLit) interface{} {
	value := constant.MakeFromLiteral(lit.Value, lit.Kind, 0)
	switch value.Kind() {
	case constant.String:
		return constant.StringVal(value)
	case constant.Int, constant.Float:
		f, _ := constant.Float64Val(value)
		return f
	}
	return &DynamicValue{Node: lit, Reason: fmt.Sprintf("unsupported literal %s", lit.Value)}
}

func (e *Evaluator) evaluateUnary(expr *ast.UnaryExpr) interface{} {
	operand := e.Evaluate(expr.X)
	switch expr.Op {
	case token.SUB:
		if f, ok := operand.(float64); ok {
			return -f
		}
	case token.NOT:
		if b, ok := operand.(bool); ok {
			return !b
		}
	}
	return &DynamicValue{Node: expr, Reason: fmt.Sprintf("unary %s is not statically analyzable here", expr.Op)}
}

func (e *Evaluator) evaluateBinary(expr *ast.BinaryExpr) interface{} {
	lhs := e.Evaluate(expr.X)
	rhs := e.Evaluate(expr.Y)
	if ls, ok := lhs.(string); ok {
		if rs, ok := rhs.(string); ok && expr.Op == token.ADD {
			return ls + rs
		}
	}
	if lf, ok := lhs.(float64); ok {
		if rf, ok := rhs.(float64); ok {
			switch expr.Op {
			case token.ADD:
				return lf + rf
			case token.SUB:
				return lf - rf
			case token.MUL:
				return lf * rf
			case token.QUO:
				return lf / rf
			}
		}
	}
	return &DynamicValue{Node: expr, Reason: fmt.Sprintf("binary %s is not statically analyzable here", expr.Op)}
}

func (e *Evaluator) evaluateCompositeLit(lit *ast.CompositeLit) interface{} {
	if e.isObjectLiteral != nil {
		if obj, ok := e.isObjectLiteral(lit); ok {
			return e.evaluateObject(obj)
		}
	}
	if lit.Type == nil {
		if len(lit.Elts) > 0 {
			if _, keyed := lit.Elts[0].(*ast.KeyValueExpr); keyed {
				return e.evaluateObject(lit)
			}
		}
		return e.evaluateList(lit)
	}
	return &DynamicValue{Node: lit, Reason: "typed composite literal is not statically analyzable"}
}

func (e *Evaluator) evaluateObject(lit *ast.CompositeLit) interface{} {
	result := NewObjectValue()
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return &DynamicValue{Node: elt, Reason: "object entry without a key"}
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return &DynamicValue{Node: kv.Key, Reason: "object key is not an identifier"}
		}
		result.Set(key.Name, e.Evaluate(kv.Value))
	}
	return result
}

func (e *Evaluator) evaluateList(lit *ast.CompositeLit) interface{} {
	result := make([]interface{}, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		result = append(result, e.Evaluate(elt))
	}
	return result
}
