package render3

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
)

// TypeWithParameters creates an ExpressionType with the given number of parameters
func TypeWithParameters(typ output.OutputExpression, numParams int) output.Type {
	if numParams == 0 {
		return output.NewExpressionType(typ, output.TypeModifierNone, nil)
	}
	params := make([]output.Type, numParams)
	for i := 0; i < numParams; i++ {
		params[i] = output.DynamicType
	}
	return output.NewExpressionType(typ, output.TypeModifierNone, params)
}

// R3Reference represents a reference with value and type expressions
type R3Reference struct {
	Value output.OutputExpression
	Type  output.OutputExpression
}

// WrapReference wraps a declaration name in an R3Reference
func WrapReference(name string) R3Reference {
	expr := output.NewReadVarExpr(name, nil, nil)
	return R3Reference{Value: expr, Type: expr}
}

// R3CompiledExpression represents the result of compilation of a render3 code unit
type R3CompiledExpression struct {
	Expression output.OutputExpression
	Type       output.Type
	Statements []output.OutputStatement
}
