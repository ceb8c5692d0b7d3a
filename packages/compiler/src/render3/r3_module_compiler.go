package render3

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3/r3_identifiers"
)

// R3NgModuleMetadata holds information needed to compile a module
type R3NgModuleMetadata struct {
	Name string
	Type R3Reference

	Declarations []R3Reference
	Imports      []R3Reference
	Exports      []R3Reference
}

// CompileNgModuleFromMetadata compiles a module definition expression
func CompileNgModuleFromMetadata(meta *R3NgModuleMetadata) *R3CompiledExpression {
	definitionMap := []*output.LiteralMapEntry{
		output.NewLiteralMapEntry("type", meta.Type.Value, false),
	}
	if len(meta.Declarations) > 0 {
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("declarations", refsToArray(meta.Declarations), false))
	}
	if len(meta.Imports) > 0 {
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("imports", refsToArray(meta.Imports), false))
	}
	if len(meta.Exports) > 0 {
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("exports", refsToArray(meta.Exports), false))
	}
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineNgModule, nil, nil, nil),
		[]output.OutputExpression{output.NewLiteralMapExpr(definitionMap, nil, nil)},
		nil, nil, false,
	)
	typ := output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.NgModuleDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil)},
	)
	return &R3CompiledExpression{Expression: expression, Type: typ}
}

func refsToArray(refs []R3Reference) *output.LiteralArrayExpr {
	values := make([]output.OutputExpression, len(refs))
	for i, ref := range refs {
		values[i] = ref.Value
	}
	return output.NewLiteralArrayExpr(values, nil, nil)
}
