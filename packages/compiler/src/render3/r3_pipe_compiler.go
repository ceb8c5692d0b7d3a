package render3

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3/r3_identifiers"
)

// R3PipeMetadata holds information needed to compile a pipe
type R3PipeMetadata struct {
	Name string
	Type R3Reference

	// PipeName is the name the pipe is invoked with in templates
	PipeName string

	Pure bool
}

// CompilePipeFromMetadata compiles a pipe definition expression
func CompilePipeFromMetadata(meta *R3PipeMetadata) *R3CompiledExpression {
	definitionMap := []*output.LiteralMapEntry{
		output.NewLiteralMapEntry("name", output.NewLiteralExpr(meta.PipeName, nil, nil), false),
		output.NewLiteralMapEntry("type", meta.Type.Value, false),
		output.NewLiteralMapEntry("pure", output.NewLiteralExpr(meta.Pure, nil, nil), false),
	}
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefinePipe, nil, nil, nil),
		[]output.OutputExpression{output.NewLiteralMapExpr(definitionMap, nil, nil)},
		nil, nil, false,
	)
	typ := output.NewExpressionType(
		output.NewExternalExpr(r3_identifiers.PipeDeclaration, nil, nil, nil),
		output.TypeModifierNone,
		[]output.Type{
			output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil),
			output.NewExpressionType(output.NewLiteralExpr(meta.PipeName, nil, nil), output.TypeModifierNone, nil),
		},
	)
	return &R3CompiledExpression{Expression: expression, Type: typ}
}
