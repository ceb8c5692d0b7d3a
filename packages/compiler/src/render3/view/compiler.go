package view

import (
	"fmt"
	"sort"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/expression_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/ml_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3/r3_identifiers"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/template_parser"
)

// Render flags passed to the template function at runtime
const (
	renderFlagCreate = 1
	renderFlagUpdate = 2
)

// CompileDirectiveFromMetadata compiles a directive definition expression
func CompileDirectiveFromMetadata(
	meta *R3DirectiveMetadata,
	pool *constant.ConstantPool,
) *render3.R3CompiledExpression {
	definitionMap := baseDirectiveFields(meta)
	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineDirective, nil, nil, nil),
		[]output.OutputExpression{output.NewLiteralMapExpr(definitionMap, nil, nil)},
		nil, nil, false,
	)
	typ := createDirectiveType(meta)
	return &render3.R3CompiledExpression{Expression: expression, Type: typ}
}

// CompileComponentFromMetadata compiles a component definition expression,
// including its template function
func CompileComponentFromMetadata(
	meta *R3ComponentMetadata,
	pool *constant.ConstantPool,
	bindingParser *template_parser.BindingParser,
) *render3.R3CompiledExpression {
	definitionMap := baseDirectiveFields(&meta.R3DirectiveMetadata)

	builder := newTemplateBuilder(pool, bindingParser, meta.Pipes)
	builder.buildTemplate(meta.Template.Nodes)

	templateName := meta.Name + "_Template"
	templateFn := builder.buildTemplateFunction(templateName)

	definitionMap = append(definitionMap,
		output.NewLiteralMapEntry("decls", output.NewLiteralExpr(float64(builder.dataIndex), nil, nil), false),
		output.NewLiteralMapEntry("vars", output.NewLiteralExpr(float64(builder.bindingCount), nil, nil), false),
		output.NewLiteralMapEntry("template", templateFn, false),
	)

	if len(meta.Directives) > 0 {
		directives := make([]output.OutputExpression, len(meta.Directives))
		for i, dir := range meta.Directives {
			directives[i] = output.NewReadVarExpr(dir.Name, nil, nil)
		}
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("directives", output.NewLiteralArrayExpr(directives, nil, nil), false))
	}
	if len(meta.Pipes) > 0 {
		names := make([]string, 0, len(meta.Pipes))
		for name := range meta.Pipes {
			names = append(names, name)
		}
		sort.Strings(names)
		pipes := make([]output.OutputExpression, len(names))
		for i, name := range names {
			pipes[i] = output.NewReadVarExpr(meta.Pipes[name].Name, nil, nil)
		}
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("pipes", output.NewLiteralArrayExpr(pipes, nil, nil), false))
	}

	expression := output.NewInvokeFunctionExpr(
		output.NewExternalExpr(r3_identifiers.DefineComponent, nil, nil, nil),
		[]output.OutputExpression{output.NewLiteralMapExpr(definitionMap, nil, nil)},
		nil, nil, false,
	)
	typ := createComponentType(&meta.R3DirectiveMetadata)
	return &render3.R3CompiledExpression{Expression: expression, Type: typ}
}

func baseDirectiveFields(meta *R3DirectiveMetadata) []*output.LiteralMapEntry {
	definitionMap := []*output.LiteralMapEntry{
		output.NewLiteralMapEntry("type", meta.Type.Value, false),
	}
	if meta.Selector != nil {
		selectors := output.NewLiteralArrayExpr([]output.OutputExpression{
			output.NewLiteralArrayExpr([]output.OutputExpression{
				output.NewLiteralExpr(*meta.Selector, nil, nil),
			}, nil, nil),
		}, nil, nil)
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("selectors", selectors, false))
	}
	if len(meta.Inputs) > 0 {
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("inputs", mapToLiteralMap(meta.Inputs), false))
	}
	if len(meta.Outputs) > 0 {
		definitionMap = append(definitionMap,
			output.NewLiteralMapEntry("outputs", mapToLiteralMap(meta.Outputs), false))
	}
	return definitionMap
}

func mapToLiteralMap(m map[string]string) *output.LiteralMapExpr {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]*output.LiteralMapEntry, len(keys))
	for i, key := range keys {
		entries[i] = output.NewLiteralMapEntry(key, output.NewLiteralExpr(m[key], nil, nil), true)
	}
	return output.NewLiteralMapExpr(entries, nil, nil)
}

func createDirectiveType(meta *R3DirectiveMetadata) output.Type {
	return declarationType(r3_identifiers.DirectiveDeclaration, meta)
}

func createComponentType(meta *R3DirectiveMetadata) output.Type {
	return declarationType(r3_identifiers.ComponentDeclaration, meta)
}

func declarationType(declaration *output.ExternalReference, meta *R3DirectiveMetadata) output.Type {
	typeParams := []output.Type{
		output.NewExpressionType(meta.Type.Type, output.TypeModifierNone, nil),
	}
	if meta.Selector != nil {
		typeParams = append(typeParams, output.NewExpressionType(
			output.NewLiteralExpr(*meta.Selector, nil, nil), output.TypeModifierNone, nil))
	}
	return output.NewExpressionType(
		output.NewExternalExpr(declaration, nil, nil, nil),
		output.TypeModifierNone,
		typeParams,
	)
}

// templateBuilder generates the creation and update instructions for one
// component template
type templateBuilder struct {
	pool          *constant.ConstantPool
	bindingParser *template_parser.BindingParser
	pipes         map[string]*R3PipeDependencyMetadata

	creation []output.OutputStatement
	update   []output.OutputStatement

	// dataIndex is the next free slot in the data array
	dataIndex int

	// bindingCount is the number of binding slots the template needs
	bindingCount int

	// updateSlot tracks the slot the runtime cursor points at during update
	updateSlot int
}

func newTemplateBuilder(
	pool *constant.ConstantPool,
	bindingParser *template_parser.BindingParser,
	pipes map[string]*R3PipeDependencyMetadata,
) *templateBuilder {
	return &templateBuilder{pool: pool, bindingParser: bindingParser, pipes: pipes}
}

func (b *templateBuilder) allocateDataSlot() int {
	slot := b.dataIndex
	b.dataIndex++
	return slot
}

func (b *templateBuilder) buildTemplate(nodes []ml_parser.Node) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *ml_parser.Element:
			b.visitElement(n)
		case *ml_parser.Text:
			b.visitText(n)
		}
	}
}

func (b *templateBuilder) visitElement(element *ml_parser.Element) {
	slot := b.allocateDataSlot()

	args := []output.OutputExpression{
		output.NewLiteralExpr(float64(slot), nil, nil),
		output.NewLiteralExpr(element.Name, nil, nil),
	}

	var staticAttrs []output.OutputExpression
	var boundAttrs []*ml_parser.Attribute
	for _, attr := range element.Attrs {
		if template_parser.IsPropertyBindingAttribute(attr.Name) {
			boundAttrs = append(boundAttrs, attr)
			continue
		}
		staticAttrs = append(staticAttrs,
			output.NewLiteralExpr(attr.Name, nil, nil),
			output.NewLiteralExpr(attr.Value, nil, nil))
	}
	if len(staticAttrs) > 0 {
		attrsExpr := b.pool.GetConstLiteral(
			output.NewLiteralArrayExpr(staticAttrs, nil, nil), true)
		args = append(args, attrsExpr)
	}

	hasChildren := len(element.Children) > 0
	if hasChildren {
		b.creation = append(b.creation, instruction(r3_identifiers.ElementStart, args...))
	} else {
		b.creation = append(b.creation, instruction(r3_identifiers.Element, args...))
	}

	for _, attr := range boundAttrs {
		ast := b.bindingParser.ParsePropertyBinding(attr.Value, attr.SourceSpan())
		b.bindingCount++
		b.addUpdateInstruction(slot, instruction(r3_identifiers.Property,
			output.NewLiteralExpr(template_parser.BindingTargetName(attr.Name), nil, nil),
			b.convert(ast.AST)))
	}

	if hasChildren {
		b.buildTemplate(element.Children)
		b.creation = append(b.creation, instruction(r3_identifiers.ElementEnd))
	}
}

func (b *templateBuilder) visitText(text *ml_parser.Text) {
	slot := b.allocateDataSlot()
	interpolation := b.bindingParser.ParseInterpolation(text.Value, text.SourceSpan())
	if interpolation == nil {
		b.creation = append(b.creation, instruction(r3_identifiers.Text,
			output.NewLiteralExpr(float64(slot), nil, nil),
			output.NewLiteralExpr(text.Value, nil, nil)))
		return
	}
	b.creation = append(b.creation, instruction(r3_identifiers.Text,
		output.NewLiteralExpr(float64(slot), nil, nil)))
	b.bindingCount++
	b.addUpdateInstruction(slot, instruction(r3_identifiers.TextInterpolate,
		b.convert(interpolation.AST)))
}

// addUpdateInstruction advances the runtime cursor to the target slot before
// appending the instruction
func (b *templateBuilder) addUpdateInstruction(slot int, stmt output.OutputStatement) {
	if delta := slot - b.updateSlot; delta > 0 {
		b.update = append(b.update, instruction(r3_identifiers.Advance,
			output.NewLiteralExpr(float64(delta), nil, nil)))
	}
	b.updateSlot = slot
	b.update = append(b.update, stmt)
}

func (b *templateBuilder) buildTemplateFunction(name string) *output.FunctionExpr {
	var body []output.OutputStatement
	rf := output.NewReadVarExpr("rf", nil, nil)
	if len(b.creation) > 0 {
		body = append(body, output.NewIfStmt(
			output.NewBinaryOperatorExpr(output.BinaryOperatorBitwiseAnd,
				rf, output.NewLiteralExpr(float64(renderFlagCreate), nil, nil), nil, nil),
			b.creation, nil, nil))
	}
	if len(b.update) > 0 {
		body = append(body, output.NewIfStmt(
			output.NewBinaryOperatorExpr(output.BinaryOperatorBitwiseAnd,
				rf, output.NewLiteralExpr(float64(renderFlagUpdate), nil, nil), nil, nil),
			b.update, nil, nil))
	}
	params := []*output.FnParam{
		output.NewFnParam("rf", nil),
		output.NewFnParam("ctx", nil),
	}
	return output.NewFunctionExpr(params, body, nil, nil, &name)
}

var binaryOps = map[string]output.BinaryOperator{
	"==": output.BinaryOperatorEquals,
	"!=": output.BinaryOperatorNotEquals,
	"+":  output.BinaryOperatorPlus,
	"-":  output.BinaryOperatorMinus,
	"*":  output.BinaryOperatorMultiply,
	"/":  output.BinaryOperatorDivide,
	"%":  output.BinaryOperatorModulo,
	"&&": output.BinaryOperatorAnd,
	"||": output.BinaryOperatorOr,
	"<":  output.BinaryOperatorLower,
	"<=": output.BinaryOperatorLowerEquals,
	">":  output.BinaryOperatorBigger,
	">=": output.BinaryOperatorBiggerEquals,
}

// convert translates a binding expression AST into an output expression
// against the template context variable
func (b *templateBuilder) convert(ast expression_parser.AST) output.OutputExpression {
	switch e := ast.(type) {
	case *expression_parser.ImplicitReceiver:
		return output.NewReadVarExpr("ctx", nil, nil)
	case *expression_parser.PropertyRead:
		return output.NewReadPropExpr(b.convert(e.Receiver), e.Name, nil, nil)
	case *expression_parser.LiteralPrimitive:
		return output.NewLiteralExpr(e.Value, nil, nil)
	case *expression_parser.Binary:
		op, ok := binaryOps[e.Operation]
		if !ok {
			panic(fmt.Sprintf("Unsupported binary operation %q", e.Operation))
		}
		return output.NewBinaryOperatorExpr(op, b.convert(e.Left), b.convert(e.Right), nil, nil)
	case *expression_parser.BindingPipe:
		return b.convertPipe(e)
	case *expression_parser.Interpolation:
		return b.convertInterpolation(e)
	case *expression_parser.EmptyExpr:
		return output.NullExpr
	}
	panic(fmt.Sprintf("Unsupported expression node %T", ast))
}

// pipeBindIdentifiers maps a pipe's value arity onto the pipeBind instruction
// carrying that many values
var pipeBindIdentifiers = []*output.ExternalReference{
	r3_identifiers.PipeBind1,
	r3_identifiers.PipeBind2,
	r3_identifiers.PipeBind3,
	r3_identifiers.PipeBind4,
}

// convertPipe allocates a pipe slot, emits the pipe creation instruction and
// converts the usage into a pipeBind call matching the pipe's arity
func (b *templateBuilder) convertPipe(pipe *expression_parser.BindingPipe) output.OutputExpression {
	slot := b.allocateDataSlot()
	b.creation = append(b.creation, instruction(r3_identifiers.Pipe,
		output.NewLiteralExpr(float64(slot), nil, nil),
		output.NewLiteralExpr(pipe.Name, nil, nil)))
	args := []output.OutputExpression{
		output.NewLiteralExpr(float64(slot), nil, nil),
		b.convert(pipe.Exp),
	}
	for _, arg := range pipe.Args {
		args = append(args, b.convert(arg))
	}
	arity := 1 + len(pipe.Args)
	if arity > len(pipeBindIdentifiers) {
		panic(fmt.Sprintf("Unsupported pipe binding arity %d", arity))
	}
	b.bindingCount += arity
	return output.NewInvokeFunctionExpr(
		output.NewExternalExpr(pipeBindIdentifiers[arity-1], nil, nil, nil),
		args, nil, nil, false)
}

// convertInterpolation folds static strings and expressions into a chain of
// string concatenations
func (b *templateBuilder) convertInterpolation(interp *expression_parser.Interpolation) output.OutputExpression {
	var result output.OutputExpression
	appendPart := func(part output.OutputExpression) {
		if result == nil {
			result = part
			return
		}
		result = output.NewBinaryOperatorExpr(output.BinaryOperatorPlus, result, part, nil, nil)
	}
	for i, expr := range interp.Expressions {
		if i < len(interp.Strings) && interp.Strings[i] != "" {
			appendPart(output.NewLiteralExpr(interp.Strings[i], nil, nil))
		}
		appendPart(b.convert(expr))
	}
	if len(interp.Expressions) < len(interp.Strings) {
		if last := interp.Strings[len(interp.Strings)-1]; last != "" {
			appendPart(output.NewLiteralExpr(last, nil, nil))
		}
	}
	if result == nil {
		result = output.NewLiteralExpr("", nil, nil)
	}
	return result
}

func instruction(ref *output.ExternalReference, args ...output.OutputExpression) output.OutputStatement {
	return output.NewExpressionStatement(
		output.NewInvokeFunctionExpr(
			output.NewExternalExpr(ref, nil, nil, nil), args, nil, nil, false),
		nil)
}
