package view

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/ml_parser"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/render3"
	"github.com/RafayelGardishyan/angular/packages/compiler/src/util"
)

// R3DirectiveMetadata holds information needed to compile a directive
type R3DirectiveMetadata struct {
	// Name is the name of the directive type
	Name string

	// Type is a reference to the directive type itself
	Type render3.R3Reference

	// TypeSourceSpan attributes the compilation to the declaration
	TypeSourceSpan *util.ParseSourceSpan

	// Selector is the CSS selector the directive matches, if any
	Selector *string

	// Inputs maps public binding names to class member names
	Inputs map[string]string

	// Outputs maps public event names to class member names
	Outputs map[string]string

	// ExportAs lists the names under which the directive is exported, if any
	ExportAs []string
}

// R3TemplateMetadata holds the parsed template of a component
type R3TemplateMetadata struct {
	Nodes []ml_parser.Node
}

// R3DirectiveDependencyMetadata describes a directive usable in a
// component's template
type R3DirectiveDependencyMetadata struct {
	// Selector the dependency matches elements with
	Selector string

	// Name of the directive type
	Name string
}

// R3PipeDependencyMetadata describes a pipe usable in a component's template
type R3PipeDependencyMetadata struct {
	// PipeName the pipe is invoked with in binding expressions
	PipeName string

	// Name of the pipe type
	Name string
}

// R3ComponentMetadata extends directive metadata with template information
// and the component's compilation scope
type R3ComponentMetadata struct {
	R3DirectiveMetadata

	// Template holds the parsed template
	Template R3TemplateMetadata

	// Directives usable inside the template. Each component owns its own
	// slice; entries are never shared between components.
	Directives []*R3DirectiveDependencyMetadata

	// Pipes usable inside the template. Each component owns its own map.
	Pipes map[string]*R3PipeDependencyMetadata
}
