package r3_identifiers

import (
	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
)

// CORE is the module every runtime identifier resolves against
const CORE = "@angular/core"

func ref(name string) *output.ExternalReference {
	moduleName := CORE
	n := name
	return &output.ExternalReference{ModuleName: &moduleName, Name: &n}
}

var (
	DefineComponent = ref("ɵɵdefineComponent")
	DefineDirective = ref("ɵɵdefineDirective")
	DefinePipe      = ref("ɵɵdefinePipe")
	DefineNgModule  = ref("ɵɵdefineNgModule")

	ElementStart    = ref("ɵɵelementStart")
	ElementEnd      = ref("ɵɵelementEnd")
	Element         = ref("ɵɵelement")
	Text            = ref("ɵɵtext")
	TextInterpolate = ref("ɵɵtextInterpolate")
	Advance         = ref("ɵɵadvance")
	Property        = ref("ɵɵproperty")
	Pipe            = ref("ɵɵpipe")
	PipeBind1       = ref("ɵɵpipeBind1")
	PipeBind2       = ref("ɵɵpipeBind2")
	PipeBind3       = ref("ɵɵpipeBind3")
	PipeBind4       = ref("ɵɵpipeBind4")

	ComponentDeclaration = ref("ɵɵComponentDeclaration")
	DirectiveDeclaration = ref("ɵɵDirectiveDeclaration")
	PipeDeclaration      = ref("ɵɵPipeDeclaration")
	NgModuleDeclaration  = ref("ɵɵNgModuleDeclaration")
)
