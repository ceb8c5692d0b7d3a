package scope

import (
	"fmt"

	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
)

// ScopeDirective is a directive visible in a compilation scope
type ScopeDirective struct {
	Selector string
	Name     string
}

// ScopePipe is a pipe visible in a compilation scope
type ScopePipe struct {
	PipeName string
	Name     string
}

// CompilationScope lists the directives and pipes usable in one component's
// template. Every lookup returns a scope with freshly allocated collections;
// scopes are never shared between components.
type CompilationScope struct {
	Directives []*ScopeDirective
	Pipes      map[string]*ScopePipe
}

type directiveRecord struct {
	declaration *reflection.Declaration
	selector    string
}

type pipeRecord struct {
	declaration *reflection.Declaration
	pipeName    string
}

type moduleRecord struct {
	declaration *reflection.Declaration
	members     []string
}

// SelectorScopeRegistry collects selector and pipe registrations during
// analysis and answers compilation scope lookups afterwards. SealAnalysis
// separates the two phases: registrations are rejected after sealing and
// lookups are rejected before it.
type SelectorScopeRegistry struct {
	sealed bool

	directives map[string]*directiveRecord
	pipes      map[string]*pipeRecord
	modules    []*moduleRecord

	registered map[*reflection.Declaration]bool

	moduleScopes map[*reflection.Declaration]*CompilationScope
}

// NewSelectorScopeRegistry creates a new SelectorScopeRegistry
func NewSelectorScopeRegistry() *SelectorScopeRegistry {
	return &SelectorScopeRegistry{
		directives:   map[string]*directiveRecord{},
		pipes:        map[string]*pipeRecord{},
		registered:   map[*reflection.Declaration]bool{},
		moduleScopes: map[*reflection.Declaration]*CompilationScope{},
	}
}

// RegisterSelector records the selector of a directive or component
// declaration. Registering the same declaration twice is a programming error.
func (r *SelectorScopeRegistry) RegisterSelector(decl *reflection.Declaration, selector string) {
	r.checkWritable(decl)
	r.directives[decl.Name] = &directiveRecord{declaration: decl, selector: selector}
}

// RegisterPipe records the name a pipe declaration is invoked with
func (r *SelectorScopeRegistry) RegisterPipe(decl *reflection.Declaration, pipeName string) {
	r.checkWritable(decl)
	r.pipes[decl.Name] = &pipeRecord{declaration: decl, pipeName: pipeName}
}

// RegisterModule records a module declaration and the names of its members
func (r *SelectorScopeRegistry) RegisterModule(decl *reflection.Declaration, members []string) {
	r.checkWritable(decl)
	r.modules = append(r.modules, &moduleRecord{declaration: decl, members: members})
}

// SealAnalysis marks the end of the analysis phase. After sealing the
// registry answers lookups and rejects registrations.
func (r *SelectorScopeRegistry) SealAnalysis() {
	r.sealed = true
}

// LookupCompilationScope returns the compilation scope of the module that
// declares the given declaration, or nil when no module declares it. The
// returned scope excludes the declaration itself.
func (r *SelectorScopeRegistry) LookupCompilationScope(decl *reflection.Declaration) *CompilationScope {
	if !r.sealed {
		panic("LookupCompilationScope called before SealAnalysis")
	}
	module := r.moduleOf(decl)
	if module == nil {
		return nil
	}
	moduleScope, ok := r.moduleScopes[module.declaration]
	if !ok {
		moduleScope = r.computeModuleScope(module)
		r.moduleScopes[module.declaration] = moduleScope
	}
	return r.copyScopeExcluding(moduleScope, decl.Name)
}

func (r *SelectorScopeRegistry) checkWritable(decl *reflection.Declaration) {
	if r.sealed {
		panic(fmt.Sprintf("registration of %q after SealAnalysis", decl.Name))
	}
	if r.registered[decl] {
		panic(fmt.Sprintf("declaration %q registered twice", decl.Name))
	}
	r.registered[decl] = true
}

func (r *SelectorScopeRegistry) moduleOf(decl *reflection.Declaration) *moduleRecord {
	for _, module := range r.modules {
		for _, member := range module.members {
			if member == decl.Name {
				return module
			}
		}
	}
	return nil
}

func (r *SelectorScopeRegistry) computeModuleScope(module *moduleRecord) *CompilationScope {
	scope := &CompilationScope{Pipes: map[string]*ScopePipe{}}
	for _, member := range module.members {
		if directive, ok := r.directives[member]; ok {
			scope.Directives = append(scope.Directives, &ScopeDirective{
				Selector: directive.selector,
				Name:     directive.declaration.Name,
			})
		}
		if pipe, ok := r.pipes[member]; ok {
			scope.Pipes[pipe.pipeName] = &ScopePipe{
				PipeName: pipe.pipeName,
				Name:     pipe.declaration.Name,
			}
		}
	}
	return scope
}

// copyScopeExcluding materializes a fresh scope so callers never share or
// mutate the cached module scope
func (r *SelectorScopeRegistry) copyScopeExcluding(scope *CompilationScope, excludeName string) *CompilationScope {
	result := &CompilationScope{Pipes: map[string]*ScopePipe{}}
	for _, directive := range scope.Directives {
		if directive.Name == excludeName {
			continue
		}
		copied := *directive
		result.Directives = append(result.Directives, &copied)
	}
	for name, pipe := range scope.Pipes {
		if pipe.Name == excludeName {
			continue
		}
		copied := *pipe
		result.Pipes[name] = &copied
	}
	return result
}
