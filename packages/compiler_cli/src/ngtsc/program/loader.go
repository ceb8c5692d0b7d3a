package program

import (
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/packages"

	"github.com/RafayelGardishyan/angular/packages/compiler_cli/src/ngtsc/reflection"
)

// LoadDeclarations loads the Go packages matched by the given patterns and
// collects every type declaration carrying decorator directives
func LoadDeclarations(dir string, patterns ...string) ([]*reflection.Declaration, error) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	var declarations []*reflection.Declaration
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			fileName := pkg.Fset.Position(file.Pos()).Filename
			decls, err := CollectFileDeclarations(file, fileName)
			if err != nil {
				return nil, err
			}
			declarations = append(declarations, decls...)
		}
	}
	return declarations, nil
}

// CollectFileDeclarations extracts the decorated type declarations of a
// single parsed file
func CollectFileDeclarations(file *ast.File, fileName string) ([]*reflection.Declaration, error) {
	var declarations []*reflection.Declaration
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			decorators, err := reflection.ReadDecorators(doc)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", fileName, typeSpec.Name.Name, err)
			}
			if len(decorators) == 0 {
				continue
			}
			declarations = append(declarations, &reflection.Declaration{
				Name:       typeSpec.Name.Name,
				FileName:   fileName,
				TypeSpec:   typeSpec,
				Decorators: decorators,
			})
		}
	}
	return declarations, nil
}
