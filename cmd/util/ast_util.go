package util

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
)

func GetASTFromFile(path string, fset *token.FileSet) (*ast.File, error) {
	astFile, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return astFile, nil
}

// GetTypeCheckerInfo type checks astFile on its own. Imports are resolved from source,
// and type errors only leave gaps in the returned info.
func GetTypeCheckerInfo(astFile *ast.File, fset *token.FileSet) *types.Info {
	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error:    func(error) {},
	}
	info := &types.Info{
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	_, _ = conf.Check(astFile.Name.Name, fset, []*ast.File{astFile}, info)
	return info
}
