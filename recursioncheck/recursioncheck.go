package recursioncheck

import (
	"go/ast"
	"go/types"
	"reflect"

	"fibonacci/cmd/util"

	"github.com/owenrumney/go-sarif/sarif"
	"golang.org/x/tools/go/analysis"
)

const RuleID = "FIB_RECURSION_001"

var Analyzer = &analysis.Analyzer{
	Name:       "recursioncheck",
	Doc:        "reports functions that call themselves directly",
	Run:        run,
	ResultType: reflect.TypeOf(&sarif.Run{}),
}

func run(pass *analysis.Pass) (interface{}, error) {
	sarifRun := sarif.NewRun("recursioncheck", "https://pkg.go.dev/golang.org/x/tools/go/analysis")
	sarifRun.AddRule(RuleID).WithDescription("Function calls itself directly")
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			if !callsItself(pass.TypesInfo, fn) {
				continue
			}
			pos := pass.Fset.Position(fn.Name.Pos())
			msg := "function " + funcName(fn) + " calls itself recursively"
			pass.Reportf(fn.Name.Pos(), "%s", msg)
			util.AddRunResult(sarifRun, RuleID, "warning", msg, filename, pos.Line, pos.Column)
		}
	}
	return sarifRun, nil
}

func funcName(fn *ast.FuncDecl) string {
	if recv := receiverType(fn); recv != "" {
		return recv + "." + fn.Name.Name
	}
	return fn.Name.Name
}

// callsItself looks for a call to fn inside its own body. Without type information
// calls are matched by name only.
func callsItself(info *types.Info, fn *ast.FuncDecl) bool {
	var self types.Object
	if info != nil {
		self = info.Defs[fn.Name]
	}

	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if found {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		var ident *ast.Ident
		switch f := call.Fun.(type) {
		case *ast.Ident:
			if fn.Recv == nil {
				ident = f
			}
		case *ast.SelectorExpr:
			if fn.Recv != nil {
				ident = f.Sel
			}
		}
		if ident == nil || ident.Name != fn.Name.Name {
			return true
		}
		if self != nil {
			found = info.Uses[ident] == self
		} else {
			found = true
		}
		return !found
	})
	return found
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	// generic receivers
	if idx, ok := expr.(*ast.IndexExpr); ok {
		expr = idx.X
	}
	if idx, ok := expr.(*ast.IndexListExpr); ok {
		expr = idx.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}
