package cmd

import (
	"fmt"
	"go/ast"
	"go/token"

	"fibonacci/cmd/util"
	"fibonacci/recursioncheck"

	"github.com/owenrumney/go-sarif/sarif"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/analysis"
)

var checkFile string
var checkOutput string

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"c"},
	Short:   "Report functions in a Go file that call themselves",
	Args:    cobra.NoArgs,
	RunE:    check,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "filename", "f", "", "The path to the input file")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Where to write the SARIF report (none if empty)")
	RootCmd.AddCommand(checkCmd)
}

func check(cmd *cobra.Command, args []string) error {
	if len(checkFile) == 0 {
		return fmt.Errorf("please provide an input file")
	}
	diagnostics, run, err := CheckFile(checkFile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range diagnostics {
		_, _ = fmt.Fprintln(out, d)
	}
	_, _ = fmt.Fprintf(out, "Found %d recursive functions\n", len(diagnostics))
	if len(checkOutput) == 0 {
		return nil
	}
	if err := util.WriteSarifFile(run, checkOutput); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "SARIF file written to %s\n", checkOutput)
	return nil
}

// CheckFile runs recursioncheck over a single file and returns its findings as
// "file:line:col: message" lines along with the SARIF run.
func CheckFile(path string) ([]string, *sarif.Run, error) {
	fset := token.NewFileSet()
	astFile, err := util.GetASTFromFile(path, fset)
	if err != nil {
		return nil, nil, err
	}
	info := util.GetTypeCheckerInfo(astFile, fset)

	a := recursioncheck.Analyzer
	lines := make([]string, 0)
	pass := &analysis.Pass{
		Analyzer:  a,
		Fset:      fset,
		Files:     []*ast.File{astFile},
		TypesInfo: info,
		Report: func(d analysis.Diagnostic) {
			lines = append(lines, fmt.Sprintf("%s: %s", fset.Position(d.Pos), d.Message))
		},
		ResultOf: make(map[*analysis.Analyzer]interface{}),
	}
	result, err := a.Run(pass)
	if err != nil {
		return nil, nil, fmt.Errorf("running %s: %w", a.Name, err)
	}
	return lines, result.(*sarif.Run), nil
}
