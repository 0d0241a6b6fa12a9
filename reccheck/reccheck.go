// Command reccheck runs the recursioncheck analyzer as a standalone vet-style tool.
package main

import (
	"fibonacci/recursioncheck"

	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(recursioncheck.Analyzer)
}
