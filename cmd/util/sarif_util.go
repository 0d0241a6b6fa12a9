package util

import (
	"bytes"
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/sarif"
)

const ToolName = "fibonacci"

// WriteSarifFile wraps run in a SARIF 2.1.0 report and writes it to path.
func WriteSarifFile(run *sarif.Run, path string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}
	report.AddRun(run)
	buffer := bytes.NewBufferString("")
	if err := report.Write(buffer); err != nil {
		return fmt.Errorf("writing SARIF report: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing SARIF file: %w", err)
	}
	return nil
}

// AddRunResult records a located result on run.
func AddRunResult(run *sarif.Run, ruleID, level, messageText, filePath string, line, column int) {
	run.AddResult(ruleID).
		WithLevel(level).
		WithLocation(sarif.NewLocationWithPhysicalLocation(sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().
				WithUri(filePath)).
			WithRegion(sarif.NewRegion().
				WithStartLine(line).
				WithStartColumn(column)))).
		WithMessage(sarif.NewMessage().WithText(messageText))
}
