package util

import (
	"fmt"
	"os"

	sigar "github.com/cloudfoundry/gosigar"
)

// ProcStats is a snapshot of this process's memory and CPU time.
type ProcStats struct {
	Resident uint64
	// milliseconds
	CPUTime uint64
}

func SampleProcStats() (ProcStats, error) {
	pid := os.Getpid()
	mem := sigar.ProcMem{}
	if err := mem.Get(pid); err != nil {
		return ProcStats{}, fmt.Errorf("reading process memory: %w", err)
	}
	cpu := sigar.ProcTime{}
	if err := cpu.Get(pid); err != nil {
		return ProcStats{}, fmt.Errorf("reading process cpu time: %w", err)
	}
	return ProcStats{Resident: mem.Resident, CPUTime: cpu.Total}, nil
}

// Sub returns the growth from before to s. Resident memory can shrink, which shows as 0.
func (s ProcStats) Sub(before ProcStats) ProcStats {
	var d ProcStats
	if s.Resident > before.Resident {
		d.Resident = s.Resident - before.Resident
	}
	if s.CPUTime > before.CPUTime {
		d.CPUTime = s.CPUTime - before.CPUTime
	}
	return d
}

func FormatSize(bytes uint64) string {
	return sigar.FormatSize(bytes)
}
