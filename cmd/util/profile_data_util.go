package util

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/google/pprof/profile"
)

// CaptureCPUProfile runs work while the CPU profiler writes to path.
func CaptureCPUProfile(path string, work func()) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating profile file: %w", err)
	}
	defer out.Close()

	if err := pprof.StartCPUProfile(out); err != nil {
		return fmt.Errorf("starting cpu profile: %w", err)
	}
	work()
	pprof.StopCPUProfile()
	return nil
}

func GetProfileDataFromFile(path string) (*profile.Profile, error) {
	rawProfile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	defer rawProfile.Close()
	prof, err := profile.Parse(rawProfile)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return prof, nil
}
