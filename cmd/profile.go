package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"fibonacci/cmd/util"
	"fibonacci/fib"
	"fibonacci/graph"

	"github.com/google/uuid"
	"github.com/owenrumney/go-sarif/sarif"
	"github.com/plus3it/gorecurcopy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const profileRuleID = "FIB_PROFILE"

var profileSettings ProfileSettings

// sampleProcStats is swapped out in tests
var sampleProcStats = util.SampleProcStats

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Compute one position under the CPU profiler and report where the time went",
	Args:    cobra.NoArgs,
	RunE:    runProfile,
}

func init() {
	profileCmd.Flags().IntVarP(&profileSettings.Position, "position", "n", 35, "The position to compute")
	profileCmd.Flags().StringVarP(&profileSettings.Id, "name", "i", "", "The id/name of the run (defaults to a new UUID)")
	profileCmd.Flags().StringVarP(&profileSettings.Output, "output", "o", "_data", "The path to the output folder")
	profileCmd.Flags().StringVarP(&profileSettings.TmpRoot, "tmp", "", "_tmp", "The folder runs are staged in")
	profileCmd.Flags().BoolVarP(&profileSettings.Sarif, "sarif", "", true, "Also write a SARIF report of the run")
	RootCmd.AddCommand(profileCmd)
}

type ProfileSettings struct {
	Position int
	Id       string
	Output   string
	TmpRoot  string
	Sarif    bool
}

type ProfileResult struct {
	Id         string
	Position   int
	Value      int
	Calls      int
	Wall       time.Duration
	Duration   time.Duration
	Samples    int
	Total      int64
	FibCum     int64
	FibFlat    int64
	Recursive  bool
	Stats      util.ProcStats
	OutputPath string
}

// Share is the percentage of sampled time spent inside the Fibonacci function.
func (r ProfileResult) Share() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.FibCum) / float64(r.Total) * 100
}

func runProfile(cmd *cobra.Command, args []string) error {
	ps := profileSettings
	if len(ps.Id) == 0 {
		ps.Id = uuid.New().String()
	}
	_, err := Profile(ps, cmd.OutOrStdout())
	return err
}

// Profile computes Fibonacci(ps.Position) under the CPU profiler, staging artifacts in
// <TmpRoot>/<Id>/ and copying them to <Output>/<Id>/ when done.
func Profile(ps ProfileSettings, out io.Writer) (ProfileResult, error) {
	res := ProfileResult{Id: ps.Id, Position: ps.Position}
	tmpPath := filepath.Join(ps.TmpRoot, ps.Id)
	if err := util.CleanOrCreateTempFolder(tmpPath); err != nil {
		return res, err
	}

	before, statsErr := sampleProcStats()
	if statsErr != nil {
		log.Warnf("Could not read process stats: %v", statsErr)
	}
	profilePath := filepath.Join(tmpPath, "cpu.pprof")
	start := time.Now()
	err := util.CaptureCPUProfile(profilePath, func() {
		res.Value = fib.Fibonacci(ps.Position)
	})
	res.Wall = time.Since(start)
	if err != nil {
		return res, err
	}
	if statsErr == nil {
		after, err := sampleProcStats()
		if err != nil {
			log.Warnf("Could not read process stats: %v", err)
		} else {
			res.Stats = after.Sub(before)
		}
	}
	res.Calls = fib.Calls(ps.Position)

	prof, err := util.GetProfileDataFromFile(profilePath)
	if err != nil {
		return res, err
	}
	res.Duration = time.Duration(prof.DurationNanos)
	res.Samples = len(prof.Sample)

	g := graph.GetGraphFromProfile(prof)
	res.Total = g.Total()
	fibName, fibFile, fibLine := funcLocation(fib.Fibonacci)
	for _, n := range g.FindNodesByName(fibName) {
		if n.Info.Name != fibName {
			continue
		}
		res.FibCum += n.Cum
		res.FibFlat += n.Flat
		res.Recursive = res.Recursive || n.Recursive()
	}

	writeProfileReport(out, res)

	if ps.Sarif {
		run := sarif.NewRun(util.ToolName, "https://en.wikipedia.org/wiki/Fibonacci_sequence")
		run.AddRule(profileRuleID).WithDescription("Cost of computing a Fibonacci number by naive recursion")
		msg := fmt.Sprintf("F(%d) = %d took %s over %d calls; %.1f%% of sampled time was spent in %s",
			res.Position, res.Value, res.Wall, res.Calls, res.Share(), fibName)
		util.AddRunResult(run, profileRuleID, "note", msg, moduleRelativePath(fibName, fibFile), fibLine, 1)
		if err := util.WriteSarifFile(run, filepath.Join(tmpPath, ps.Id+".sarif")); err != nil {
			return res, err
		}
	}

	res.OutputPath = filepath.Join(ps.Output, ps.Id)
	if err := os.MkdirAll(res.OutputPath, os.ModePerm); err != nil {
		return res, fmt.Errorf("creating output folder: %w", err)
	}
	same, err := samePath(tmpPath, res.OutputPath)
	if err != nil {
		return res, err
	}
	// copying a folder onto itself truncates every file in it
	if !same {
		if err := gorecurcopy.CopyDirectory(tmpPath, res.OutputPath); err != nil {
			return res, fmt.Errorf("copying run to output folder: %w", err)
		}
	}
	log.Infof("Run written to %s", res.OutputPath)
	return res, nil
}

func writeProfileReport(out io.Writer, res ProfileResult) {
	_, _ = fmt.Fprintf(out, "Run: %s\n", res.Id)
	_, _ = fmt.Fprintf(out, "F(%d) = %d\n", res.Position, res.Value)
	_, _ = fmt.Fprintf(out, "Calls: %d\n", res.Calls)
	_, _ = fmt.Fprintf(out, "Wall time: %s\n", res.Wall)
	_, _ = fmt.Fprintf(out, "Profile duration: %s (%d samples)\n", res.Duration, res.Samples)
	_, _ = fmt.Fprintf(out, "Time in Fibonacci: %s cumulative, %s flat (%.1f%% of sampled time)\n",
		time.Duration(res.FibCum), time.Duration(res.FibFlat), res.Share())
	if res.Recursive {
		_, _ = fmt.Fprintln(out, "Fibonacci was sampled calling itself")
	}
	_, _ = fmt.Fprintf(out, "Resident memory growth: %s\n", util.FormatSize(res.Stats.Resident))
	_, _ = fmt.Fprintf(out, "Process CPU time: %s\n", time.Duration(res.Stats.CPUTime)*time.Millisecond)
}

func funcLocation(f any) (name, file string, line int) {
	fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if fn == nil {
		return "", "", 0
	}
	file, line = fn.FileLine(fn.Entry())
	return fn.Name(), file, line
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", b, err)
	}
	if absA == absB {
		return true, nil
	}
	// symlinked roots, e.g. /tmp on macOS
	if realA, err := filepath.EvalSymlinks(absA); err == nil {
		if realB, err := filepath.EvalSymlinks(absB); err == nil {
			return realA == realB, nil
		}
	}
	return false, nil
}

// moduleRelativePath turns the absolute source path of a function in this module into
// a slash-separated path from the module root, so reports do not carry build host paths.
func moduleRelativePath(funcName, file string) string {
	base := filepath.Base(file)
	if funcName == "" {
		return base
	}
	modName, _, _ := funcLocation(Profile)
	module := strings.TrimSuffix(packagePath(modName), "/cmd")
	rel := strings.TrimPrefix(packagePath(funcName), module)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return base
	}
	return rel + "/" + base
}

// packagePath strips the function (and receiver) from a runtime function name.
func packagePath(funcName string) string {
	slash := strings.LastIndex(funcName, "/")
	if dot := strings.Index(funcName[slash+1:], "."); dot >= 0 {
		return funcName[:slash+1+dot]
	}
	return funcName
}
