package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smartjit/smartjit/jit"
	"github.com/smartjit/smartjit/jit/event"
)

var (
	// CLI flags for dispatch configuration
	logLevel       string // Log verbosity level
	configPath     string // Optional YAML dispatch config (overrides policy flags)
	threshold      int    // Length threshold for the default policy
	warnOnFallback bool   // Warn when a call falls back to the interpreter

	// CLI flags for the demo workload
	smallLen int // Length of the "small" input
	largeLen int // Length of the "large" input
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "smartjit",
	Short: "Policy-driven dispatch between compiled and interpreted execution",
}

// runCmd replays a demo workload through the dispatcher and reports the
// registered signatures, cache hits, and emitted lifecycle events.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dispatch demo workload",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := dispatchConfig()
		if err != nil {
			logrus.Fatalf("Invalid dispatch configuration: %v", err)
		}

		releaseJIT := event.Install(event.KindJIT, event.LogListener{})
		releaseInterp := event.Install(event.KindInterpreter, event.LogListener{})
		defer releaseJIT()
		defer releaseInterp()

		tally := &eventTally{}
		releaseTallyJIT := event.Install(event.KindJIT, tally)
		releaseTallyInterp := event.Install(event.KindInterpreter, tally)
		defer releaseTallyJIT()
		defer releaseTallyInterp()

		compiler := newDemoCompiler()
		runSumDemo(compiler, cfg)
		runAddDemo(compiler)

		fmt.Printf("\nCompilations: %d\n", compiler.compileCount())
		fmt.Printf("Events: %d jit, %d interpreter\n",
			tally.count(event.KindJIT), tally.count(event.KindInterpreter))
	},
}

// dispatchConfig resolves the sum demo's dispatch configuration: the
// YAML bundle when --config is given, the policy flags otherwise.
func dispatchConfig() (jit.Config, error) {
	if configPath != "" {
		bundle, err := jit.LoadBundle(configPath)
		if err != nil {
			return jit.Config{}, err
		}
		return bundle.Build()
	}
	return jit.Config{
		Policy:         jit.LengthThreshold(threshold),
		WarnOnFallback: warnOnFallback,
	}, nil
}

// runSumDemo dispatches a sum over []float64 inputs of two sizes: small
// inputs interpret, a large one compiles, and the small input then takes
// the compiled fast path for its now-registered signature.
func runSumDemo(compiler *demoCompiler, cfg jit.Config) {
	registry := jit.NewMemoryRegistry()
	cfg.Registry = registry

	d, err := jit.New("sum", sumImpl, compiler, cfg)
	if err != nil {
		logrus.Fatalf("Building sum dispatcher: %v", err)
	}

	small := incrementing(smallLen)
	large := incrementing(largeLen)

	for _, input := range [][]float64{small, large, small} {
		result, err := d.Invoke(input)
		if err != nil {
			logrus.Errorf("sum(len=%d): %v", len(input), err)
			continue
		}
		logrus.Infof("sum(len=%d) = %v", len(input), result)
	}

	printReport(d, registry)
}

// runAddDemo dispatches add with eagerly compiled int and float64
// signatures and an always-interpret policy: matching calls take the
// fast path, strings fall back with a warning, and slices are refused.
func runAddDemo(compiler *demoCompiler) {
	registry := jit.NewMemoryRegistry()
	d, err := jit.New("add", addImpl, compiler, jit.Config{
		Policy: func(args []any) jit.Directive {
			if _, ok := args[0].([]int); ok {
				return jit.RaiseError
			}
			return jit.UseInterpreted
		},
		WarnOnFallback: true,
		Signatures: []jit.Signature{
			jit.NewSignature("int", "int"),
			jit.NewSignature("float64", "float64"),
		},
		Registry: registry,
	})
	if err != nil {
		logrus.Fatalf("Building add dispatcher: %v", err)
	}

	calls := [][2]any{
		{2, 3},
		{1.5, 2.5},
		{"Hello, ", "World"},
		{[]int{1, 2}, []int{3, 4}},
	}
	for _, c := range calls {
		result, err := d.Invoke(c[0], c[1])
		if err != nil {
			logrus.Errorf("add(%v, %v): %v", c[0], c[1], err)
			continue
		}
		logrus.Infof("add(%v, %v) = %v", c[0], c[1], result)
	}

	printReport(d, registry)
}

func printReport(d *jit.Dispatcher, registry *jit.MemoryRegistry) {
	fmt.Printf("\n%s: %d registered signature(s)\n", d.Name(), len(d.Signatures()))
	for _, sig := range d.Signatures() {
		fmt.Printf("  %s%s  hits=%d\n", d.Name(), sig, registry.Hits(sig))
	}
}

func sumImpl(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sum expects 1 argument, got %d", len(args))
	}
	values, ok := args[0].([]float64)
	if !ok {
		return nil, fmt.Errorf("sum expects []float64, got %T", args[0])
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total, nil
}

func addImpl(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("add expects 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case int:
		if b, ok := args[1].(int); ok {
			return a + b, nil
		}
	case float64:
		if b, ok := args[1].(float64); ok {
			return a + b, nil
		}
	case string:
		if b, ok := args[1].(string); ok {
			return a + b, nil
		}
	}
	return nil, fmt.Errorf("add: unsupported types %T, %T", args[0], args[1])
}

func incrementing(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// eventTally counts notifications per kind.
type eventTally struct {
	jitStarts    int
	interpStarts int
}

func (t *eventTally) OnStart(e event.Event) {
	switch e.Kind {
	case event.KindJIT:
		t.jitStarts++
	case event.KindInterpreter:
		t.interpStarts++
	}
}

func (t *eventTally) OnEnd(event.Event) {}

func (t *eventTally) count(kind event.Kind) int {
	if kind == event.KindJIT {
		return t.jitStarts
	}
	return t.interpStarts
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML dispatch config (overrides --threshold and --warn-on-fallback)")

	// Dispatch policy configs
	runCmd.Flags().IntVar(&threshold, "threshold", 100000, "Input length above which the sum demo compiles instead of interpreting")
	runCmd.Flags().BoolVar(&warnOnFallback, "warn-on-fallback", false, "Warn when a call falls back to the interpreter")

	// Demo workload configs
	runCmd.Flags().IntVar(&smallLen, "small-len", 1000, "Length of the small sum input")
	runCmd.Flags().IntVar(&largeLen, "large-len", 1000000, "Length of the large sum input")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
