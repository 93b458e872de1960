// Command cgmin runs the conjugate gradient engine on a catalog objective
// and prints one tab-separated diagnostic line per accepted iteration:
// iteration, line-search evaluations, objective value, point norm, gradient
// norm, and accepted step, followed by the numeric return code.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/CGMIN/internal/optimization"
	"github.com/copyleftdev/CGMIN/internal/optimization/conjgrad"
	"github.com/copyleftdev/CGMIN/internal/optimization/functions"
)

var (
	flagObjective     string
	flagStart         []float64
	flagEpsilon       float64
	flagDelta         float64
	flagPast          int
	flagMaxIterations int
	flagMaxLineSearch int
)

var rootCmd = &cobra.Command{
	Use:   "cgmin",
	Short: "Minimize a test objective with the conjugate gradient engine",
	Long: `cgmin drives a catalog objective toward a local minimum and reports
progress once per accepted iteration as tab-separated fields:

  iteration  ls-evals  f  |x|  |g|  step

The final line reports the numeric return code (0 on convergence).`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	obj, ok := functions.ByName(flagObjective)
	if !ok {
		return fmt.Errorf("unknown objective %q, available: %s",
			flagObjective, strings.Join(functions.Names(), ", "))
	}

	cfg := optimization.DefaultConfig()
	cfg.Epsilon = flagEpsilon
	cfg.Delta = flagDelta
	cfg.Past = flagPast
	cfg.MaxIterations = flagMaxIterations
	cfg.MaxLineSearch = flagMaxLineSearch

	mon := optimization.MonitorFunc(func(rec optimization.ProgressRecord) bool {
		fmt.Printf("%d\t%d\t%g\t%g\t%g\t%g\n",
			rec.Iteration, rec.LineSearchEvals, rec.F, rec.XNorm, rec.GradNorm, rec.Step)
		return true
	})

	x := append([]float64(nil), flagStart...)
	res, err := conjgrad.Minimize(obj, x, &cfg, mon)
	fmt.Printf("Return code %d\n", res.Status.Code())
	if res.Status == optimization.InvalidInput {
		return err
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVarP(&flagObjective, "objective", "o", "rosenbrock", "objective to minimize")
	rootCmd.Flags().Float64SliceVarP(&flagStart, "start", "x", []float64{0, 0}, "starting point")
	rootCmd.Flags().Float64Var(&flagEpsilon, "epsilon", 1e-5, "gradient norm tolerance")
	rootCmd.Flags().Float64Var(&flagDelta, "delta", 1e-5, "relative decrease tolerance")
	rootCmd.Flags().IntVar(&flagPast, "past", 0, "lookback window for the decrease test (0 disables)")
	rootCmd.Flags().IntVar(&flagMaxIterations, "max-iterations", 1000, "outer iteration budget")
	rootCmd.Flags().IntVar(&flagMaxLineSearch, "max-linesearch", 40, "line search evaluation budget")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
