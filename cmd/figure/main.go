// Command figure renders the compiled-in charts to PNG files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vdobler/figure/internal/figures"
)

var (
	outDir  string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "figure",
	Short: "Render the study figures",
	Long: `figure draws the hazard ratio forest plot, the model AUC bar chart and
the plaque volume/percentage chart from their compiled-in data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [figure...]",
	Short: "Render figures to PNG (all if none given)",
	RunE:  runRender,
}

var planCmd = &cobra.Command{
	Use:   "plan <figure>",
	Short: "Print the resolved marks of a figure as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available figures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range figures.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log derived positions and limits")
	renderCmd.Flags().StringVarP(&outDir, "dir", "d", ".", "output directory")
	rootCmd.AddCommand(renderCmd, planCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRender builds and saves each named figure. The first failure aborts
// the run.
func runRender(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = figures.Names()
	}
	for _, name := range names {
		chart, err := figures.Build(name, logger)
		if err != nil {
			return err
		}
		path, err := chart.Save(outDir)
		if err != nil {
			return fmt.Errorf("figure %s: %w", name, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	chart, err := figures.Build(args[0], logger)
	if err != nil {
		return err
	}
	return chart.WritePlan(cmd.OutOrStdout())
}
