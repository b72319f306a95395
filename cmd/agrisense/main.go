// Command agrisense estimates soil type and diagnoses plant leaves from
// photographs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrisense/internal/analysis"
	"agrisense/internal/config"
	"agrisense/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agrisense",
	Short: "Soil type and plant disease estimation from photographs",
	Long: `agrisense analyses field photographs.

Soil photos are classified as Clay, Loamy or Sandy by fusing image texture
with the land-use map at the photo's location and the current weather there.
Leaf photos are matched against the crop catalog and run through the disease
rules.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(soilCmd, plantCmd, featuresCmd, batchCmd, versionCmd)
}

func newAnalyzer() (*analysis.Analyzer, error) {
	a, err := analysis.FromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
