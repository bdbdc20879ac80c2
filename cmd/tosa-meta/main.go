// Command tosa-meta is the maintenance CLI for the VGF model-explorer
// adapter: it regenerates the TOSA operand-info artifact from the
// pinned upstream schemas, emits the SPDX document for MLIR binary
// builds, and flattens Python symlinks before wheel packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tosa-meta",
	Short: "Maintenance tooling for the VGF model-explorer adapter",
	Long: `tosa-meta regenerates the metadata and release artifacts that the
VGF model-explorer adapter depends on.

The operand-info artifact is built by joining two independently
maintained upstream schemas: the TOSA specification XML and the SPIR-V
TOSA extended-instruction grammar. Any mismatch between them fails the
build rather than producing a mapping that mis-describes an operand.`,
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

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults to built-in pins)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
