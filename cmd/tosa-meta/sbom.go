package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vgf-tools/tosa-meta/internal/sbom"
)

var (
	sbomLLVMRef           string
	sbomModelConverterRef string
	sbomWheelVersion      string
	sbomOutput            string
)

var sbomCmd = &cobra.Command{
	Use:   "sbom",
	Short: "Generate the SPDX document for MLIR builds with the model-converter patch",
	Args:  cobra.NoArgs,
	RunE:  runSBOM,
}

func init() {
	sbomCmd.Flags().StringVar(&sbomLLVMRef, "llvm-ref", "", "LLVM reference the binaries were built from")
	sbomCmd.Flags().StringVar(&sbomModelConverterRef, "model-converter-ref", "", "model-converter reference")
	sbomCmd.Flags().StringVar(&sbomWheelVersion, "wheel-version", "", "version of the vgf-adapter-model-explorer wheel")
	sbomCmd.Flags().StringVar(&sbomOutput, "output", "mlir-builds.spdx.json", "output file path")
	_ = sbomCmd.MarkFlagRequired("llvm-ref")
	_ = sbomCmd.MarkFlagRequired("model-converter-ref")
	_ = sbomCmd.MarkFlagRequired("wheel-version")
	rootCmd.AddCommand(sbomCmd)
}

func runSBOM(cmd *cobra.Command, args []string) error {
	doc := sbom.NewDocument(sbom.BuildInfo{
		LLVMRef:           sbomLLVMRef,
		ModelConverterRef: sbomModelConverterRef,
		WheelVersion:      sbomWheelVersion,
		BuildTime:         time.Now().UTC(),
	})

	if msgs := doc.Validate(); len(msgs) > 0 {
		for _, m := range msgs {
			logger.Warn("SPDX validation", zap.String("message", m))
		}
		return fmt.Errorf("SPDX document validation failed with %d message(s)", len(msgs))
	}

	if err := doc.WriteFile(sbomOutput); err != nil {
		return err
	}
	fmt.Printf("SPDX document generated: %s\n", sbomOutput)
	return nil
}
