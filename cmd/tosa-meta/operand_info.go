package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vgf-tools/tosa-meta/internal/config"
	"github.com/vgf-tools/tosa-meta/internal/fetch"
	"github.com/vgf-tools/tosa-meta/internal/tosa"
)

var dumpTables bool

var updateOperandInfoCmd = &cobra.Command{
	Use:   "update-operand-info",
	Short: "Regenerate the TOSA operand-info artifact from the pinned schemas",
	Long: `Fetches the pinned TOSA specification XML and SPIR-V TOSA grammar
JSON, joins them into the operand-info artifact, and writes it to the
adapter's resources directory.

The join is strict: every grammar instruction must have a matching
operator in the specification, and every operand a matching category.
Any gap means the schemas have drifted and the run fails with the
missing linkage named.`,
	Args: cobra.NoArgs,
	RunE: runUpdateOperandInfo,
}

func init() {
	updateOperandInfoCmd.Flags().BoolVar(&dumpTables, "dump", false, "dump the parsed tables before writing (debug)")
	rootCmd.AddCommand(updateOperandInfoCmd)
}

func runUpdateOperandInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.FetchTimeoutDuration())
	bodies, err := client.FetchAll(cmd.Context(), cfg.SpecURL, cfg.GrammarURL)
	if err != nil {
		return err
	}
	specXML, grammarJSON := bodies[0], bodies[1]
	logger.Debug("fetched schema documents",
		zap.Int("spec_bytes", len(specXML)),
		zap.Int("grammar_bytes", len(grammarJSON)))

	enums, err := tosa.ParseEnums(specXML)
	if err != nil {
		return err
	}
	cats, err := tosa.ParseCategories(specXML)
	if err != nil {
		return err
	}
	instructions, err := tosa.ParseGrammar(grammarJSON)
	if err != nil {
		return err
	}

	if dumpTables {
		spew.Dump(enums)
		spew.Dump(cats)
		spew.Dump(instructions)
	}

	info, err := tosa.BuildOperandInfo(cats, instructions)
	if err != nil {
		return err
	}

	artifact := &tosa.Artifact{Enums: enums, Operations: info}
	if err := artifact.WriteFile(cfg.Output); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (ops=%d, enums=%d)\n", cfg.Output, len(info), len(enums))
	return nil
}
