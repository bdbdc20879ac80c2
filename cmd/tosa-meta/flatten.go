package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vgf-tools/tosa-meta/internal/pywheel"
)

var (
	flattenDryRun bool
	flattenYes    bool
)

var flattenCmd = &cobra.Command{
	Use:   "flatten-symlinks [directory]",
	Short: "Replace Python-file symlinks under a directory with the actual files",
	Long: `Recursively replaces symbolic links to Python files with copies of
their targets, so the tree can be packaged into a wheel. Symlinks whose
targets are missing or not Python files are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlatten,
}

func init() {
	flattenCmd.Flags().BoolVarP(&flattenDryRun, "dry-run", "n", false, "show what would be done without making changes")
	flattenCmd.Flags().BoolVarP(&flattenYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if !flattenDryRun && !flattenYes {
		fmt.Printf("This will replace all Python symlinks in %q with actual files.\n", dir)
		fmt.Print("This operation cannot be undone. Continue? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	sum, err := pywheel.NewFlattener(logger, flattenDryRun).Flatten(dir)
	if err != nil {
		return err
	}

	if flattenDryRun {
		fmt.Printf("Symlinks would be replaced: %d\n", sum.Replaced)
	} else {
		fmt.Printf("Symlinks replaced: %d\n", sum.Replaced)
	}
	if sum.Errors > 0 {
		fmt.Fprintf(os.Stderr, "Errors encountered: %d\n", sum.Errors)
	}
	return nil
}
