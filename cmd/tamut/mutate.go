package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamut/tamut/check"
	"github.com/tamut/tamut/driver"
	"github.com/tamut/tamut/mutate"
)

var mutateFlags = struct {
	inTA    *string
	outDir  *string
	op      *string
	val     *int
	verbose *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "mutate",
		Short:   "Generate mutants of a TChecker system declaration",
		Example: `  tamut mutate --in_ta system.tck --out_dir mutants --op negate_guard`,
		RunE:    runMutate,
	}
	mutateFlags.inTA = cmd.Flags().String("in_ta", "", "path to the TChecker system declaration to mutate (required)")
	mutateFlags.outDir = cmd.Flags().String("out_dir", "", "directory to write mutants into (required)")
	mutateFlags.op = cmd.Flags().String("op", "", fmt.Sprintf("mutation operator to run, or \"all\" (required); one of: %v", mutate.Names()))
	mutateFlags.val = cmd.Flags().Int("val", 1, "constant shift used by decrease_constraint_constant/increase_constraint_constant")
	mutateFlags.verbose = cmd.Flags().Bool("verbose", false, "emit debug-level progress logging")
	cmd.MarkFlagRequired("in_ta")
	cmd.MarkFlagRequired("out_dir")
	cmd.MarkFlagRequired("op")
	rootCmd.AddCommand(cmd)
}

// validateMutateFlags checks --val and --op independently of cobra's
// flag parsing, so the validation logic can be exercised without
// running the full command. runMutate calls it after the flags are
// parsed and before the driver runs; --val defaults to 1 and must be a
// positive integer.
func validateMutateFlags(op string, val int) error {
	if val < 1 {
		return fmt.Errorf("--val must be a positive integer, got %d", val)
	}
	if op != "all" && mutate.Lookup(op) == nil {
		return fmt.Errorf("unknown operator %q; known operators: %v", op, mutate.Names())
	}
	return nil
}

func runMutate(cmd *cobra.Command, args []string) error {
	if err := validateMutateFlags(*mutateFlags.op, *mutateFlags.val); err != nil {
		return err
	}

	return driver.Run(driver.Config{
		InPath:  *mutateFlags.inTA,
		OutDir:  *mutateFlags.outDir,
		Op:      *mutateFlags.op,
		Val:     *mutateFlags.val,
		Checker: check.NewCommandChecker(),
		Logger:  driver.NewLogger(*mutateFlags.verbose),
	})
}
