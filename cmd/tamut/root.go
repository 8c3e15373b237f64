package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tamut",
	Short: "Generate mutants of a TChecker timed-automata network",
	Long: `tamut applies a single mutation operator to a TChecker system
declaration and writes every resulting mutant that survives a syntax
and reachability check, classifying each one by bisimilarity against
the original system.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
