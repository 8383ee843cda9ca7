package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/dupcheck/internal/deduplication"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the effective duplicate detection policy",
	Long: `Print the policy after applying the --policy file, DUPCHECK_* environment
variables and flags. The output is valid input for --policy.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := writePolicy(os.Stdout, classifier.Policy()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func writePolicy(w io.Writer, p deduplication.Policy) error {
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Fprintf(w, "%s\n", gray("# "+p.String()))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding policy: %w", err)
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(policyCmd)
}
