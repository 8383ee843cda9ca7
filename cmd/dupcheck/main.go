package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/dupcheck/internal/deduplication"
	"github.com/steveyegge/dupcheck/internal/inventory"
)

var (
	inventoryPath string
	policyPath    string
	stemmerName   string
	verbose       bool

	classifier *deduplication.Classifier
	inv        *inventory.Inventory
)

var rootCmd = &cobra.Command{
	Use:   "dupcheck",
	Short: "Detect duplicate product names before they reach the catalog",
	Long: `dupcheck compares product names against an inventory and reports the
best likely duplicate.

Names are checked in priority order:
1. Exact match after normalization and stemming ("Tomatoes" = "tomato")
2. Typo detection by token edit distance ("Potatoe" ~ "Potato")
3. Semantic similarity by TF-IDF cosine ("Organic Spinach" ~ "Fresh Organic Spinach Leaves")

The policy starts from built-in defaults, then the --policy YAML file, then
DUPCHECK_* environment variables, then command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}

		policy, err := resolvePolicy(policyPath, stemmerName)
		if err != nil {
			return err
		}
		classifier, err = deduplication.NewClassifier(policy)
		if err != nil {
			return err
		}

		inv, err = loadInventory(inventoryPath)
		return err
	},
}

// resolvePolicy layers defaults, the policy file, the environment and the
// --stemmer flag, in that order.
func resolvePolicy(path, stemmer string) (deduplication.Policy, error) {
	policy := deduplication.DefaultPolicy()
	if path != "" {
		loaded, err := deduplication.LoadPolicy(path)
		if err != nil {
			return policy, err
		}
		policy = loaded
	}

	policy, err := deduplication.ApplyEnv(policy)
	if err != nil {
		return policy, err
	}

	if stemmer != "" {
		policy.Stemmer = stemmer
	}

	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("invalid policy: %w", err)
	}
	return policy, nil
}

func loadInventory(path string) (*inventory.Inventory, error) {
	if path == "" {
		return inventory.New(), nil
	}
	return inventory.Load(path)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "", "Inventory file (YAML or JSON list of products)")
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "Policy YAML file")
	rootCmd.PersistentFlags().StringVar(&stemmerName, "stemmer", "", "Stemmer to use: inflection or porter2 (overrides policy)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log classifier decisions")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
