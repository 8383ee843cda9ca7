package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/dupcheck/internal/deduplication"
	"github.com/steveyegge/dupcheck/internal/inventory"
)

var checkCmd = &cobra.Command{
	Use:   "check <name...>",
	Short: "Check product names for duplicates in the inventory",
	Long: `Check each product name against the inventory and print the best
likely duplicate.

Exits with status 1 when at least one name has a duplicate, so the command
can gate scripts and CI jobs.

Examples:
  # Check a single name
  dupcheck check -i inventory.yaml "Potatoe"

  # Machine-readable output
  dupcheck check -i inventory.yaml --json "Organic Spinach" "Bananas"

  # Show how every inventory item scored
  dupcheck check -i inventory.yaml --explain "Tomatoes"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		explain, _ := cmd.Flags().GetBool("explain")

		results := checkNames(classifier, inv, args)

		var err error
		if asJSON {
			err = writeCheckJSON(os.Stdout, results)
		} else {
			for _, res := range results {
				writeCheckResult(os.Stdout, res)
				if explain {
					writeExplain(os.Stdout, classifier.Explain(res.Candidate, inv.Items()))
				}
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		for _, res := range results {
			if res.Match != nil {
				os.Exit(1)
			}
		}
	},
}

// checkResult pairs a candidate name with its best match, if any.
type checkResult struct {
	Candidate string               `json:"candidate"`
	Match     *deduplication.Match `json:"match"`
}

func checkNames(c *deduplication.Classifier, inv *inventory.Inventory, names []string) []checkResult {
	items := inv.Items()
	results := make([]checkResult, len(names))
	for i, name := range names {
		results[i] = checkResult{
			Candidate: name,
			Match:     c.FindDuplicate(name, items),
		}
	}
	return results
}

func writeCheckJSON(w io.Writer, results []checkResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func writeCheckResult(w io.Writer, res checkResult) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if res.Match == nil {
		fmt.Fprintf(w, "%s %q: no duplicate\n", green("✓"), res.Candidate)
		return
	}
	fmt.Fprintf(w, "%s %q duplicates %s\n", yellow("⚠"), res.Candidate, cyan(describeItem(res.Match.Item)))
	fmt.Fprintf(w, "  Method: %s\n", res.Match.Method)
	fmt.Fprintf(w, "  Similarity: %d%%\n", res.Match.Similarity)
}

func writeExplain(w io.Writer, evals []deduplication.Evaluation) {
	if len(evals) == 0 {
		fmt.Fprintln(w, "  (inventory is empty)")
		return
	}
	for _, ev := range evals {
		dist := "-"
		if ev.Distance >= 0 {
			dist = fmt.Sprintf("%d (%s)", ev.Distance, ev.MatchedToken)
		}
		verdict := "no match"
		if ev.Method != "" {
			verdict = fmt.Sprintf("%s %d%%", ev.Method, ev.Similarity)
		}
		fmt.Fprintf(w, "  [%d] %s\n", ev.Index, ev.Name)
		fmt.Fprintf(w, "      tokens=[%s] distance=%s cosine=%.2f -> %s\n",
			strings.Join(ev.Tokens, " "), dist, ev.Cosine, verdict)
	}
}

func describeItem(it deduplication.Item) string {
	if item, ok := it.(inventory.Item); ok {
		return fmt.Sprintf("%s (%s)", item.Name, item.ID)
	}
	return it.ItemName()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("json", false, "Print results as JSON")
	checkCmd.Flags().Bool("explain", false, "Show per-item scores")
}
