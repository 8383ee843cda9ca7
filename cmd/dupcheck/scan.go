package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/dupcheck/internal/deduplication"
	"github.com/steveyegge/dupcheck/internal/inventory"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find duplicates inside an inventory",
	Long: `Scan every item of the --inventory file as a candidate.

Without --against, only duplicates within the inventory are reported; each
is matched to the earliest similar item. With --against, candidates are first
checked against that second inventory, which takes precedence.

Examples:
  # Find duplicates within one file
  dupcheck scan -i new-products.yaml

  # Check a supplier feed against the catalog
  dupcheck scan -i feed.yaml --against catalog.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		againstPath, _ := cmd.Flags().GetString("against")

		existing, err := loadInventory(againstPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		result, err := classifier.ScanBatch(ctx, inv.Items(), existing.Items())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		writeScanResult(os.Stdout, inv, result)
	},
}

func writeScanResult(w io.Writer, candidates *inventory.Inventory, result *deduplication.BatchResult) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for i, cand := range candidates.All() {
		if m, ok := result.Duplicates[i]; ok {
			fmt.Fprintf(w, "%s %s duplicates existing %s [%s, %d%%]\n",
				yellow("⚠"), cand.Name, cyan(describeItem(m.Item)), m.Method, m.Similarity)
		} else if m, ok := result.WithinBatch[i]; ok {
			fmt.Fprintf(w, "%s %s duplicates %s [%s, %d%%]\n",
				yellow("⚠"), cand.Name, cyan(describeItem(m.Item)), m.Method, m.Similarity)
		}
	}

	s := result.Stats
	fmt.Fprintf(w, "\n%s Scanned %d item(s) in %dms\n", green("✓"), s.TotalCandidates, s.ProcessingTimeMs)
	fmt.Fprintf(w, "  Unique: %d\n", s.UniqueCount)
	fmt.Fprintf(w, "  Duplicates of existing: %d\n", s.DuplicateCount)
	fmt.Fprintf(w, "  Duplicates within batch: %d\n", s.WithinBatchDuplicateCount)
	fmt.Fprintf(w, "  Comparisons: %d\n", s.ComparisonsMade)
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("against", "", "Existing inventory to check candidates against")
}
