// Package repl provides an interactive session for adding products to an
// in-memory inventory, warning about likely duplicates before each add.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/steveyegge/dupcheck/internal/deduplication"
	"github.com/steveyegge/dupcheck/internal/inventory"
)

// REPL represents the interactive shell
type REPL struct {
	classifier *deduplication.Classifier
	inventory  *inventory.Inventory
	out        io.Writer
	in         io.ReadCloser
	rl         *readline.Instance
	confirm    func(question string) (bool, error)
	commands   map[string]CommandHandler
}

// CommandHandler handles a specific command
type CommandHandler func(args []string) error

// Config holds REPL configuration
type Config struct {
	Classifier *deduplication.Classifier
	Inventory  *inventory.Inventory

	// Out receives all output; defaults to os.Stdout
	Out io.Writer

	// In replaces the terminal as the input source when set
	In io.ReadCloser
}

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}

	inv := cfg.Inventory
	if inv == nil {
		inv = inventory.New()
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	r := &REPL{
		classifier: cfg.Classifier,
		inventory:  inv,
		out:        out,
		in:         cfg.In,
		commands:   make(map[string]CommandHandler),
	}
	r.confirm = r.readConfirm

	// Register built-in commands
	r.registerCommands()

	return r, nil
}

// Inventory returns the session's inventory, including items added so far.
func (r *REPL) Inventory() *inventory.Inventory {
	return r.inventory
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	cyan := color.New(color.FgCyan).SprintFunc()

	rlCfg := &readline.Config{
		Prompt:            cyan("add> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            r.out,
	}
	if r.in != nil {
		rlCfg.Stdin = r.in
		rlCfg.FuncIsTerminal = func() bool { return false }
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	var closeOnce sync.Once
	closeRL := func() { closeOnce.Do(func() { rl.Close() }) }
	defer closeRL()

	// Cancellation closes the terminal so a blocked Readline returns.
	stop := context.AfterFunc(ctx, closeRL)
	defer stop()

	r.rl = rl

	r.printWelcome()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rl.Readline()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err == readline.ErrInterrupt {
				// Ctrl+C - just show prompt again
				continue
			} else if err == io.EOF {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(r.out, "%s %v\n", red("Error:"), err)
		}
	}
}

// processInput runs a command, or treats the whole line as a product to add.
// Commands other than check are recognised only as a single word, so
// "List Price Labels" is a product name.
func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	name := strings.ToLower(parts[0])
	args := parts[1:]
	if handler, ok := r.commands[name]; ok && (len(args) == 0 || name == "check") {
		return handler(args)
	}
	return r.addProduct(strings.TrimSpace(line))
}

// registerCommands registers all built-in commands
func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["list"] = r.cmdList
	r.commands["check"] = r.cmdCheck
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
}

// addProduct adds name unless it looks like a duplicate and the user declines
func (r *REPL) addProduct(name string) error {
	green := color.New(color.FgGreen).SprintFunc()

	match := r.classifier.FindDuplicate(name, r.inventory.Items())
	if match != nil {
		r.printMatch(name, match)
		ok, err := r.confirm("Add anyway? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(r.out, "Skipped %q\n", name)
			return nil
		}
	}

	item := r.inventory.Add(name)
	fmt.Fprintf(r.out, "%s Added %q (%s)\n", green("✓"), item.Name, item.ID)
	return nil
}

func (r *REPL) printMatch(name string, match *deduplication.Match) {
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	existing := match.Item.ItemName()
	if it, ok := match.Item.(inventory.Item); ok {
		existing = fmt.Sprintf("%s (%s)", it.Name, it.ID)
	}
	fmt.Fprintf(r.out, "%s %q looks like %s\n", yellow("⚠"), name, cyan(existing))
	fmt.Fprintf(r.out, "  Method: %s, similarity %d%%\n", match.Method, match.Similarity)
}

func (r *REPL) readConfirm(question string) (bool, error) {
	if r.rl == nil {
		return false, nil
	}
	prev := r.rl.Config.Prompt
	r.rl.SetPrompt(question)
	defer r.rl.SetPrompt(prev)

	answer, err := r.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return isYes(answer), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// printWelcome prints the welcome message
func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n", cyan("dupcheck interactive session"))
	fmt.Fprintf(r.out, "%d item(s) loaded. Type a product name to add it.\n", r.inventory.Len())
	fmt.Fprintln(r.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(r.out)
}

// cmdHelp shows help information
func (r *REPL) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"<product name>", "Add a product, warning about duplicates first"},
		{"check <name>", "Look for a duplicate without adding"},
		{"list", "Show the inventory"},
		{"help, ?", "Show this help message"},
		{"exit, quit", "Exit the session"},
	}
	for _, cmd := range commands {
		fmt.Fprintf(r.out, "  %s  %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Fprintln(r.out)
	return nil
}

// cmdList prints the inventory in order
func (r *REPL) cmdList(args []string) error {
	items := r.inventory.All()
	if len(items) == 0 {
		fmt.Fprintln(r.out, "Inventory is empty")
		return nil
	}
	for i, it := range items {
		fmt.Fprintf(r.out, "%3d. %s (%s)\n", i+1, it.Name, it.ID)
	}
	return nil
}

// cmdCheck reports the best duplicate for a name without adding it
func (r *REPL) cmdCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: check <product name>")
	}
	name := strings.Join(args, " ")

	match := r.classifier.FindDuplicate(name, r.inventory.Items())
	if match == nil {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(r.out, "%s No duplicate for %q\n", green("✓"), name)
		return nil
	}
	r.printMatch(name, match)
	return nil
}

// cmdExit exits the REPL
func (r *REPL) cmdExit(args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(r.out, "\n%s Goodbye!\n", green("✓"))
	return io.EOF // Signal to exit the loop
}
