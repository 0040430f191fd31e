package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/phase0/internal/prompt"
)

var newCmd = &cobra.Command{
	Use:   "new [generator]",
	Short: "Ask a generator's questions and print the derived template fields",
	Long: "Runs one of the built-in generators (component-index, api-schema, feature-new) and " +
		"prints the fields a template engine substitutes into generated files. Without a " +
		"generator name the available generators are listed.",
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	addNewFlags(newCmd)
	rootCmd.AddCommand(newCmd)
}

// addNewFlags registers CLI flags for the new subcommand.
func addNewFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("set", nil, "answer a question up front (key=value, repeatable)")
	cmd.Flags().Bool("no-input", false, "fail instead of prompting for unanswered questions")
}

// runNew implements the `phase0 new` command.
func runNew(cmd *cobra.Command, args []string) error {
	cfg, printer, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, g := range prompt.Generators() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", g.Name, g.Description)
		}
		return nil
	}

	g, ok := prompt.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown generator %q (available: %s)", args[0], strings.Join(generatorNames(), ", "))
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	answers, err := prompt.ParseAssignments(sets)
	if err != nil {
		return err
	}

	asker := prompt.Prefilled{Answers: answers}
	if noInput, _ := cmd.Flags().GetBool("no-input"); !noInput {
		asker.Fallback = prompt.NewTerminalAsker()
	}

	printer.Debug(fmt.Sprintf("generator %s, %d prefilled answer(s)", g.Name, len(answers)))
	fields, err := g.Run(cmd.Context(), asker, prompt.Options{
		ComponentExtensions: cfg.ComponentExtensions,
		RouterExtensions:    cfg.RouterExtensions,
	})
	if err != nil {
		if prompt.IsInterrupted(err) {
			printer.Info("aborted")
		}
		return err
	}

	return writeFields(cmd.OutOrStdout(), fields, cfg.Format)
}

func generatorNames() []string {
	gens := prompt.Generators()
	names := make([]string, len(gens))
	for i, g := range gens {
		names[i] = g.Name
	}
	return names
}
