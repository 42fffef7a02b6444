package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"book-chatbot/config"
	"book-chatbot/internal/intent"
)

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "Inspect intent catalogs",
}

var intentsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Parse an intent catalog and summarize it",
	Long: `Loads a JSON or YAML intent catalog, reports parse and validation errors,
and prints per-intent counts. Defaults to intents.path from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntentsValidate,
}

func init() {
	intentsCmd.AddCommand(intentsValidateCmd)
	rootCmd.AddCommand(intentsCmd)
}

func runIntentsValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.Intents.Path
	}

	c, err := intent.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tPATTERNS\tTEXTS\tBOOKS\tRATED")
	unranked := 0
	for _, s := range c.Summaries() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Tag, s.Patterns, s.Texts, s.Books, s.Rated)
		if s.Patterns > 0 && s.Rated == 0 {
			unranked++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s: %d intents OK", path, c.Len())
	if unranked > 0 {
		fmt.Fprintf(out, " (%d with patterns but no rated books answer only through fixed phrases)", unranked)
	}
	fmt.Fprintln(out)
	return nil
}
