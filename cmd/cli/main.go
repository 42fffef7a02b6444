package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookbot",
	Short: "Book recommendation chatbot in the terminal",
	Long: `bookbot runs the rule-based book chatbot without the web server.

Use "bookbot chat" for an interactive session and "bookbot intents validate"
to check an intent catalog before deploying it.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
