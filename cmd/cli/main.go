package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	clubID string
)

var rootCmd = &cobra.Command{
	Use:   "padelyzer",
	Short: "A CLI to manage tournament brackets on the padelyzer server",
	Long: `A command-line interface for checking, generating and playing out
tournament brackets through the padelyzer bracket engine API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&clubID, "club", os.Getenv("PADELYZER_CLUB_ID"), "The club the requests act for")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
