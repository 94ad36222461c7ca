package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	generateCmd.Flags().StringSlice("category", nil, "Only generate these category codes (repeatable)")
	generateCmd.Flags().String("seeding", "", "Seeding method: random, ranked or serpentine")
	resultCmd.Flags().String("winner", "", "Name of the winning team")
	resultCmd.Flags().String("score", "", "Final score, e.g. \"6-4 6-3\"")
	_ = resultCmd.MarkFlagRequired("winner")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(resultCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <tournament-id>",
	Short: "Check whether brackets can be generated for a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/tournaments/"+args[0]+"/brackets/check", nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <tournament-id>",
	Short: "Generate the elimination brackets of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, _ := cmd.Flags().GetStringSlice("category")
		seeding, _ := cmd.Flags().GetString("seeding")

		body := map[string]any{}
		if len(categories) > 0 {
			body["categories"] = categories
		}
		if seeding != "" {
			body["seedingMethod"] = seeding
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/tournaments/"+args[0]+"/brackets", body)
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket <tournament-id>",
	Short: "Show the bracket of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/tournaments/"+args[0]+"/brackets", nil)
	},
}

var resultCmd = &cobra.Command{
	Use:   "result <match-id>",
	Short: "Record the winner of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		winner, _ := cmd.Flags().GetString("winner")
		score, _ := cmd.Flags().GetString("score")
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/matches/"+args[0]+"/result",
			map[string]string{"winner": winner, "score": score})
	},
}

func performRequest(out io.Writer, method, endpoint string, payload any) error {
	url := host + endpoint
	fmt.Fprintf(out, "Making request to %s\n", url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clubID != "" {
		req.Header.Set("X-Club-ID", clubID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(respBody))

	return nil
}
