// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/social-engine/internal/postlog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded publications",
	Long: `History reads the local post database and lists recent publications,
newest first. Use --json for machine-readable output or --export to dump
the full record set as YAML.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of posts to list")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().Bool("export", false, "dump all records as YAML to stdout")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	store, err := postlog.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if export, _ := cmd.Flags().GetBool("export"); export {
		return store.ExportYAML(cmd.Context(), os.Stdout)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	posts, err := store.RecentPosts(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}

	if len(posts) == 0 {
		fmt.Println("No posts recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %-11s  %s\n",
		"ID", "Platform", "Content", "Mode", "Posted")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, p := range posts {
		content := p.Content
		if len([]rune(content)) > 50 {
			content = string([]rune(content)[:47]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %-11s  %s\n",
			p.ID, p.Platform, content, p.Mode, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
