// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/social-engine/internal/postlog"
	"github.com/pdiddy/social-engine/internal/trending"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Fetch trending topic candidates",
	Long: `Trending queries public tech news APIs (Hacker News, Dev.to) for
current headlines, to use as post subjects. With --cache the candidates are
stored locally so that "post --trending" can draw from them.`,
	RunE: runTrending,
}

func init() {
	trendingCmd.Flags().Int("limit", 0, "maximum candidates per source (default from config)")
	trendingCmd.Flags().StringSlice("source", nil, "sources to query: hackernews, dev.to (default all)")
	trendingCmd.Flags().Bool("cache", false, "store the fetched candidates in the post database")

	rootCmd.AddCommand(trendingCmd)
}

func runTrending(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		cfg.Trending.Limit = limit
	}
	if sources, _ := cmd.Flags().GetStringSlice("source"); len(sources) > 0 {
		cfg.Trending.Sources = sources
	}

	topics, err := trending.FetchAll(cmd.Context(), trending.Sources(cfg.Trending), cfg.Trending, os.Stderr)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		fmt.Println("No trending topics found.")
		return nil
	}

	for _, tt := range topics {
		fmt.Fprintf(os.Stdout, "%5d  %-12s  %s\n", tt.Score, tt.Source, tt.Topic)
	}

	if cache, _ := cmd.Flags().GetBool("cache"); cache {
		store, err := postlog.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.CacheTrending(cmd.Context(), topics); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\ncached %d candidates\n", len(topics))
	}
	return nil
}
