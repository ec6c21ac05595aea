// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/social-engine/internal/bluesky"
	"github.com/pdiddy/social-engine/internal/generate"
	"github.com/pdiddy/social-engine/internal/pipeline"
	"github.com/pdiddy/social-engine/internal/postlog"
	"github.com/pdiddy/social-engine/internal/trending"
	"github.com/pdiddy/social-engine/pkg/types"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Generate and publish one post",
	Long: `Post runs one publish cycle: pick a topic, generate the post text,
confirm, publish to Bluesky, and record the result locally.

Without --auto the command shows a preview and asks for confirmation;
declining cancels the publication and exits 0. With --auto the post
goes out unprompted, suitable for cron.`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().Bool("auto", false, "automatic mode: no prompts, always publish")
	postCmd.Flags().String("topic", "", "explicit topic (skips random selection)")
	postCmd.Flags().Bool("trending", false, "draw the topic from the cached trending candidates")

	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	auto, _ := cmd.Flags().GetBool("auto")
	topic, _ := cmd.Flags().GetString("topic")
	useTrending, _ := cmd.Flags().GetBool("trending")

	store, err := postlog.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	mode := types.ModeInteractive
	var confirmer pipeline.Confirmer = pipeline.PromptConfirm{In: os.Stdin, Out: os.Stdout}
	if auto {
		mode = types.ModeAutomatic
		confirmer = pipeline.AutoConfirm{}
	}

	var candidates []string
	if useTrending && topic == "" {
		cached, err := store.RecentTrending(cmd.Context(), cfg.Trending.Limit)
		if err != nil {
			return err
		}
		if len(cached) == 0 {
			fmt.Fprintln(os.Stderr, "trending cache is empty, falling back to the curated list (run \"social-engine trending --cache\" first)")
		}
		candidates = trending.Titles(cached)
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Deps{
		Generator: generate.New(cfg.Generator),
		Publisher: bluesky.New(cfg.Bluesky),
		Recorder:  store,
		Confirmer: confirmer,
		Out:       os.Stdout,
	}, pipeline.Options{
		Mode:       mode,
		Topic:      topic,
		Candidates: candidates,
		Platform:   types.PlatformBluesky,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrRecordNotSaved) && result.Ref != nil {
			// Degraded success: the post is live even though the local
			// record is missing.
			fmt.Fprintf(os.Stderr, "post is live at %s but was NOT recorded locally\n", result.Ref.URL)
		}
		return err
	}

	if result.Outcome == pipeline.OutcomeCancelled {
		return nil
	}

	fmt.Printf("\npublished to %s\n", result.Ref.URL)
	fmt.Printf("recorded as post %d\n", result.RecordID)
	return nil
}
