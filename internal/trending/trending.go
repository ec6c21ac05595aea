// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trending fetches candidate post subjects from public tech
// news APIs. Results seed topic selection and are cached in the post
// store; a failed source degrades to fewer candidates, never an abort.
package trending

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/social-engine/pkg/types"
)

const (
	defaultLimit   = 10
	defaultTimeout = 15 * time.Second
)

// Source is one trending-topic backend.
type Source interface {
	// Name returns the source identifier recorded with each topic.
	Name() string

	// Fetch returns up to limit candidates from the source.
	Fetch(ctx context.Context, limit int) ([]types.TrendingTopic, error)
}

// Sources builds the backends selected by cfg. An empty cfg.Sources
// enables all of them.
func Sources(cfg types.TrendingConfig) []Source {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Timeout <= 0 {
		client.Timeout = defaultTimeout
	}

	all := []Source{
		&HackerNews{Client: client, UserAgent: cfg.UserAgent},
		&DevTo{Client: client, UserAgent: cfg.UserAgent},
	}
	if len(cfg.Sources) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, name := range cfg.Sources {
		enabled[strings.ToLower(name)] = true
	}
	var out []Source
	for _, s := range all {
		if enabled[s.Name()] {
			out = append(out, s)
		}
	}
	return out
}

// FetchAll queries every source, merges the results, removes duplicate
// titles, and sorts by score descending. Per-source failures are
// reported on w and skipped; FetchAll errors only when every source
// failed.
func FetchAll(ctx context.Context, sources []Source, cfg types.TrendingConfig, w io.Writer) ([]types.TrendingTopic, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var merged []types.TrendingTopic
	failed := 0
	for _, src := range sources {
		topics, err := src.Fetch(ctx, limit)
		if err != nil {
			fmt.Fprintf(w, "warning: %s fetch failed: %v\n", src.Name(), err)
			failed++
			continue
		}
		merged = append(merged, topics...)
	}
	if len(sources) > 0 && failed == len(sources) {
		return nil, fmt.Errorf("all %d trending sources failed", failed)
	}

	seen := make(map[string]bool)
	var unique []types.TrendingTopic
	for _, tt := range merged {
		key := strings.ToLower(strings.TrimSpace(tt.Topic))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, tt)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})
	return unique, nil
}

// Titles extracts the topic strings, preserving order.
func Titles(topics []types.TrendingTopic) []string {
	out := make([]string, len(topics))
	for i, tt := range topics {
		out[i] = tt.Topic
	}
	return out
}
