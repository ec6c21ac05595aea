// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/social-engine/internal/httputil"
	"github.com/pdiddy/social-engine/pkg/types"
)

// hackerNewsBase is the Firebase API root. Declared as a var so tests
// can substitute an httptest server.
var hackerNewsBase = "https://hacker-news.firebaseio.com/v0"

// HackerNews fetches top stories from the Hacker News Firebase API.
type HackerNews struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (h *HackerNews) Name() string { return "hackernews" }

type hnItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Fetch reads the top-story id list, then resolves each story. Ids
// that resolve to nothing (deleted items) are skipped.
func (h *HackerNews) Fetch(ctx context.Context, limit int) ([]types.TrendingTopic, error) {
	var ids []int64
	if err := h.getJSON(ctx, hackerNewsBase+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("fetching top stories: %w", err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	now := time.Now().UTC()
	var topics []types.TrendingTopic
	for _, id := range ids {
		var item hnItem
		if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", hackerNewsBase, id), &item); err != nil {
			return nil, fmt.Errorf("fetching item %d: %w", id, err)
		}
		if item.Title == "" {
			continue
		}
		topics = append(topics, types.TrendingTopic{
			Topic:     item.Title,
			Source:    h.Name(),
			URL:       item.URL,
			Score:     item.Score,
			FetchedAt: now,
		})
	}
	return topics, nil
}

func (h *HackerNews) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, h.Client, req, 0)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
