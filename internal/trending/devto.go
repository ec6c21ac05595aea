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

// devToBase is the Dev.to articles endpoint. Declared as a var so
// tests can substitute an httptest server.
var devToBase = "https://dev.to/api/articles"

// DevTo fetches this week's top articles from the Dev.to API.
type DevTo struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (d *DevTo) Name() string { return "dev.to" }

type devToArticle struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	ReactionsCount int    `json:"public_reactions_count"`
}

// Fetch returns up to limit articles, ranked by the API's weekly top list.
func (d *DevTo) Fetch(ctx context.Context, limit int) ([]types.TrendingTopic, error) {
	url := fmt.Sprintf("%s?top=7&per_page=%d", devToBase, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, d.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Dev.to API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Dev.to API returned HTTP %d", resp.StatusCode)
	}

	var articles []devToArticle
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("parsing Dev.to response: %w", err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}

	now := time.Now().UTC()
	var topics []types.TrendingTopic
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		topics = append(topics, types.TrendingTopic{
			Topic:     a.Title,
			Source:    d.Name(),
			URL:       a.URL,
			Score:     a.ReactionsCount,
			FetchedAt: now,
		})
	}
	return topics, nil
}
