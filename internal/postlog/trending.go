// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postlog

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/social-engine/pkg/types"
)

// CacheTrending replaces the cached trending candidates with the given
// set. The cache is a scratch table, not part of the append-only post
// record; refreshing it wholesale keeps stale titles out.
func (s *Store) CacheTrending(ctx context.Context, topics []types.TrendingTopic) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trending_topics`); err != nil {
		return fmt.Errorf("clearing trending cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trending_topics (topic, source, url, score, fetched_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, tt := range topics {
		fetchedAt := now
		if !tt.FetchedAt.IsZero() {
			fetchedAt = tt.FetchedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := stmt.ExecContext(ctx, tt.Topic, tt.Source, tt.URL, tt.Score, fetchedAt); err != nil {
			return fmt.Errorf("inserting trending topic %q: %w", tt.Topic, err)
		}
	}
	return tx.Commit()
}

// RecentTrending returns up to limit cached candidates, highest score first.
func (s *Store) RecentTrending(ctx context.Context, limit int) ([]types.TrendingTopic, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, source, url, score, fetched_at
		 FROM trending_topics ORDER BY score DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trending cache: %w", err)
	}
	defer rows.Close()

	var topics []types.TrendingTopic
	for rows.Next() {
		var tt types.TrendingTopic
		var url, fetchedAt string
		if err := rows.Scan(&tt.ID, &tt.Topic, &tt.Source, &url, &tt.Score, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning trending topic: %w", err)
		}
		tt.URL = url
		if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
			tt.FetchedAt = t
		}
		topics = append(topics, tt)
	}
	return topics, rows.Err()
}
