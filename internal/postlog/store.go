// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postlog persists the durable record of every successful
// publication in a local SQLite database. Post rows are append-only:
// the core offers no update or delete.
package postlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/social-engine/pkg/types"
)

// Store manages the posts database. One run assumes exclusive access
// to the backing file; there is no cross-process locking.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the posts database at cfg.Path, creating the
// parent directory and schema as needed. synchronous=FULL so a commit
// that returns has reached disk.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=FULL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.Path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			platform TEXT NOT NULL,
			post_url TEXT NOT NULL,
			topic TEXT,
			provider_uri TEXT,
			provider_cid TEXT,
			mode TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_platform_created
			ON posts(platform, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS trending_topics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			source TEXT NOT NULL,
			url TEXT,
			score INTEGER DEFAULT 0,
			fetched_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SavePost appends one publication record and returns its assigned id.
// Called only after the platform reported success; a failed publish
// never reaches the store.
func (s *Store) SavePost(ctx context.Context, post types.Post) (int64, error) {
	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (content, platform, post_url, topic, provider_uri, provider_cid, mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Content, string(post.Platform), post.PostURL, post.Topic,
		post.ProviderURI, post.ProviderCID, string(post.Mode),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading insert id: %w", err)
	}
	return id, nil
}

// GetPost reads one record by id.
func (s *Store) GetPost(ctx context.Context, id int64) (*types.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, content, platform, post_url, topic, provider_uri, provider_cid, mode, created_at
		 FROM posts WHERE id = ?`, id)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading post %d: %w", id, err)
	}
	return post, nil
}

// RecentPosts returns up to limit records, newest first.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]types.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, platform, post_url, topic, provider_uri, provider_cid, mode, created_at
		 FROM posts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []types.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// CountPosts returns the total number of recorded publications.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*types.Post, error) {
	var p types.Post
	var platform, mode, createdAt string
	var topic, uri, cid sql.NullString
	if err := row.Scan(&p.ID, &p.Content, &platform, &p.PostURL, &topic, &uri, &cid, &mode, &createdAt); err != nil {
		return nil, err
	}
	p.Platform = types.Platform(platform)
	p.Mode = types.Mode(mode)
	p.Topic = topic.String
	p.ProviderURI = uri.String
	p.ProviderCID = cid.String
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = t
	}
	return &p, nil
}
