// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postlog

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/social-engine/pkg/types"
)

// exportFile is the shape of the YAML export.
type exportFile struct {
	Posts []types.Post `yaml:"posts"`
}

// ExportYAML writes every recorded publication to w as YAML, oldest
// first, for archival or inspection outside the database.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, platform, post_url, topic, provider_uri, provider_cid, mode, created_at
		 FROM posts ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("querying posts for export: %w", err)
	}
	defer rows.Close()

	var out exportFile
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return fmt.Errorf("scanning post: %w", err)
		}
		out.Posts = append(out.Posts, *post)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading posts for export: %w", err)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
