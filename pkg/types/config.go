// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "social-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GeneratorConfig holds settings for the content generation stage.
type GeneratorConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Groq API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier (default "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// MaxTokens caps the completion length (default 600).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling variety (default 0.8).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// BlueskyConfig holds credentials and endpoint settings for the
// Bluesky publisher.
type BlueskyConfig struct {
	HTTPConfig `yaml:",inline"`

	// Handle is the account handle (e.g. "bot.bsky.social").
	Handle string `json:"handle,omitempty" yaml:"handle,omitempty"`

	// AppPassword is an app-specific password, never the account password.
	AppPassword string `json:"app_password,omitempty" yaml:"app_password,omitempty"`

	// Host is the PDS endpoint (default "https://bsky.social").
	Host string `json:"host" yaml:"host"`
}

// StoreConfig holds settings for the local post store.
type StoreConfig struct {
	// Path is the SQLite database file (default "data/posts.db").
	Path string `json:"path" yaml:"path"`
}

// TrendingConfig holds settings for the trending-topic fetch stage.
type TrendingConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the maximum number of candidates per source (default 10).
	Limit int `json:"limit" yaml:"limit"`

	// Sources selects which backends to query (default all).
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// PipelineConfig groups all stage configurations for one pipeline run.
type PipelineConfig struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Bluesky   BlueskyConfig   `json:"bluesky" yaml:"bluesky"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Trending  TrendingConfig  `json:"trending" yaml:"trending"`
}

// Validate checks that every credential the publish pipeline needs is
// present. It runs before any component is constructed so a
// misconfigured run aborts without touching the network or the store.
// All missing fields are reported in one error.
func (c PipelineConfig) Validate() error {
	var missing []string
	if c.Generator.APIKey == "" {
		missing = append(missing, "groq-api-key")
	}
	if c.Bluesky.Handle == "" {
		missing = append(missing, "bluesky-handle")
	}
	if c.Bluesky.AppPassword == "" {
		missing = append(missing, "bluesky-app-password")
	}
	if c.Store.Path == "" {
		missing = append(missing, "store path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s (set them in .secrets/ or the config file)",
			strings.Join(missing, ", "))
	}
	return nil
}
