// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the publish
// pipeline: post records, publish references, and stage configuration.
package types

import "time"

// Platform identifies a target social network.
type Platform string

const (
	// PlatformBluesky is the only platform currently wired.
	PlatformBluesky Platform = "bluesky"
)

// Mode distinguishes how a pipeline run was invoked.
type Mode string

const (
	// ModeInteractive prompts for topic and confirmation.
	ModeInteractive Mode = "interactive"

	// ModeAutomatic picks a topic and publishes without prompting.
	ModeAutomatic Mode = "automatic"
)

// PostRef is the canonical reference returned by a platform on a
// successful publish: the public URL plus the platform's opaque
// record identifiers.
type PostRef struct {
	// URL is the human-facing link to the post.
	URL string `json:"url" yaml:"url"`

	// URI is the platform record URI (e.g. an AT-URI like
	// at://did:plc:abc/app.bsky.feed.post/3l3qo2vuowo2b).
	URI string `json:"uri" yaml:"uri"`

	// CID is the platform content identifier of the record.
	CID string `json:"cid" yaml:"cid"`
}

// Post is one durable record of a successful publication. Records are
// created only after the platform reports success and are never
// mutated afterwards.
type Post struct {
	// ID is assigned by the store on insert; monotonic per store file.
	ID int64 `json:"id" yaml:"id"`

	// Content is the published text, verbatim.
	Content string `json:"content" yaml:"content"`

	// Platform names the network the post went to.
	Platform Platform `json:"platform" yaml:"platform"`

	// PostURL is the canonical public URL of the post.
	PostURL string `json:"post_url" yaml:"post_url"`

	// Topic is the subject the content was generated from. May be
	// empty when the caller supplied content without a topic.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// ProviderURI and ProviderCID are the platform's opaque record
	// identifiers, kept for later lookup or engagement tooling.
	ProviderURI string `json:"provider_uri,omitempty" yaml:"provider_uri,omitempty"`
	ProviderCID string `json:"provider_cid,omitempty" yaml:"provider_cid,omitempty"`

	// Mode records whether the run was interactive or automatic.
	Mode Mode `json:"mode" yaml:"mode"`

	// CreatedAt is the insert time, UTC.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TrendingTopic is one candidate subject fetched from an external
// trending source and cached locally.
type TrendingTopic struct {
	ID        int64     `json:"id" yaml:"id"`
	Topic     string    `json:"topic" yaml:"topic"`
	Source    string    `json:"source" yaml:"source"`
	URL       string    `json:"url,omitempty" yaml:"url,omitempty"`
	Score     int       `json:"score" yaml:"score"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
