// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences one publish run: topic selection, content
// generation, the confirmation gate, a single publish attempt, and the
// durable record. Every step is a hard gate on the previous one.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/social-engine/internal/topics"
	"github.com/pdiddy/social-engine/pkg/types"
)

// ErrRecordNotSaved marks a degraded success: the remote post exists
// but the local record write failed. The design accepts this window
// rather than attempting cross-system rollback; re-running will create
// a duplicate remote post.
var ErrRecordNotSaved = errors.New("post published but local record not saved")

// Generator produces platform-sized content for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string, platform types.Platform) (string, error)
}

// Publisher authenticates once per run and submits content. Publish is
// valid only after a successful Login in the same run.
type Publisher interface {
	Login(ctx context.Context) error
	Publish(ctx context.Context, text string) (*types.PostRef, error)
}

// Recorder appends the durable record of a successful publication.
type Recorder interface {
	SavePost(ctx context.Context, post types.Post) (int64, error)
}

// Confirmer decides whether a generated post goes out. Automatic mode
// uses AutoConfirm; interactive mode prompts the user.
type Confirmer interface {
	Confirm(preview string) (bool, error)
}

// Outcome classifies how a run ended. Failures are reported through
// the error return instead.
type Outcome int

const (
	// OutcomeFailed is the zero value, set on any aborted run. The
	// accompanying error carries the detail.
	OutcomeFailed Outcome = iota

	// OutcomePublished: remote post created and recorded locally.
	OutcomePublished

	// OutcomeCancelled: the user declined the confirmation gate. A
	// normal termination, not a failure.
	OutcomeCancelled

	// OutcomeDegraded: remote post created but the local record write
	// failed. Paired with an ErrRecordNotSaved error.
	OutcomeDegraded
)

// Deps are the collaborators for one run.
type Deps struct {
	Generator Generator
	Publisher Publisher
	Recorder  Recorder
	Confirmer Confirmer

	// Out receives human-readable progress. Defaults to io.Discard.
	Out io.Writer
}

// Options select the behavior of one run.
type Options struct {
	// Mode is recorded with the post and reported in output.
	Mode types.Mode

	// Topic overrides random selection when non-empty.
	Topic string

	// Candidates optionally replaces the curated topic pool (e.g.
	// cached trending titles). Ignored when Topic is set.
	Candidates []string

	// Platform is the publish target.
	Platform types.Platform
}

// Result describes a finished run.
type Result struct {
	Outcome  Outcome
	Topic    string
	Content  string
	Ref      *types.PostRef
	RecordID int64
}

// Run executes one pipeline invocation. Fatal errors abort the
// remaining steps immediately; there are no retries. A Result with
// OutcomeDegraded is returned together with an ErrRecordNotSaved error
// so callers can still report the remote reference.
func Run(ctx context.Context, deps Deps, opts Options) (Result, error) {
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	if opts.Platform == "" {
		opts.Platform = types.PlatformBluesky
	}

	// Authenticate before anything is generated: a run that cannot
	// publish should not spend provider quota.
	if err := deps.Publisher.Login(ctx); err != nil {
		return Result{}, fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Fprintf(out, "logged in\n")

	topic := topics.SelectFrom(opts.Topic, opts.Candidates)
	fmt.Fprintf(out, "topic: %s\n", topic)

	content, err := deps.Generator.Generate(ctx, topic, opts.Platform)
	if err != nil {
		return Result{Topic: topic}, fmt.Errorf("generating content: %w", err)
	}
	fmt.Fprintf(out, "generated %d characters\n", len([]rune(content)))

	ok, err := deps.Confirmer.Confirm(content)
	if err != nil {
		return Result{Topic: topic, Content: content}, fmt.Errorf("reading confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintf(out, "publication cancelled\n")
		return Result{Outcome: OutcomeCancelled, Topic: topic, Content: content}, nil
	}

	ref, err := deps.Publisher.Publish(ctx, content)
	if err != nil {
		return Result{Topic: topic, Content: content}, fmt.Errorf("publishing: %w", err)
	}
	fmt.Fprintf(out, "published: %s\n", ref.URL)

	id, err := deps.Recorder.SavePost(ctx, types.Post{
		Content:     content,
		Platform:    opts.Platform,
		PostURL:     ref.URL,
		Topic:       topic,
		ProviderURI: ref.URI,
		ProviderCID: ref.CID,
		Mode:        opts.Mode,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		// The post is live; surface the reference alongside the error.
		fmt.Fprintf(out, "warning: record not saved: %v\n", err)
		return Result{Outcome: OutcomeDegraded, Topic: topic, Content: content, Ref: ref},
			fmt.Errorf("%w: %v", ErrRecordNotSaved, err)
	}
	fmt.Fprintf(out, "recorded post %d\n", id)

	return Result{Outcome: OutcomePublished, Topic: topic, Content: content, Ref: ref, RecordID: id}, nil
}
