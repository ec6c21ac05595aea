// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/social-engine/pkg/types"
)

// --- fakes ---

type fakeGenerator struct {
	content string
	err     error
	calls   int
}

func (g *fakeGenerator) Generate(_ context.Context, topic string, _ types.Platform) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

type fakePublisher struct {
	loginErr     error
	publishErr   error
	ref          types.PostRef
	loggedIn     bool
	publishCalls int
}

func (p *fakePublisher) Login(context.Context) error {
	if p.loginErr != nil {
		return p.loginErr
	}
	p.loggedIn = true
	return nil
}

func (p *fakePublisher) Publish(_ context.Context, text string) (*types.PostRef, error) {
	p.publishCalls++
	if !p.loggedIn {
		return nil, errors.New("publish before login")
	}
	if p.publishErr != nil {
		return nil, p.publishErr
	}
	ref := p.ref
	return &ref, nil
}

type fakeRecorder struct {
	err   error
	saved []types.Post
}

func (r *fakeRecorder) SavePost(_ context.Context, post types.Post) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = append(r.saved, post)
	return int64(len(r.saved)), nil
}

type decideConfirm bool

func (d decideConfirm) Confirm(string) (bool, error) { return bool(d), nil }

func workingDeps() (Deps, *fakeGenerator, *fakePublisher, *fakeRecorder) {
	gen := &fakeGenerator{content: "Hello world"}
	pub := &fakePublisher{ref: types.PostRef{
		URL: "https://example/1", URI: "at://1", CID: "cid1",
	}}
	rec := &fakeRecorder{}
	return Deps{Generator: gen, Publisher: pub, Recorder: rec, Confirmer: decideConfirm(true)}, gen, pub, rec
}

// --- scenarios ---

func TestRunAutomaticPublishesAndRecords(t *testing.T) {
	deps, _, _, rec := workingDeps()

	result, err := Run(context.Background(), deps, Options{Mode: types.ModeAutomatic})
	require.NoError(t, err)

	assert.Equal(t, OutcomePublished, result.Outcome)
	assert.Equal(t, "Hello world", result.Content)
	require.NotNil(t, result.Ref)
	assert.Equal(t, "https://example/1", result.Ref.URL)
	assert.Equal(t, int64(1), result.RecordID)

	require.Len(t, rec.saved, 1)
	saved := rec.saved[0]
	assert.Equal(t, "Hello world", saved.Content)
	assert.Equal(t, "https://example/1", saved.PostURL)
	assert.Equal(t, "at://1", saved.ProviderURI)
	assert.Equal(t, "cid1", saved.ProviderCID)
	assert.Equal(t, types.ModeAutomatic, saved.Mode)
	assert.NotEmpty(t, saved.Topic)
}

func TestRunUserDeclineIsNotAnError(t *testing.T) {
	deps, _, pub, rec := workingDeps()
	deps.Confirmer = decideConfirm(false)

	result, err := Run(context.Background(), deps, Options{Mode: types.ModeInteractive})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Equal(t, 0, pub.publishCalls)
	assert.Empty(t, rec.saved)
}

func TestRunAuthFailureStopsBeforeGeneration(t *testing.T) {
	deps, gen, pub, rec := workingDeps()
	pub.loginErr = errors.New("invalid identifier or password")

	_, err := Run(context.Background(), deps, Options{Mode: types.ModeAutomatic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, pub.publishCalls)
	assert.Empty(t, rec.saved)
}

func TestRunGenerationFailureStopsBeforePublish(t *testing.T) {
	deps, gen, pub, rec := workingDeps()
	gen.err = errors.New("provider unreachable")

	_, err := Run(context.Background(), deps, Options{Mode: types.ModeAutomatic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating content")

	assert.Equal(t, 0, pub.publishCalls)
	assert.Empty(t, rec.saved)
}

func TestRunPublishFailureSkipsRecord(t *testing.T) {
	deps, _, pub, rec := workingDeps()
	pub.publishErr = errors.New("rate limited")

	result, err := Run(context.Background(), deps, Options{Mode: types.ModeAutomatic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publishing")
	assert.Nil(t, result.Ref)
	assert.Empty(t, rec.saved)
}

func TestRunStoreFailureIsDegradedSuccess(t *testing.T) {
	deps, _, _, rec := workingDeps()
	rec.err = errors.New("disk full")

	var out strings.Builder
	deps.Out = &out

	result, err := Run(context.Background(), deps, Options{Mode: types.ModeAutomatic})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordNotSaved)

	// The remote success is not masked: the reference survives in the
	// result and the URL appears in the output.
	assert.Equal(t, OutcomeDegraded, result.Outcome)
	require.NotNil(t, result.Ref)
	assert.Equal(t, "https://example/1", result.Ref.URL)
	assert.Contains(t, out.String(), "https://example/1")
}

func TestRunExplicitTopicWins(t *testing.T) {
	deps, _, _, rec := workingDeps()

	result, err := Run(context.Background(), deps, Options{
		Mode:  types.ModeInteractive,
		Topic: "Zig vs Rust for systems programming",
	})
	require.NoError(t, err)
	assert.Equal(t, "Zig vs Rust for systems programming", result.Topic)
	assert.Equal(t, "Zig vs Rust for systems programming", rec.saved[0].Topic)
}

func TestRunCandidatePool(t *testing.T) {
	deps, _, _, _ := workingDeps()

	result, err := Run(context.Background(), deps, Options{
		Mode:       types.ModeAutomatic,
		Candidates: []string{"only candidate"},
	})
	require.NoError(t, err)
	assert.Equal(t, "only candidate", result.Topic)
}

// --- confirmation sources ---

func TestAutoConfirmAlwaysYes(t *testing.T) {
	ok, err := AutoConfirm{}.Confirm("anything")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPromptConfirmAnswers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase Y", "Y\n", true},
		{"padded yes", "  yes  \n", true},
		{"n", "n\n", false},
		{"free text", "maybe later\n", false},
		{"empty line", "\n", false},
		{"eof", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := PromptConfirm{In: strings.NewReader(tt.input), Out: &out}
			got, err := p.Confirm("preview text")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "preview text")
		})
	}
}
