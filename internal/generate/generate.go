// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces platform-sized social posts from a topic
// using the Groq chat completions API.
package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/social-engine/pkg/types"
)

// Failure classes surfaced to the orchestrator. Each aborts the run;
// retry policy, if any, belongs to the caller.
var (
	// ErrProviderUnavailable covers transport failures and provider-side
	// errors (5xx, unexpected statuses).
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrQuotaExceeded is returned on HTTP 429 from the provider.
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrInvalidOutput means the provider responded but the text was
	// empty or unusable after post-processing.
	ErrInvalidOutput = errors.New("generation produced invalid output")
)

const (
	defaultModel       = "llama-3.3-70b-versatile"
	defaultMaxTokens   = 600
	defaultTemperature = 0.8
	defaultTimeout     = 60 * time.Second
)

// platformProfile describes the post-processing constraints and prompt
// framing for one target platform.
type platformProfile struct {
	// MaxRunes is the hard length ceiling for the platform.
	MaxRunes int

	// FormatTips and Structure steer the prompt toward the platform's
	// conventions.
	FormatTips string
	Structure  string
}

var profiles = map[types.Platform]platformProfile{
	types.PlatformBluesky: {
		MaxRunes:   300,
		FormatTips: "1-2 well-placed emoji, at most 3 hashtags, conversational and genuine tone",
		Structure:  "Hook + insight + value, optional call to action",
	},
}

// systemPrompts gives the model some variety across runs.
var systemPrompts = []string{
	"You are a technology expert who explains complex concepts simply and accessibly, with practical examples and effective analogies.",
	"You are an experienced developer sharing practical tips from the tech world. Your style is direct, technical but clear, focused on real applications.",
	"You are a tech enthusiast who educates about AI, machine learning and innovation. Your tone is enthusiastic but professional, always grounded in facts.",
	"You are a tech educator who makes complex subjects approachable. You take a step-by-step approach and never assume prior knowledge.",
	"You are a tech curator who spots and shares the trends that matter. You have a critical eye for meaningful innovation.",
}

// Generator calls the Groq API and adapts the output to the target
// platform's constraints.
type Generator struct {
	client *http.Client
	cfg    types.GeneratorConfig
}

// New builds a Generator, applying defaults for unset config fields.
func New(cfg types.GeneratorConfig) *Generator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
	}
}

// Generate produces one post about topic, sized for platform. The
// returned text never exceeds the platform's length ceiling: over-long
// provider output is shortened at a word boundary. A single provider
// call is made per invocation.
func (g *Generator) Generate(ctx context.Context, topic string, platform types.Platform) (string, error) {
	profile, ok := profiles[platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform %q", platform)
	}

	raw, err := g.complete(ctx, buildMessages(topic, profile))
	if err != nil {
		return "", err
	}

	content := postProcess(raw, profile)
	if content == "" {
		return "", fmt.Errorf("%w: provider returned no usable text for topic %q", ErrInvalidOutput, topic)
	}
	return content, nil
}

func buildMessages(topic string, profile platformProfile) []chatMessage {
	user := fmt.Sprintf(`Write a social post on this topic:

TOPIC: %s

TECHNICAL REQUIREMENTS:
- Length: at most %d characters
- Format: %s
- Structure: %s

QUALITY REQUIREMENTS:
- Must educate or deliver real value
- Avoid cliches ("game-changer", "revolutionary", etc.)
- Use concrete data or examples where possible
- Be specific, not generic
- Authentic, professional tone
- NO spam, NO click-bait, NO unrealistic promises

IMPORTANT: Write ONLY the final post text, no explanations or meta-commentary.`,
		topic, profile.MaxRunes, profile.FormatTips, profile.Structure)

	return []chatMessage{
		{Role: "system", Content: systemPrompts[rand.Intn(len(systemPrompts))]},
		{Role: "user", Content: user},
	}
}

// postProcess trims provider decoration, tidies hashtags, and enforces
// the platform length ceiling. Returns "" when the result is too
// fragmented to publish.
func postProcess(raw string, profile platformProfile) string {
	content := strings.TrimSpace(raw)
	content = strings.Trim(content, "\"")
	content = tidyHashtags(content)
	content = truncateRunes(content, profile.MaxRunes)

	if len(strings.Fields(content)) < 2 {
		return ""
	}
	return content
}

// tidyHashtags removes duplicate hashtags and keeps at most three.
func tidyHashtags(content string) string {
	words := strings.Fields(content)
	seen := make(map[string]bool)
	kept := 0
	var out []string
	for _, w := range words {
		if !strings.HasPrefix(w, "#") {
			out = append(out, w)
			continue
		}
		key := strings.ToLower(w)
		if seen[key] || kept >= 3 {
			continue
		}
		seen[key] = true
		kept++
		out = append(out, w)
	}
	// Preserve original spacing only when nothing was removed.
	if len(out) == len(words) {
		return content
	}
	return strings.Join(out, " ")
}

// truncateRunes shortens s to at most max runes, cutting back to the
// last word boundary and appending an ellipsis.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max-3])
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}
