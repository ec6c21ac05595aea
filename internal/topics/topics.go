// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics selects a subject for a post: an explicit override is
// returned verbatim, otherwise a random member of the curated list.
package topics

import "math/rand"

// curated is the fixed candidate set used when no explicit topic is
// given. Loaded once at process start; never modified.
var curated = []string{
	"How AI is transforming software development in 2025",
	"Best free tools for developers in 2025",
	"Python vs JavaScript: which to learn for AI",
	"GitHub Copilot and AI assistants: the future of coding",
	"Bluesky and the future of decentralized social platforms",
	"Accessible machine learning: free resources to get started",
	"Free APIs every developer should know",
	"Automation with AI: saving time in development",
	"Open source AI models: free alternatives to ChatGPT",
	"Free cloud computing for AI projects",
	"Best practices for prompt engineering in 2025",
	"Docker and containerization: practical guide",
	"Git workflows for modern teams",
	"Testing automation: essential tools",
	"CI/CD pipelines with GitHub Actions",
	"Modern databases: SQL vs NoSQL in 2025",
	"Web security: basics every developer must know",
	"Progressive Web Apps: when and why to use them",
	"Microservices vs Monoliths: what to choose",
	"Performance optimization: practical tips",
}

// Select returns explicit verbatim when it is non-empty, otherwise a
// uniformly random entry from the curated list. It never returns an
// empty string.
func Select(explicit string) string {
	return SelectFrom(explicit, nil)
}

// SelectFrom behaves like Select but draws from candidates when the
// slice is non-empty, falling back to the curated list otherwise. This
// lets callers seed selection with cached trending titles.
func SelectFrom(explicit string, candidates []string) string {
	if explicit != "" {
		return explicit
	}
	pool := candidates
	if len(pool) == 0 {
		pool = curated
	}
	return pool[rand.Intn(len(pool))]
}

// List returns a copy of the curated candidate set.
func List() []string {
	out := make([]string, len(curated))
	copy(out, curated)
	return out
}
