// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bluesky publishes posts over the AT Protocol XRPC API. A
// Client holds one credential session per run: Login establishes it,
// Publish requires it.
package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/social-engine/pkg/types"
)

const (
	defaultHost    = "https://bsky.social"
	defaultTimeout = 30 * time.Second

	createSessionPath = "/xrpc/com.atproto.server.createSession"
	createRecordPath  = "/xrpc/com.atproto.repo.createRecord"

	postCollection = "app.bsky.feed.post"

	// maxPostRunes is the platform record limit. The generator keeps
	// content under it; the client rejects anything longer rather than
	// silently truncating.
	maxPostRunes = 300
)

// ErrNotAuthenticated is returned by Publish when Login has not
// succeeded in this run.
var ErrNotAuthenticated = errors.New("bluesky: publish before successful login")

// session is the credential session established by Login and held for
// the duration of one run. Never cached across processes.
type session struct {
	AccessJWT string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

// Client talks to one PDS on behalf of one account.
type Client struct {
	client  *http.Client
	cfg     types.BlueskyConfig
	session *session
}

// New builds a Client. The session starts unauthenticated.
func New(cfg types.BlueskyConfig) *Client {
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
	}
}

// Login exchanges the handle and app password for an access session.
// Bad credentials, network failures, and service errors all surface as
// a returned error; callers branch on it before generating content.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"identifier": c.cfg.Handle,
		"password":   c.cfg.AppPassword,
	})
	if err != nil {
		return fmt.Errorf("encoding session request: %w", err)
	}

	resp, err := c.post(ctx, createSessionPath, body)
	if err != nil {
		return fmt.Errorf("bluesky login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bluesky login: %s", xrpcErrorDetail(resp))
	}

	var s session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return fmt.Errorf("bluesky login: parsing session: %w", err)
	}
	if s.AccessJWT == "" || s.DID == "" {
		return fmt.Errorf("bluesky login: incomplete session response")
	}

	c.session = &s
	return nil
}

// Handle returns the handle confirmed by the PDS at login, or the
// configured handle before login.
func (c *Client) Handle() string {
	if c.session != nil && c.session.Handle != "" {
		return c.session.Handle
	}
	return c.cfg.Handle
}

// createRecordRequest is the XRPC payload for a feed post record.
type createRecordRequest struct {
	Repo       string     `json:"repo"`
	Collection string     `json:"collection"`
	Record     postRecord `json:"record"`
}

type postRecord struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type createRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Publish submits text as a single feed post. One attempt, no retry:
// at-most-once semantics per run. A non-nil PostRef is returned only
// on success.
func (c *Client) Publish(ctx context.Context, text string) (*types.PostRef, error) {
	if c.session == nil {
		return nil, ErrNotAuthenticated
	}
	if n := len([]rune(text)); n > maxPostRunes {
		return nil, fmt.Errorf("bluesky: post is %d runes, limit is %d", n, maxPostRunes)
	}

	body, err := json.Marshal(createRecordRequest{
		Repo:       c.session.DID,
		Collection: postCollection,
		Record: postRecord{
			Type:      postCollection,
			Text:      text,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	resp, err := c.post(ctx, createRecordPath, body)
	if err != nil {
		return nil, fmt.Errorf("bluesky publish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bluesky publish: %s", xrpcErrorDetail(resp))
	}

	var cr createRecordResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("bluesky publish: parsing response: %w", err)
	}
	if cr.URI == "" {
		return nil, fmt.Errorf("bluesky publish: response missing record URI")
	}

	return &types.PostRef{
		URL: postURL(c.Handle(), cr.URI),
		URI: cr.URI,
		CID: cr.CID,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessJWT)
	}
	return c.client.Do(req)
}

// postURL derives the public bsky.app link from the record AT-URI. The
// record key is the last path segment of the URI.
func postURL(handle, uri string) string {
	rkey := uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		rkey = uri[idx+1:]
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", handle, rkey)
}

// xrpcErrorDetail reads an XRPC error body ({error, message}) and
// formats it for wrapping; falls back to the bare status code.
func xrpcErrorDetail(resp *http.Response) string {
	var xe struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &xe); err == nil && xe.Error != "" {
		return fmt.Sprintf("HTTP %d %s: %s", resp.StatusCode, xe.Error, xe.Message)
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
