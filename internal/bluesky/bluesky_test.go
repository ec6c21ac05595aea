// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bluesky

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/social-engine/pkg/types"
)

// fakePDS implements just enough XRPC to exercise the client.
type fakePDS struct {
	t             *testing.T
	password      string
	recordCalls   int32
	rejectRecords bool
}

func (f *fakePDS) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case createSessionPath:
			var req struct {
				Identifier string `json:"identifier"`
				Password   string `json:"password"`
			}
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != f.password {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "AuthenticationRequired", "message": "Invalid identifier or password",
				})
				return
			}
			json.NewEncoder(w).Encode(session{
				AccessJWT: "jwt-token", DID: "did:plc:abc123", Handle: req.Identifier,
			})
		case createRecordPath:
			atomic.AddInt32(&f.recordCalls, 1)
			if r.Header.Get("Authorization") != "Bearer jwt-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if f.rejectRecords {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "InvalidRequest", "message": "record rejected",
				})
				return
			}
			var req createRecordRequest
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(f.t, "did:plc:abc123", req.Repo)
			assert.Equal(f.t, postCollection, req.Collection)
			assert.Equal(f.t, postCollection, req.Record.Type)
			json.NewEncoder(w).Encode(createRecordResponse{
				URI: "at://did:plc:abc123/app.bsky.feed.post/3kxyz", CID: "bafyrei123",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestClient(t *testing.T, pds *fakePDS) *Client {
	t.Helper()
	srv := httptest.NewServer(pds.handler())
	t.Cleanup(srv.Close)
	return New(types.BlueskyConfig{
		Handle:      "bot.bsky.social",
		AppPassword: "app-pass",
		Host:        srv.URL,
	})
}

func TestLoginEstablishesSession(t *testing.T) {
	c := newTestClient(t, &fakePDS{t: t, password: "app-pass"})

	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, "bot.bsky.social", c.Handle())
	require.NotNil(t, c.session)
	assert.Equal(t, "did:plc:abc123", c.session.DID)
}

func TestLoginBadCredentials(t *testing.T) {
	c := newTestClient(t, &fakePDS{t: t, password: "other-pass"})

	err := c.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthenticationRequired")
	assert.Nil(t, c.session)
}

func TestPublishRequiresLogin(t *testing.T) {
	pds := &fakePDS{t: t, password: "app-pass"}
	c := newTestClient(t, pds)

	ref, err := c.Publish(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, ref)
	// The precondition fails before any network call.
	assert.Equal(t, int32(0), atomic.LoadInt32(&pds.recordCalls))
}

func TestPublishReturnsReference(t *testing.T) {
	c := newTestClient(t, &fakePDS{t: t, password: "app-pass"})
	require.NoError(t, c.Login(context.Background()))

	ref, err := c.Publish(context.Background(), "Hello world")
	require.NoError(t, err)
	assert.Equal(t, "at://did:plc:abc123/app.bsky.feed.post/3kxyz", ref.URI)
	assert.Equal(t, "bafyrei123", ref.CID)
	assert.Equal(t, "https://bsky.app/profile/bot.bsky.social/post/3kxyz", ref.URL)
}

func TestPublishRejectedByRemote(t *testing.T) {
	c := newTestClient(t, &fakePDS{t: t, password: "app-pass", rejectRecords: true})
	require.NoError(t, c.Login(context.Background()))

	ref, err := c.Publish(context.Background(), "Hello world")
	require.Error(t, err)
	assert.Nil(t, ref)
	assert.Contains(t, err.Error(), "InvalidRequest")
}

func TestPublishRejectsOverlongText(t *testing.T) {
	pds := &fakePDS{t: t, password: "app-pass"}
	c := newTestClient(t, pds)
	require.NoError(t, c.Login(context.Background()))

	ref, err := c.Publish(context.Background(), strings.Repeat("x", maxPostRunes+1))
	require.Error(t, err)
	assert.Nil(t, ref)
	assert.Equal(t, int32(0), atomic.LoadInt32(&pds.recordCalls))
}

func TestPostURL(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		uri    string
		want   string
	}{
		{
			name:   "standard AT-URI",
			handle: "bot.bsky.social",
			uri:    "at://did:plc:abc/app.bsky.feed.post/3kxyz",
			want:   "https://bsky.app/profile/bot.bsky.social/post/3kxyz",
		},
		{
			name:   "uri without slashes",
			handle: "bot.bsky.social",
			uri:    "3kxyz",
			want:   "https://bsky.app/profile/bot.bsky.social/post/3kxyz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postURL(tt.handle, tt.uri))
		})
	}
}
