// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL).WithHTTPClient(srv.Client())
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "hunter2", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"token":   "jwt-abc",
			"user":    map[string]string{"id": "u1", "username": "alice", "email": "a@x.io"},
		})
	}))

	resp, err := client.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestLoginConnectionError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL)

	_, err := client.Login(context.Background(), "alice", "hunter2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestSignup(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
	}))

	resp, err := client.Signup(context.Background(), "bob", "b@x.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", resp.Message)
}

func TestSignupUserExists(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	}))

	_, err := client.Signup(context.Background(), "bob", "b@x.io", "secret")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestSignupSuccessFlagOverridesStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "User registered successfully",
			"success": true,
		})
	}))

	resp, err := client.Signup(context.Background(), "bob", "b@x.io", "secret")
	require.NoError(t, err, "a true success flag counts even on a non-2xx status")
	assert.Equal(t, "User registered successfully", resp.Message)
}

func TestChatHistory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/history", r.URL.Path)
		require.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"chats": []map[string]any{
				{
					"id":     "c1",
					"name":   "Quarterly Report",
					"pinned": true,
					"history": []map[string]any{
						{"type": "user", "content": "summarize this", "timestamp": "10:00:00",
							"file": map[string]string{"name": "q.pdf", "document_id": "d1"}},
						{"type": "response", "content": "The report covers...", "timestamp": "10:00:05"},
					},
				},
			},
		})
	}))
	client.WithToken("jwt-abc")

	chats, err := client.ChatHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "c1", chats[0].ID)
	assert.True(t, chats[0].Pinned)
	require.Len(t, chats[0].History, 2)
	assert.Equal(t, "user", chats[0].History[0].Type)
	require.NotNil(t, chats[0].History[0].File)
	assert.Equal(t, "q.pdf", chats[0].History[0].File.Name)
}

func TestChatMutations(t *testing.T) {
	var gotPath, gotMethod atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		gotMethod.Store(r.Method)
		switch {
		case r.URL.Path == "/chat/create":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"chat_id": "srv-9"})
		case r.URL.Path == "/chat/c1/pin":
			json.NewEncoder(w).Encode(map[string]any{"pinned": true})
		default:
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	}))

	ctx := context.Background()

	created, err := client.CreateChat(ctx, "New Chat")
	require.NoError(t, err)
	assert.Equal(t, "srv-9", created.ChatID)
	assert.Equal(t, http.MethodPost, gotMethod.Load())

	require.NoError(t, client.DeleteChat(ctx, "c1"))
	assert.Equal(t, "/chat/c1", gotPath.Load())
	assert.Equal(t, http.MethodDelete, gotMethod.Load())

	require.NoError(t, client.RenameChat(ctx, "c1", "Renamed"))
	assert.Equal(t, "/chat/c1/rename", gotPath.Load())
	assert.Equal(t, http.MethodPut, gotMethod.Load())

	pin, err := client.TogglePin(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, pin.Pinned)

	require.NoError(t, client.ClearMessages(ctx, "c1"))
	assert.Equal(t, "/chat/c1/messages", gotPath.Load())
	assert.Equal(t, http.MethodDelete, gotMethod.Load())
}

func TestMutationNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))

	err := client.DeleteChat(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "failed requests must not be retried")
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"conflict", http.StatusConflict, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			err := client.DeleteChat(context.Background(), "c1")
			assert.True(t, errors.Is(err, tt.want), "want %v, got %v", tt.want, err)
		})
	}
}

func TestProcessDocument(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(docPath, []byte("%PDF-1.4 test"), 0644))

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/document/process-document", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "what is the thesis?", r.FormValue("query"))
		assert.Equal(t, "1700000000000", r.FormValue("chat_id"))
		assert.Equal(t, "New Chat", r.FormValue("chat_name"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "paper.pdf", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{
			"response": "The thesis is...",
			"title":    "A Paper",
			"author":   "Someone",
			"chat_id":  "srv-42",
		})
	}))

	resp, err := client.ProcessDocument(context.Background(), ProcessRequest{
		Query:    "what is the thesis?",
		ChatID:   "1700000000000",
		ChatName: "New Chat",
		FilePath: docPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "The thesis is...", resp.Response)
	assert.Equal(t, "srv-42", resp.ChatID)
}

func TestProcessDocumentNoFile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("file")
		assert.Error(t, err, "no file part expected")
		json.NewEncoder(w).Encode(map[string]string{"response": "answer", "chat_id": "c1"})
	}))

	resp, err := client.ProcessDocument(context.Background(), ProcessRequest{
		Query:    "follow-up question",
		ChatID:   "c1",
		ChatName: "Existing",
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Response)
}

func TestProcessDocumentServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Query cannot be empty"})
	}))

	_, err := client.ProcessDocument(context.Background(), ProcessRequest{ChatID: "c1"})
	require.Error(t, err)
	assert.Equal(t, "Query cannot be empty", ErrorMessage(err, "An unexpected error occurred"))
}

func TestErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred",
		ErrorMessage(errors.New("dial tcp: refused"), "An unexpected error occurred"))
	assert.Equal(t, "boom",
		ErrorMessage(&APIError{Status: 500, Message: "boom"}, "fallback"))
}
