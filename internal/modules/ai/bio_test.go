package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIDrafter_RequiresKey(t *testing.T) {
	_, err := NewOpenAIDrafter("", "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = Unconfigured{}.DraftBio(context.Background(), BioInput{Name: "Jane"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDraftBio(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "test-model", req.Model)
		gotPrompt = req.Messages[len(req.Messages)-1].Content

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":"  Jane draws fine lines in Austin.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	d, err := NewOpenAIDrafter("test-key", srv.URL+"/v1/", "test-model")
	require.NoError(t, err)

	bio, err := d.DraftBio(context.Background(), BioInput{Name: "Jane", Specialty: "Fine line", City: "Austin"})
	require.NoError(t, err)
	assert.Equal(t, "Jane draws fine lines in Austin.", bio)
	assert.Contains(t, gotPrompt, "Specialty: Fine line")
	assert.Contains(t, gotPrompt, "Based in: Austin")
}

func TestDraftBio_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	d, err := NewOpenAIDrafter("test-key", srv.URL+"/v1", "")
	require.NoError(t, err)

	_, err = d.DraftBio(context.Background(), BioInput{Name: "Jane"})
	assert.Error(t, err)
}
