package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", ContentType)
		_, _ = w.Write([]byte("ID3fake-mp3"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Config{APIKey: "k", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	audio, err := c.Synthesize(context.Background(), "  Fractions are parts of a whole.  ")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake-mp3"), audio)

	assert.Equal(t, "tts-1", got["model"])
	assert.Equal(t, "nova", got["voice"])
	assert.Equal(t, "mp3", got["response_format"])
	assert.Equal(t, "Fractions are parts of a whole.", got["input"])
	assert.InDelta(t, 0.95, got["speed"], 0.0001)
}

func TestSynthesize_EmptyText(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSynthesize_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Config{APIKey: "k", BaseURL: server.URL + "/v1", Voice: "alloy", Speed: 1.2})
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
