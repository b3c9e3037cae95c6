package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Answer:  "Sunny, 31C",
			Results: []Result{{Title: "t", URL: "u", Content: "c"}},
		})
	}))
	defer srv.Close()

	res, err := NewClient("k").WithBaseURL(srv.URL).Search(context.Background(), "weather")
	require.NoError(t, err)
	assert.Equal(t, "Sunny, 31C", res.Answer)
	assert.Len(t, res.Results, 1)

	assert.Equal(t, "k", got.APIKey)
	assert.Equal(t, "weather", got.Query)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, 5, got.MaxResults)
	assert.True(t, got.IncludeAnswer)
}

func TestSearchErrors(t *testing.T) {
	_, err := NewClient("").Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err = NewClient("k").WithBaseURL(srv.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
