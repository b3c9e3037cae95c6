package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agrimarket/internal/fallback"
	"agrimarket/internal/tavily"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSearcher struct {
	queries []string
	res     *tavily.SearchResponse
	err     error
}

func (s *stubSearcher) Search(_ context.Context, q string) (*tavily.SearchResponse, error) {
	s.queries = append(s.queries, q)
	return s.res, s.err
}

func TestForecast_Live(t *testing.T) {
	long := strings.Repeat("é", 250)
	s := &stubSearcher{res: &tavily.SearchResponse{
		Answer: "Light rain tomorrow",
		Results: []tavily.Result{
			{Title: "a", URL: "u1", Content: long},
			{Title: "b", URL: "u2"},
			{Title: "c", URL: "u3"},
			{Title: "d", URL: "u4"},
		},
	}}
	res := NewWeatherService(s, zap.NewNop()).Forecast(context.Background(), 12.97, 77.59, "Kolar")

	assert.True(t, res.IsLive())
	assert.Equal(t, "Light rain tomorrow", res.Data.Summary)
	assert.Equal(t, "Kolar", res.Data.Location)
	require.Len(t, res.Data.Sources, 3)
	assert.Equal(t, 200, len([]rune(res.Data.Sources[0].Snippet)))
	assert.Equal(t, "current weather forecast Kolar India temperature rain humidity wind today tomorrow", s.queries[0])
}

func TestForecast_CoordinatesQuery(t *testing.T) {
	s := &stubSearcher{res: &tavily.SearchResponse{}}
	res := NewWeatherService(s, zap.NewNop()).Forecast(context.Background(), 12.97, 77.59, "")

	assert.Equal(t, "12.97, 77.59", res.Data.Location)
	assert.Equal(t, "Weather data not available", res.Data.Summary)
	assert.Equal(t, "weather forecast India latitude 12.97 longitude 77.59 today tomorrow", s.queries[0])
}

func TestForecast_FallbackOnError(t *testing.T) {
	s := &stubSearcher{err: errors.New("connection refused")}
	res := NewWeatherService(s, zap.NewNop()).Forecast(context.Background(), 1, 2, "")

	assert.Equal(t, fallback.Fallback, res.Source)
	assert.Equal(t, "connection refused", res.Reason)
	assert.Equal(t, "Could not fetch weather data", res.Data.Summary)
	assert.NotNil(t, res.Data.Sources)
}

func TestForecast_NoSearcherConfigured(t *testing.T) {
	res := NewWeatherService(tavily.NewClient(""), zap.NewNop()).Forecast(context.Background(), 1, 2, "")
	assert.Equal(t, fallback.Fallback, res.Source)
	assert.Equal(t, tavily.ErrNoAPIKey.Error(), res.Reason)
}

func TestMarketInfo(t *testing.T) {
	s := &stubSearcher{res: &tavily.SearchResponse{Answer: "Rs 30/kg"}}
	res := NewWeatherService(s, zap.NewNop()).MarketInfo(context.Background(), "onion", "")

	assert.True(t, res.IsLive())
	assert.Equal(t, DefaultRegion, res.Data.Region)
	assert.Equal(t, "onion mandi price today India market rate per kg", s.queries[0])

	s.err = errors.New("boom")
	res = NewWeatherService(s, zap.NewNop()).MarketInfo(context.Background(), "onion", "Karnataka")
	assert.Equal(t, "Could not fetch market data", res.Data.Summary)
	assert.Equal(t, "Karnataka", res.Data.Region)
}
