package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"agrimarket/internal/fallback"
	"agrimarket/internal/tavily"

	"go.uber.org/zap"
)

const (
	maxSearchSources = 3
	maxSnippetRunes  = 200
	DefaultRegion    = "India"
)

type SearchSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type WeatherReport struct {
	Summary  string         `json:"summary"`
	Sources  []SearchSource `json:"sources"`
	Location string         `json:"location"`
}

type MarketReport struct {
	Summary string         `json:"summary"`
	Sources []SearchSource `json:"sources"`
	Crop    string         `json:"crop"`
	Region  string         `json:"region"`
}

type WeatherRequest struct {
	Lat      *float64 `json:"lat" binding:"required"`
	Lng      *float64 `json:"lng" binding:"required"`
	Location string   `json:"location" binding:"max=150"`
}

// Searcher is the web search backend; *tavily.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (*tavily.SearchResponse, error)
}

type WeatherService interface {
	Forecast(ctx context.Context, lat, lng float64, location string) fallback.Result[WeatherReport]
	MarketInfo(ctx context.Context, crop, region string) fallback.Result[MarketReport]
}

type weatherService struct {
	search Searcher
	log    *zap.Logger
}

func NewWeatherService(search Searcher, log *zap.Logger) WeatherService {
	return &weatherService{search: search, log: log}
}

func formatCoords(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lng, 'f', -1, 64)
}

func toSources(results []tavily.Result) []SearchSource {
	out := make([]SearchSource, 0, maxSearchSources)
	for i, r := range results {
		if i == maxSearchSources {
			break
		}
		snippet := []rune(r.Content)
		if len(snippet) > maxSnippetRunes {
			snippet = snippet[:maxSnippetRunes]
		}
		out = append(out, SearchSource{Title: r.Title, URL: r.URL, Snippet: string(snippet)})
	}
	return out
}

func (s *weatherService) query(ctx context.Context, q string) (*tavily.SearchResponse, error) {
	if s.search == nil {
		return nil, tavily.ErrNoAPIKey
	}
	return s.search.Search(ctx, q)
}

func (s *weatherService) Forecast(ctx context.Context, lat, lng float64, location string) fallback.Result[WeatherReport] {
	location = strings.TrimSpace(location)
	var q string
	if location != "" {
		q = fmt.Sprintf("current weather forecast %s India temperature rain humidity wind today tomorrow", location)
	} else {
		q = fmt.Sprintf("weather forecast India latitude %s longitude %s today tomorrow",
			strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lng, 'f', -1, 64))
	}

	report := WeatherReport{Location: location}
	if report.Location == "" {
		report.Location = formatCoords(lat, lng)
	}

	res, err := s.query(ctx, q)
	if err != nil {
		s.log.Warn("weather search failed", zap.Error(err))
		report.Summary = "Could not fetch weather data"
		report.Sources = []SearchSource{}
		return fallback.NewFallback(report, err.Error())
	}

	report.Summary = res.Answer
	if report.Summary == "" {
		report.Summary = "Weather data not available"
	}
	report.Sources = toSources(res.Results)
	return fallback.NewLive(report)
}

func (s *weatherService) MarketInfo(ctx context.Context, crop, region string) fallback.Result[MarketReport] {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		crop = DefaultCrop
	}
	region = strings.TrimSpace(region)
	if region == "" {
		region = DefaultRegion
	}

	report := MarketReport{Crop: crop, Region: region}
	res, err := s.query(ctx, fmt.Sprintf("%s mandi price today %s market rate per kg", crop, region))
	if err != nil {
		s.log.Warn("market search failed", zap.Error(err))
		report.Summary = "Could not fetch market data"
		report.Sources = []SearchSource{}
		return fallback.NewFallback(report, err.Error())
	}

	report.Summary = res.Answer
	if report.Summary == "" {
		report.Summary = "Market data not available"
	}
	report.Sources = toSources(res.Results)
	return fallback.NewLive(report)
}
