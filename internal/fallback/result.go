// Package fallback tags data from downstream services as live or as a
// locally produced stand-in, so callers never see a downstream outage as an
// error.
package fallback

// Source says where a Result's data came from.
type Source string

const (
	Live     Source = "live"
	Fallback Source = "fallback"
)

// Result wraps data with its provenance. Reason explains a fallback.
type Result[T any] struct {
	Source Source `json:"source"`
	Data   T      `json:"data"`
	Reason string `json:"reason,omitempty"`
}

// NewLive wraps data fetched from the real downstream.
func NewLive[T any](data T) Result[T] {
	return Result[T]{Source: Live, Data: data}
}

// NewFallback wraps placeholder or simulated data.
func NewFallback[T any](data T, reason string) Result[T] {
	return Result[T]{Source: Fallback, Data: data, Reason: reason}
}

// IsLive reports whether the data came from the downstream.
func (r Result[T]) IsLive() bool { return r.Source == Live }
