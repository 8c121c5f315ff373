package models

import "time"

// Point is a single timestamped observation.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of points, oldest first, timestamps non-decreasing.
type Series []Point

// Tail returns the last n points. If fewer than n exist, the whole series is
// returned; order is preserved.
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return nil
	}
	return s[len(s)-n:]
}

// Values extracts the value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Last returns the newest point, or false on an empty series.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// MarketChart is one full upstream market_chart response: parallel price and
// volume series for a single asset/currency pair, oldest first.
type MarketChart struct {
	Prices  Series
	Volumes Series
}
