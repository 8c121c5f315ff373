package models

import "time"

// Cadence is the granularity regime the upstream serves for a window size:
// hourly points up to 90 days, daily points beyond.
type Cadence string

const (
	CadenceHourly90 Cadence = "hourly_90"
	CadenceDaily365 Cadence = "daily_365"
)

const (
	// HourlyMaxDays is the widest window the upstream serves at hourly
	// granularity. Requests at or below it select CadenceHourly90.
	HourlyMaxDays = 90
	// DailyMaxDays is the full fetch width for the daily regime.
	DailyMaxDays = 365
	// HourlyPointsPerDay approximates the hourly point count per calendar day.
	HourlyPointsPerDay = 24
)

// CadenceFor selects the cadence bucket for a requested window. The boundary
// mirrors upstream behavior exactly: <=90 days is hourly, above is daily.
func CadenceFor(days int) Cadence {
	if days <= HourlyMaxDays {
		return CadenceHourly90
	}
	return CadenceDaily365
}

// FetchDays is the full window width fetched and cached for this cadence.
func (c Cadence) FetchDays() int {
	if c == CadenceHourly90 {
		return HourlyMaxDays
	}
	return DailyMaxDays
}

// SlicePoints is the number of trailing points a requested window maps to.
func (c Cadence) SlicePoints(days int) int {
	if c == CadenceHourly90 {
		return days * HourlyPointsPerDay
	}
	return days
}

// MarketWindow is a sliced view over one cached full-width fetch.
type MarketWindow struct {
	AssetID   string    `json:"asset_id"`
	Currency  string    `json:"currency"`
	Cadence   Cadence   `json:"cadence"`
	Days      int       `json:"days"`
	Prices    Series    `json:"prices"`
	Volumes   Series    `json:"volumes"`
	Partial   bool      `json:"partial"`
	FetchedAt time.Time `json:"fetched_at"`
}
