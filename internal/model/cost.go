// Package model defines the core cost and budget types shared across billwatch.
package model

import "time"

// CostRecord is one raw per-service cost entry as returned by a fetcher.
// Activity is the number of API events for the service in the last 24h;
// nil means the activity source was unavailable, 0 means known-idle.
type CostRecord struct {
	Service  string
	Cost     float64
	Activity *int
}

// CostReport is the raw payload of one successful fetch. Total is the
// month-to-date spend across all services, not just the ones in Records.
type CostReport struct {
	Records   []CostRecord
	Total     float64
	FetchedAt time.Time
}

// ServiceCost is one ranked entry of a CostView.
type ServiceCost struct {
	Service  string  `json:"service"`
	Cost     float64 `json:"cost"`
	Activity *int    `json:"activity,omitempty"`
}

// CostView is the aggregated, display-ready cost state. Services holds at
// most the top 10 entries sorted by cost descending; MonthToDate covers the
// whole account and may exceed the sum of the listed entries.
type CostView struct {
	MonthToDate float64       `json:"month_to_date"`
	Services    []ServiceCost `json:"services"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

// KnownActivity is a convenience constructor for an activity count literal.
func KnownActivity(n int) *int {
	return &n
}
