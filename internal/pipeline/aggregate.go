// Package pipeline turns raw per-service cost records into display-ready
// cost views: filtering, ranking, and truncation.
package pipeline

import (
	"sort"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"
)

// TopServiceLimit caps how many ranked services a CostView carries.
const TopServiceLimit = 10

// Aggregate builds a CostView from raw records: entries are sorted by cost
// descending (stable with respect to input order on ties) and truncated to
// TopServiceLimit. The total is carried through verbatim: it covers the
// whole account, so it may exceed the sum of the listed entries when more
// services billed than the view shows.
func Aggregate(records []model.CostRecord, total float64, fetchedAt time.Time) model.CostView {
	entries := make([]model.ServiceCost, len(records))
	for i, r := range records {
		entries[i] = model.ServiceCost{
			Service:  r.Service,
			Cost:     r.Cost,
			Activity: r.Activity,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Cost > entries[j].Cost
	})

	if len(entries) > TopServiceLimit {
		entries = entries[:TopServiceLimit]
	}

	return model.CostView{
		MonthToDate: total,
		Services:    entries,
		FetchedAt:   fetchedAt,
	}
}

// FilterNonZero returns only records with a positive cost. Callers that
// want zero-cost services hidden compose this with Aggregate; by default
// zero-cost records are kept.
func FilterNonZero(records []model.CostRecord) []model.CostRecord {
	out := make([]model.CostRecord, 0, len(records))
	for _, r := range records {
		if r.Cost > 0 {
			out = append(out, r)
		}
	}
	return out
}
