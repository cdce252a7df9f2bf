package awsbill

import (
	"context"
	"math/rand"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"
)

// Simulator generates plausible cost data for demos and for running the
// widget without AWS credentials.
type Simulator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator returns a simulator seeded from the clock.
func NewSimulator() *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// newSimulatorSeeded is used by tests for reproducible output.
func newSimulatorSeeded(seed int64, now func() time.Time) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Fetch produces a simulated report: an MTD total between $10 and $500
// distributed across 5-10 services, each with a simulated activity count.
func (s *Simulator) Fetch(_ context.Context) (model.CostReport, error) {
	mtd := 10.0 + s.rng.Float64()*490.0

	n := 5 + s.rng.Intn(6)
	picks := s.rng.Perm(len(awsServices))[:n]

	records := make([]model.CostRecord, 0, n)
	remaining := mtd
	for i, pick := range picks {
		var cost float64
		if i == n-1 {
			cost = remaining
		} else {
			cost = s.rng.Float64() * remaining * 0.6
			remaining -= cost
		}
		records = append(records, model.CostRecord{
			Service:  awsServices[pick],
			Cost:     cost,
			Activity: model.KnownActivity(s.rng.Intn(151)),
		})
	}

	return model.CostReport{
		Records:   records,
		Total:     mtd,
		FetchedAt: s.now(),
	}, nil
}
