// Package awsbill fetches month-to-date cost data from AWS Cost Explorer
// and best-effort service activity counts from CloudTrail. Credential
// resolution is delegated entirely to the SDK default chain.
package awsbill

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/akshayareddy2629/BillWatch/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cttypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

const (
	costMetric     = "UnblendedCost"
	activityWindow = 24 * time.Hour
	// CloudTrail LookupEvents is heavily rate limited; cap results per
	// service and only enrich the services the widget will show.
	activityMaxResults = 50
	activityLimit      = 10
)

// trailAPI is the slice of the CloudTrail client that activity lookups use.
type trailAPI interface {
	LookupEvents(ctx context.Context, in *cloudtrail.LookupEventsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.LookupEventsOutput, error)
}

// Client fetches live billing data for one AWS account.
type Client struct {
	ce  *costexplorer.Client
	ct  trailAPI
	now func() time.Time
}

// NewClient builds a client from the default AWS config chain (env vars,
// shared config, instance role).
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	return &Client{
		ce:  costexplorer.NewFromConfig(cfg),
		ct:  cloudtrail.NewFromConfig(cfg),
		now: time.Now,
	}, nil
}

// Fetch returns the raw month-to-date cost report: one record per service
// plus the account-wide total. Activity enrichment is best-effort; when the
// CloudTrail lookup fails the records carry unknown (nil) activity and the
// fetch still succeeds.
func (c *Client) Fetch(ctx context.Context) (model.CostReport, error) {
	today := c.now()
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	// Cost Explorer uses an exclusive end date, so always query through
	// tomorrow to include today's accrual.
	end := today.AddDate(0, 0, 1)

	out, err := c.ce.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
	})
	if err != nil {
		return model.CostReport{}, classify("get cost and usage", err)
	}

	var (
		records []model.CostRecord
		total   float64
	)
	for _, result := range out.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics[costMetric]
			if !ok || metric.Amount == nil {
				continue
			}
			cost, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				return model.CostReport{}, fmt.Errorf("awsbill: parse cost amount %q: %w",
					aws.ToString(metric.Amount), err)
			}
			records = append(records, model.CostRecord{
				Service: group.Keys[0],
				Cost:    cost,
			})
			total += cost
		}
	}

	c.enrichActivity(ctx, records)

	return model.CostReport{
		Records:   records,
		Total:     total,
		FetchedAt: c.now(),
	}, nil
}

// enrichActivity fills in activity counts for the top-cost records.
// Records it does not look up, and all records when the lookup fails,
// keep a nil (unknown) activity marker.
func (c *Client) enrichActivity(ctx context.Context, records []model.CostRecord) {
	if len(records) == 0 {
		return
	}

	ranked := make([]*model.CostRecord, len(records))
	for i := range records {
		ranked[i] = &records[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Cost > ranked[j].Cost
	})
	if len(ranked) > activityLimit {
		ranked = ranked[:activityLimit]
	}

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Service
	}

	activity, err := c.FetchActivity(ctx, names)
	if err != nil {
		return
	}
	for _, r := range ranked {
		if n, ok := activity[r.Service]; ok {
			r.Activity = model.KnownActivity(n)
		}
	}
}

// FetchActivity returns CloudTrail event counts per service over the last
// 24 hours. A service whose lookup fails is omitted from the map so its
// record keeps the unknown marker; 0 is reserved for a successful lookup
// that found no events. The whole call fails only when every lookup
// failed, meaning CloudTrail itself is unreachable.
func (c *Client) FetchActivity(ctx context.Context, services []string) (map[string]int, error) {
	end := c.now()
	start := end.Add(-activityWindow)

	activity := make(map[string]int, len(services))
	var lastErr error
	failures := 0

	for _, service := range services {
		out, err := c.ct.LookupEvents(ctx, &cloudtrail.LookupEventsInput{
			LookupAttributes: []cttypes.LookupAttribute{{
				AttributeKey:   cttypes.LookupAttributeKeyEventSource,
				AttributeValue: aws.String(eventSourceFor(service)),
			}},
			StartTime:  aws.Time(start),
			EndTime:    aws.Time(end),
			MaxResults: aws.Int32(activityMaxResults),
		})
		if err != nil {
			failures++
			lastErr = err
			continue
		}
		activity[service] = len(out.Events)
	}

	// All lookups failing means the activity source is down, not
	// individual-service noise.
	if len(services) > 0 && failures == len(services) {
		return nil, classify("lookup events", lastErr)
	}

	return activity, nil
}
