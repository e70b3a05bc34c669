package dashboard

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"utilitycompare-backend/internal/bills"
)

// ErrInvalidInput indicates missing request parameters.
var ErrInvalidInput = errors.New("invalid input")

// MonthlySpend is one month's total for a utility category.
type MonthlySpend struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Stats summarizes a series of monthly amounts.
type Stats struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
}

// CategorySummary is one utility category's series and stats.
type CategorySummary struct {
	UtilityType string         `json:"utilityType"`
	Monthly     []MonthlySpend `json:"monthly"`
	Stats       Stats          `json:"stats"`
	BillCount   int            `json:"billCount"`
}

// Summary aggregates a user's processed bills for the dashboard.
type Summary struct {
	Categories []CategorySummary `json:"categories"`
	Combined   []MonthlySpend    `json:"combined"`
	TotalSpend float64           `json:"totalSpend"`
}

// Service computes spending aggregates from stored bill records.
type Service struct {
	Repo bills.Repo
}

// NewService constructs a Service.
func NewService(repo bills.Repo) *Service {
	return &Service{Repo: repo}
}

// Summarize walks every page of the user's bills and rolls them up by
// category and month. Bills whose extraction produced no total amount
// count toward BillCount but contribute nothing to the series.
func (s *Service) Summarize(ctx context.Context, ownerID string) (Summary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Summary{}, ErrInvalidInput
	}

	records, err := s.allBills(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	type bucketKey struct {
		category string
		month    string
	}
	byBucket := make(map[bucketKey]float64)
	counts := make(map[string]int)

	for _, record := range records {
		category := record.UtilityCategory
		counts[category]++

		amount := record.ExtractedData.Costs.TotalAmount
		if amount == nil {
			continue
		}
		month := billMonth(record)
		if month == "" {
			continue
		}
		byBucket[bucketKey{category, month}] += *amount
	}

	combined := make(map[string]float64)
	var summary Summary
	for category, count := range counts {
		cat := CategorySummary{UtilityType: category, BillCount: count}
		for key, amount := range byBucket {
			if key.category != category {
				continue
			}
			cat.Monthly = append(cat.Monthly, MonthlySpend{Month: key.month, Amount: round2(amount)})
			combined[key.month] += amount
		}
		sort.Slice(cat.Monthly, func(i, j int) bool { return cat.Monthly[i].Month < cat.Monthly[j].Month })
		cat.Stats = calculateStats(cat.Monthly)
		summary.Categories = append(summary.Categories, cat)
		summary.TotalSpend += cat.Stats.Total
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].UtilityType < summary.Categories[j].UtilityType
	})

	for month, amount := range combined {
		summary.Combined = append(summary.Combined, MonthlySpend{Month: month, Amount: round2(amount)})
	}
	sort.Slice(summary.Combined, func(i, j int) bool { return summary.Combined[i].Month < summary.Combined[j].Month })

	summary.TotalSpend = round2(summary.TotalSpend)
	return summary, nil
}

func (s *Service) allBills(ctx context.Context, ownerID string) ([]bills.Record, error) {
	var all []bills.Record
	token := ""
	for {
		page, err := s.Repo.List(ctx, ownerID, bills.ListOptions{PageToken: token})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Bills...)
		if page.NextPageToken == "" {
			return all, nil
		}
		token = page.NextPageToken
	}
}

// billMonth prefers the bill's own date over the upload timestamp.
func billMonth(record bills.Record) string {
	if d := record.ExtractedData.BillDate; d != nil {
		if t, err := time.Parse("2006-01-02", *d); err == nil {
			return t.Format("2006-01")
		}
	}
	if t, err := time.Parse(time.RFC3339, record.UploadTimestamp); err == nil {
		return t.Format("2006-01")
	}
	return ""
}

func calculateStats(monthly []MonthlySpend) Stats {
	if len(monthly) == 0 {
		return Stats{}
	}
	stats := Stats{Min: math.MaxFloat64}
	for _, m := range monthly {
		stats.Total += m.Amount
		if m.Amount < stats.Min {
			stats.Min = m.Amount
		}
		if m.Amount > stats.Max {
			stats.Max = m.Amount
		}
	}
	stats.Avg = round2(stats.Total / float64(len(monthly)))
	stats.Total = round2(stats.Total)
	stats.Min = round2(stats.Min)
	stats.Max = round2(stats.Max)
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
