// Package analyzer provides read-side spending analytics over the
// transaction store. Every call re-reads the store, so results always
// reflect the latest persisted state.
package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/store"
)

const (
	// DefaultThreshold is the stddev multiplier above the category mean
	// at which a transaction counts as excessive.
	DefaultThreshold = 1.5

	// DefaultMinSamples is the smallest category for which anomaly
	// detection is meaningful. A single outlier in a sparse category
	// says nothing.
	DefaultMinSamples = 3
)

// Analyzer computes spending analytics. It holds no transaction state.
type Analyzer struct {
	store store.TransactionStore

	// Threshold is the anomaly multiplier k in mean + k*stddev.
	Threshold float64

	// MinSamples is the minimum category size for anomaly detection.
	MinSamples int
}

// New creates an Analyzer with the default anomaly tuning.
func New(s store.TransactionStore) *Analyzer {
	return &Analyzer{
		store:      s,
		Threshold:  DefaultThreshold,
		MinSamples: DefaultMinSamples,
	}
}

// CategorizeSpending aggregates expense transactions per category,
// ordered by category label. An empty store yields an empty result, not
// an error.
func (a *Analyzer) CategorizeSpending(ctx context.Context) ([]core.CategoryAggregate, error) {
	txs, err := a.store.List(ctx, core.Expense)
	if err != nil {
		return nil, fmt.Errorf("categorize spending: %w", err)
	}

	byCategory := make(map[string]*core.CategoryAggregate)
	for _, tx := range txs {
		agg, ok := byCategory[tx.Category]
		if !ok {
			agg = &core.CategoryAggregate{Category: tx.Category}
			byCategory[tx.Category] = agg
		}
		agg.Total += tx.Amount
		agg.Count++
	}

	out := make([]core.CategoryAggregate, 0, len(byCategory))
	for _, agg := range byCategory {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// DetectUnnecessarySpending flags transactions whose amount exceeds
// mean + Threshold*stddev within their category. Categories with fewer
// than MinSamples transactions are skipped, as are categories where every
// amount is identical (zero stddev). Results are in date order; callers
// wanting a ranking sort by Excess themselves.
func (a *Analyzer) DetectUnnecessarySpending(ctx context.Context) ([]core.AnomalyRecord, error) {
	txs, err := a.store.List(ctx, core.Expense)
	if err != nil {
		return nil, fmt.Errorf("detect unnecessary spending: %w", err)
	}

	byCategory := make(map[string][]core.Transaction)
	for _, tx := range txs {
		byCategory[tx.Category] = append(byCategory[tx.Category], tx)
	}

	cutoff := make(map[string]float64)
	mean := make(map[string]float64)
	for cat, catTxs := range byCategory {
		if len(catTxs) < a.MinSamples {
			continue
		}
		m, sd := meanStddev(catTxs)
		if sd == 0 {
			continue
		}
		cutoff[cat] = m + a.Threshold*sd
		mean[cat] = m
	}

	var anomalies []core.AnomalyRecord
	for _, tx := range txs {
		limit, ok := cutoff[tx.Category]
		if !ok || tx.Amount <= limit {
			continue
		}
		anomalies = append(anomalies, core.AnomalyRecord{
			Date:     tx.Date,
			Category: tx.Category,
			Amount:   tx.Amount,
			Excess:   tx.Amount - mean[tx.Category],
		})
	}
	return anomalies, nil
}

// MonthlySummary reports income, expense, savings and savings rate per
// calendar month, chronologically. Months with only one kind of
// transaction still produce a row.
func (a *Analyzer) MonthlySummary(ctx context.Context) ([]core.MonthlySummary, error) {
	txs, err := a.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}

	byMonth := make(map[string]*core.MonthlySummary)
	for _, tx := range txs {
		month := tx.Date.Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &core.MonthlySummary{Month: month}
			byMonth[month] = row
		}
		switch tx.Kind {
		case core.Income:
			row.Income += tx.Amount
		case core.Expense:
			row.Expense += tx.Amount
		}
	}

	out := make([]core.MonthlySummary, 0, len(byMonth))
	for _, row := range byMonth {
		row.Savings = row.Income - row.Expense
		if row.Income > 0 {
			row.SavingsRate = row.Savings / row.Income * 100
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// meanStddev returns the mean and population standard deviation of the
// transaction amounts.
func meanStddev(txs []core.Transaction) (float64, float64) {
	var sum float64
	for _, tx := range txs {
		sum += tx.Amount
	}
	mean := sum / float64(len(txs))

	var sq float64
	for _, tx := range txs {
		d := tx.Amount - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(txs)))
}
