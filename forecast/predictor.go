// Package forecast trains a per-category expense forecasting model over
// historical transactions.
package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/store"
)

// numFeatures is day-of-week, day-of-month, month and category code.
const numFeatures = 4

// Predictor fits a linear regression mapping temporal and categorical
// features to transaction amount. The fitted coefficients and the
// category encoding live until the next Train, which overwrites both;
// callers must treat a retrain as invalidating prior predictions.
type Predictor struct {
	store store.TransactionStore

	model    *linearModel
	encoding map[string]int
	score    float64
}

// New creates an untrained Predictor.
func New(s store.TransactionStore) *Predictor {
	return &Predictor{store: s}
}

// Train fits the model over all historical expense transactions and
// returns the R² score for diagnostics. It fails with
// core.ErrInsufficientData when there are fewer than two distinct
// categories or too few rows to fit without degeneracy.
func (p *Predictor) Train(ctx context.Context) (float64, error) {
	txs, err := p.store.List(ctx, core.Expense)
	if err != nil {
		return 0, fmt.Errorf("train: %w", err)
	}

	encoding := encodeCategories(txs)
	if len(encoding) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 categories, have %d", core.ErrInsufficientData, len(encoding))
	}
	if len(txs) <= numFeatures+1 {
		return 0, fmt.Errorf("%w: need more than %d expense transactions, have %d", core.ErrInsufficientData, numFeatures+1, len(txs))
	}

	x := make([][]float64, len(txs))
	y := make([]float64, len(txs))
	for i, tx := range txs {
		x[i] = featureVector(tx.Date, tx.Date.Day(), encoding[tx.Category])
		y[i] = tx.Amount
	}

	model, ok := fitLinear(x, y)
	if !ok {
		return 0, fmt.Errorf("%w: feature matrix is degenerate", core.ErrInsufficientData)
	}

	p.model = model
	p.encoding = encoding
	p.score = model.rSquared(x, y)
	return p.score, nil
}

// Score returns the R² of the last successful Train.
func (p *Predictor) Score() float64 { return p.score }

// PredictNextMonth forecasts next month's spend per category. Each
// trained category gets a single representative prediction for the 15th
// of the month ~30 days out, scaled by its historical average transaction
// count per calendar month. Categories unseen at training time are
// omitted: the model has no signal for them.
func (p *Predictor) PredictNextMonth(ctx context.Context, now time.Time) (map[string]core.CategoryForecast, error) {
	if p.model == nil {
		return nil, core.ErrModelNotTrained
	}

	txs, err := p.store.List(ctx, core.Expense)
	if err != nil {
		return nil, fmt.Errorf("predict next month: %w", err)
	}

	nextMonth := now.AddDate(0, 0, 30)
	perMonth := monthlyCounts(txs)

	out := make(map[string]core.CategoryForecast)
	for cat, txCount := range categoryCounts(txs) {
		code, ok := p.encoding[cat]
		if !ok {
			continue
		}

		features := featureVector(nextMonth, 15, code)
		perTx := p.model.predict(features)

		// Average transactions per observed calendar month; a category
		// too sparse to estimate falls back to one per month.
		avgTx := 1.0
		if months := len(perMonth[cat]); months > 0 {
			avgTx = float64(txCount) / float64(months)
		}

		out[cat] = core.CategoryForecast{
			PerTransaction:        round2(perTx),
			MonthlyTotal:          round2(perTx * avgTx),
			EstimatedTransactions: round2(avgTx),
		}
	}
	return out, nil
}

// CategoryInsights returns descriptive statistics per category. It does
// not depend on the trained model and works before any Train call.
func (p *Predictor) CategoryInsights(ctx context.Context) (map[string]core.CategoryInsight, error) {
	txs, err := p.store.List(ctx, core.Expense)
	if err != nil {
		return nil, fmt.Errorf("category insights: %w", err)
	}

	out := make(map[string]core.CategoryInsight)
	for _, tx := range txs {
		in := out[tx.Category]
		if in.Count == 0 || tx.Amount < in.Min {
			in.Min = tx.Amount
		}
		if tx.Amount > in.Max {
			in.Max = tx.Amount
		}
		in.Total += tx.Amount
		in.Count++
		out[tx.Category] = in
	}
	for cat, in := range out {
		in.Average = round2(in.Total / float64(in.Count))
		in.Min = round2(in.Min)
		in.Max = round2(in.Max)
		in.Total = round2(in.Total)
		out[cat] = in
	}
	return out, nil
}

// encodeCategories maps each category to a stable integer code. Codes
// are assigned in lexical order so retraining on an unchanged category
// set reproduces the same encoding, independent of insertion order.
func encodeCategories(txs []core.Transaction) map[string]int {
	seen := make(map[string]bool)
	for _, tx := range txs {
		seen[tx.Category] = true
	}

	labels := make([]string, 0, len(seen))
	for cat := range seen {
		labels = append(labels, cat)
	}
	sort.Strings(labels)

	encoding := make(map[string]int, len(labels))
	for i, cat := range labels {
		encoding[cat] = i
	}
	return encoding
}

// featureVector builds (day-of-week, day-of-month, month, category).
// Day-of-week counts Monday as 0.
func featureVector(t time.Time, dayOfMonth int, code int) []float64 {
	return []float64{
		float64((int(t.Weekday()) + 6) % 7),
		float64(dayOfMonth),
		float64(int(t.Month())),
		float64(code),
	}
}

// monthlyCounts groups transaction counts by category and calendar month.
func monthlyCounts(txs []core.Transaction) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, tx := range txs {
		month := tx.Date.Format("2006-01")
		if out[tx.Category] == nil {
			out[tx.Category] = make(map[string]int)
		}
		out[tx.Category][month]++
	}
	return out
}

func categoryCounts(txs []core.Transaction) map[string]int {
	out := make(map[string]int)
	for _, tx := range txs {
		out[tx.Category]++
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
