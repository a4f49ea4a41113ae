package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/manali-mahadik-10/FinAgent/analyzer"
	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/forecast"
)

// maxOverspends caps how many flagged transactions one reply lists.
const maxOverspends = 10

// FinanceTools returns the four built-in analytical tools. None of them
// take parameters from user text and none mutate the transaction store.
func FinanceTools(a *analyzer.Analyzer, p *forecast.Predictor) []core.Tool {
	return []core.Tool{
		NewAnalyzeSpending(a),
		NewDetectUnnecessarySpending(a),
		NewPredictNextMonth(p),
		NewMonthlySummary(a),
	}
}

// NewAnalyzeSpending reports expense totals per category.
func NewAnalyzeSpending(a *analyzer.Analyzer) core.Tool {
	return New("Analyze_Spending").
		Description("Analyze the user's spending patterns by category.").
		Handler(func(ctx context.Context, _ string) (string, error) {
			aggs, err := a.CategorizeSpending(ctx)
			if err != nil {
				return "", err
			}
			if len(aggs) == 0 {
				return "No spending data available yet.", nil
			}

			var sb strings.Builder
			sb.WriteString("📊 **Spending by Category:**\n\n")
			for _, agg := range aggs {
				fmt.Fprintf(&sb, "**%s** → ₹%.2f total (%d txns)\n", agg.Category, agg.Total, agg.Count)
			}
			return sb.String(), nil
		})
}

// NewDetectUnnecessarySpending lists flagged overspends, largest excess
// first.
func NewDetectUnnecessarySpending(a *analyzer.Analyzer) core.Tool {
	return New("Detect_Unnecessary_Spending").
		Description("Find unnecessary or excessive expenses.").
		Handler(func(ctx context.Context, _ string) (string, error) {
			anomalies, err := a.DetectUnnecessarySpending(ctx)
			if err != nil {
				return "", err
			}
			if len(anomalies) == 0 {
				return "✅ No excessive spending detected.", nil
			}

			sort.SliceStable(anomalies, func(i, j int) bool {
				return anomalies[i].Excess > anomalies[j].Excess
			})
			if len(anomalies) > maxOverspends {
				anomalies = anomalies[:maxOverspends]
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "⚠️ Found %d potential overspends:\n", len(anomalies))
			for _, an := range anomalies {
				fmt.Fprintf(&sb, "- %s: %s ₹%.2f (₹%.2f above avg)\n",
					an.Date.Format("2006-01-02"), an.Category, an.Amount, an.Excess)
			}
			return sb.String(), nil
		})
}

// NewPredictNextMonth reports the model's per-category forecast and the
// grand total.
func NewPredictNextMonth(p *forecast.Predictor) core.Tool {
	return New("Predict_Next_Month").
		Description("Predict next month's expenses using the trained model.").
		Handler(func(ctx context.Context, _ string) (string, error) {
			predictions, err := p.PredictNextMonth(ctx, time.Now())
			if err != nil {
				return "", err
			}

			cats := make([]string, 0, len(predictions))
			for cat := range predictions {
				cats = append(cats, cat)
			}
			sort.Strings(cats)

			var sb strings.Builder
			sb.WriteString("🔮 **Next Month Predictions:**\n\n")
			var total float64
			for _, cat := range cats {
				fmt.Fprintf(&sb, "- %s: ₹%.2f\n", cat, predictions[cat].MonthlyTotal)
				total += predictions[cat].MonthlyTotal
			}
			fmt.Fprintf(&sb, "\n**Total Predicted:** ₹%.2f", total)
			return sb.String(), nil
		})
}

// NewMonthlySummary reports income vs expense and savings rate per month.
func NewMonthlySummary(a *analyzer.Analyzer) core.Tool {
	return New("Monthly_Summary").
		Description("Give income vs expense summary and savings rate.").
		Handler(func(ctx context.Context, _ string) (string, error) {
			summary, err := a.MonthlySummary(ctx)
			if err != nil {
				return "", err
			}
			if len(summary) == 0 {
				return "No monthly summary data found.", nil
			}

			var sb strings.Builder
			sb.WriteString("📅 **Monthly Financial Summary:**\n\n")
			for _, row := range summary {
				fmt.Fprintf(&sb, "%s: Income ₹%.2f, Expense ₹%.2f, Savings ₹%.2f (%.1f%%)\n",
					row.Month, row.Income, row.Expense, row.Savings, row.SavingsRate)
			}
			return sb.String(), nil
		})
}
