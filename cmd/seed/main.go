// Seeds the transaction database with ~90 days of demo data so the
// analytical tools have something to chew on.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/manali-mahadik-10/FinAgent/core"
	"github.com/manali-mahadik-10/FinAgent/store"
)

type amountRange struct {
	min, max float64
}

var expenseCategories = map[string]amountRange{
	"Food & Dining":     {200, 800},
	"Transportation":    {100, 500},
	"Shopping":          {300, 1500},
	"Entertainment":     {200, 1000},
	"Bills & Utilities": {500, 2000},
	"Healthcare":        {200, 1000},
	"Education":         {500, 2000},
	"Groceries":         {1000, 3000},
}

func main() {
	dbPath := flag.String("db", "finance.db", "transaction database path")
	days := flag.Int("days", 90, "days of history to generate")
	flag.Parse()

	s, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	categories := make([]string, 0, len(expenseCategories))
	for cat := range expenseCategories {
		categories = append(categories, cat)
	}

	ctx := context.Background()
	start := time.Now().AddDate(0, 0, -*days)
	count := 0

	log.Println("🔄 Generating sample transactions...")

	for day := 0; day < *days; day++ {
		date := start.AddDate(0, 0, day)

		// 2-5 expenses per day
		for i := 0; i < 2+rand.Intn(4); i++ {
			cat := categories[rand.Intn(len(categories))]
			r := expenseCategories[cat]
			amount := r.min + rand.Float64()*(r.max-r.min)

			_, err := s.Append(ctx, core.Transaction{
				Date:        date,
				Category:    cat,
				Amount:      float64(int(amount*100)) / 100,
				Description: fmt.Sprintf("%s expense", cat),
				Kind:        core.Expense,
			})
			if err != nil {
				log.Fatal(err)
			}
			count++
		}

		// Salary on the 1st, occasional freelance income on the 15th.
		switch date.Day() {
		case 1:
			if _, err := s.Append(ctx, core.Transaction{
				Date:        date,
				Category:    "Salary",
				Amount:      50000,
				Description: "Monthly salary",
				Kind:        core.Income,
			}); err != nil {
				log.Fatal(err)
			}
			count++
		case 15:
			if rand.Float64() > 0.5 {
				if _, err := s.Append(ctx, core.Transaction{
					Date:        date,
					Category:    "Freelance",
					Amount:      float64(5000 + rand.Intn(10000)),
					Description: "Freelance project payment",
					Kind:        core.Income,
				}); err != nil {
					log.Fatal(err)
				}
				count++
			}
		}
	}

	log.Printf("✅ Generated %d transactions in %s", count, *dbPath)
}
