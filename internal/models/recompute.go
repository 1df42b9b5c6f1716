package models

import (
	"time"

	"github.com/planify/backend/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecomputeCount counts spending recomputations. It is registered with
// the Prometheus default registry by the router.
var RecomputeCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_recompute_total",
		Help: "How many budget spending recomputations ran, partitioned by result.",
	},
	[]string{"result"},
)

// RecomputeSpending recalculates CurrentSpent and the per-category Spent
// caches for every budget the owner has in the given month.
//
// This is a full recompute from the expense ledger, not a delta: a budget's
// scope is all of its owner's expenses dated in its month, regardless of
// any explicit expense to budget reference. Expenses whose category does
// not match a category line count towards the total but are not attributed
// to any line.
//
// Each budget is written in its own transaction. The first write error is
// returned and stops the run, budgets already written stay updated. Two
// concurrent runs for the same owner and month can race; the next run
// converges the caches again.
//
// The updated budgets are returned so callers can evaluate alerts.
func RecomputeSpending(owner string, month types.Month) ([]Budget, error) {
	var budgets []Budget
	err := DB.Preload("Categories").
		Where(&Budget{CreatedBy: owner, Month: month}).
		Find(&budgets).Error
	if err != nil {
		RecomputeCount.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(budgets) == 0 {
		RecomputeCount.WithLabelValues("noop").Inc()
		return nil, nil
	}

	var expenses []Expense
	err = DB.Where(&Expense{CreatedBy: owner}).Find(&expenses).Error
	if err != nil {
		RecomputeCount.WithLabelValues("error").Inc()
		return nil, err
	}

	// Only the expenses dated in the budget month count
	monthly := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		if month.Contains(time.Time(expense.Date)) {
			monthly = append(monthly, expense)
		}
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, expense := range monthly {
		total = total.Add(expense.Amount)
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
	}

	for i := range budgets {
		budget := &budgets[i]

		budget.CurrentSpent = total
		for j := range budget.Categories {
			category := &budget.Categories[j]
			category.Spent = byCategory[category.Name]
		}

		err = DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(budget).Select("CurrentSpent").Updates(budget).Error
			if err != nil {
				return err
			}

			for _, category := range budget.Categories {
				err = tx.Model(&category).Select("Spent").Updates(category).Error
				if err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			RecomputeCount.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	RecomputeCount.WithLabelValues("success").Inc()
	return budgets, nil
}
