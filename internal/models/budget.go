package models

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget represents a spending plan for one month.
//
// CurrentSpent and the Spent field of every category are caches derived
// from the expense ledger. They are maintained by RecomputeSpending and
// must never be set by hand.
type Budget struct {
	DefaultModel
	Name         string
	Month        types.Month
	TotalAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentSpent decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreatedBy    string          `gorm:"index"`
	Categories   []BudgetCategory
}

// BudgetCategory is one spending line of a budget. Identity within a
// budget is the name, order is the position.
type BudgetCategory struct {
	DefaultModel
	BudgetID uuid.UUID       `gorm:"uniqueIndex:budget_category_name"`
	Name     string          `gorm:"uniqueIndex:budget_category_name"`
	Limit    decimal.Decimal `gorm:"column:spending_limit;type:DECIMAL(20,8)"`
	Spent    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Position uint
}

var (
	ErrBudgetAmountNotPositive     = errors.New("budget amounts must be larger than zero")
	ErrBudgetMonthNotSet           = errors.New("budgets must be assigned to a month")
	ErrBudgetCategoryNameNotUnique = errors.New("category names must be unique within a budget")
)

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.CreatedBy = strings.ToLower(strings.TrimSpace(b.CreatedBy))

	if !b.TotalAmount.IsPositive() {
		return ErrBudgetAmountNotPositive
	}

	if b.Month.IsZero() {
		return ErrBudgetMonthNotSet
	}

	return nil
}

// AfterFind restores the category order. Associations are not guaranteed
// to be loaded in any specific order.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	sort.SliceStable(b.Categories, func(i, j int) bool {
		return b.Categories[i].Position < b.Categories[j].Position
	})

	return b.DefaultModel.AfterFind(tx)
}

func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

func (b Budget) Owner() string {
	return b.CreatedBy
}

func (b Budget) ResourceID() uuid.UUID {
	return b.ID
}

func (Budget) Entity() EntityType {
	return EntityTypeBudget
}
