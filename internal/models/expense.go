package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single spent amount.
//
// An expense can optionally reference a budget or a goal, but budget
// aggregation ignores these references: a budget sums all expenses of
// its owner dated in its month.
type Expense struct {
	DefaultModel
	Title     string
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category  string
	Date      types.Date
	BudgetID  *uuid.UUID
	GoalID    *uuid.UUID
	CreatedBy string `gorm:"index"`
	PaidBy    string
	SharedWith []ExpenseShare
}

// ExpenseShare is the part of a shared expense that one collaborator
// owes. Shares are equal splits between the payer and all collaborators.
type ExpenseShare struct {
	DefaultModel
	ExpenseID uuid.UUID `gorm:"index"`
	Email     string
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")
	ErrExpenseDateNotSet        = errors.New("expenses must have a date")
)

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)
	e.CreatedBy = strings.ToLower(strings.TrimSpace(e.CreatedBy))
	e.PaidBy = strings.ToLower(strings.TrimSpace(e.PaidBy))

	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if e.Date.IsZero() {
		return ErrExpenseDateNotSet
	}

	return nil
}

func (s *ExpenseShare) BeforeSave(_ *gorm.DB) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return nil
}

// SplitEqually divides an amount between the payer and the given
// collaborators. Every participant pays the same share, the returned
// shares cover the collaborators only.
func SplitEqually(amount decimal.Decimal, emails []string) []ExpenseShare {
	if len(emails) == 0 {
		return nil
	}

	share := amount.Div(decimal.NewFromInt(int64(len(emails) + 1)))

	shares := make([]ExpenseShare, 0, len(emails))
	for _, email := range emails {
		shares = append(shares, ExpenseShare{Email: email, Amount: share})
	}

	return shares
}

func (e Expense) Owner() string {
	return e.CreatedBy
}

func (e Expense) ResourceID() uuid.UUID {
	return e.ID
}

func (Expense) Entity() EntityType {
	return EntityTypeExpense
}
