package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal represents a savings goal.
//
// CurrentAmount is only changed by explicit edits, it is not derived
// from the expense ledger.
type Goal struct {
	DefaultModel
	Title         string
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Deadline      types.Date
	Category      string
	CreatedBy     string `gorm:"index"`
}

var ErrGoalAmountNotPositive = errors.New("goal amounts must be larger than zero")

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Title = strings.TrimSpace(g.Title)
	g.CreatedBy = strings.ToLower(strings.TrimSpace(g.CreatedBy))

	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	return nil
}

// Progress returns how much of the target has been saved, in percent.
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}

	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
}

func (g Goal) Owner() string {
	return g.CreatedBy
}

func (g Goal) ResourceID() uuid.UUID {
	return g.ID
}

func (Goal) Entity() EntityType {
	return EntityTypeGoal
}
