package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income represents money received, either once or recurring.
type Income struct {
	DefaultModel
	Title       string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string
	Date        types.Date
	IsRecurring bool
	Frequency   string
	CreatedBy   string `gorm:"index"`
}

var ErrIncomeAmountNotPositive = errors.New("income amounts must be larger than zero")

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Title = strings.TrimSpace(i.Title)
	i.CreatedBy = strings.ToLower(strings.TrimSpace(i.CreatedBy))

	if !i.Amount.IsPositive() {
		return ErrIncomeAmountNotPositive
	}

	return nil
}

func (i Income) Owner() string {
	return i.CreatedBy
}

func (i Income) ResourceID() uuid.UUID {
	return i.ID
}

func (Income) Entity() EntityType {
	return EntityTypeIncome
}
