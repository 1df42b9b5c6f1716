package models

import (
	"strings"

	"gorm.io/gorm"
)

// NotificationKind classifies what a notification is about.
type NotificationKind string

const (
	NotificationAlert      NotificationKind = "alert"
	NotificationInvite     NotificationKind = "invite"
	NotificationNewExpense NotificationKind = "new_expense"
	NotificationGoalUpdate NotificationKind = "goal_update"
)

// Notification is an informational message for one user. It is a side
// effect of collaboration and spending events, nothing in the core logic
// reads it back.
type Notification struct {
	DefaultModel
	UserEmail string `gorm:"index"`
	Title     string
	Message   string
	Type      NotificationKind
	Link      string
	IsRead    bool
}

func (n *Notification) BeforeSave(_ *gorm.DB) error {
	n.UserEmail = strings.ToLower(strings.TrimSpace(n.UserEmail))
	return nil
}
