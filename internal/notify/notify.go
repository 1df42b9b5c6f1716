// Package notify creates user notifications for collaboration and
// spending events.
//
// Delivery is fire and forget: a notification that cannot be stored is
// logged and dropped, it never fails the operation that triggered it.
package notify

import (
	"fmt"

	"github.com/planify/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Send stores a notification for the recipient.
func Send(recipient, title, message string, kind models.NotificationKind, link string) {
	notification := models.Notification{
		UserEmail: recipient,
		Title:     title,
		Message:   message,
		Type:      kind,
		Link:      link,
	}

	err := models.DB.Create(&notification).Error
	if err != nil {
		log.Error().Err(err).
			Str("recipient", recipient).
			Str("kind", string(kind)).
			Msg("could not store notification")
	}
}

// BudgetAlert informs the budget owner about a triggered spending alert.
func BudgetAlert(recipient string, alert models.BudgetAlert) {
	Send(recipient, "Budget alert", alert.Message, models.NotificationAlert, "/budgets")
}

// Invitation informs a user that they have been invited to collaborate.
func Invitation(recipient, inviterName string, entityType models.EntityType, entityName string) {
	message := fmt.Sprintf("%s has invited you to collaborate on the %s %q.", inviterName, entityType, entityName)
	Send(recipient, "Collaboration invitation", message, models.NotificationInvite, "/collaborate")
}

// InvitationAnswered informs the owner that an invitation was resolved.
func InvitationAnswered(recipient, collaboratorEmail string, status models.CollaborationStatus) {
	message := fmt.Sprintf("%s has %s your invitation.", collaboratorEmail, status)
	Send(recipient, "Invitation answered", message, models.NotificationInvite, "/collaborate")
}

// SharedExpense informs a collaborator about their share of a new expense.
func SharedExpense(recipient, paidByName, title string, amount, share decimal.Decimal) {
	message := fmt.Sprintf("%s has added an expense of %s (%s). Your share is %s.", paidByName, amount, title, share)
	Send(recipient, "New shared expense", message, models.NotificationNewExpense, "/expenses")
}

// GoalProgress congratulates a user on reaching a savings milestone.
func GoalProgress(recipient, goalTitle string, milestone int64) {
	message := fmt.Sprintf("You have reached %d%% of your goal %q.", milestone, goalTitle)
	Send(recipient, "Goal progress", message, models.NotificationGoalUpdate, "/goals")
}
