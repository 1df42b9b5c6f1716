package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/types"
	"gorm.io/gorm"
)

// EntityType tags the kind of resource a Collaboration refers to.
type EntityType string

const (
	EntityTypeBudget  EntityType = "budget"
	EntityTypeGoal    EntityType = "goal"
	EntityTypeExpense EntityType = "expense"
	EntityTypeIncome  EntityType = "income"
)

// Valid reports whether the tag is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeBudget, EntityTypeGoal, EntityTypeExpense, EntityTypeIncome:
		return true
	}

	return false
}

// PermissionLevel is the capability a Collaboration grants.
// The levels are totally ordered: view < edit < admin.
type PermissionLevel string

const (
	PermissionView  PermissionLevel = "view"
	PermissionEdit  PermissionLevel = "edit"
	PermissionAdmin PermissionLevel = "admin"
)

// rank returns the position of the level in the total order.
// Unknown levels rank below view and therefore never grant anything.
func (p PermissionLevel) rank() int {
	switch p {
	case PermissionView:
		return 1
	case PermissionEdit:
		return 2
	case PermissionAdmin:
		return 3
	}

	return 0
}

// Valid reports whether the level is one of the known permission levels.
func (p PermissionLevel) Valid() bool {
	return p.rank() > 0
}

// Allows reports whether a grant of level p satisfies the required level.
func (p PermissionLevel) Allows(required PermissionLevel) bool {
	return p.rank() >= required.rank()
}

// CollaborationStatus is the lifecycle state of an invitation.
type CollaborationStatus string

const (
	CollaborationPending  CollaborationStatus = "pending"
	CollaborationAccepted CollaborationStatus = "accepted"
	CollaborationRejected CollaborationStatus = "rejected"
)

// Valid reports whether the status is one of the known states.
func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollaborationPending, CollaborationAccepted, CollaborationRejected:
		return true
	}

	return false
}

// Collaboration grants another user a capped, revocable capability on one
// specific resource. It never transfers ownership.
//
// The owner creates it as pending. The invited collaborator resolves it
// to accepted or rejected exactly once. The owner can delete it at any
// time, which revokes the grant terminally.
type Collaboration struct {
	DefaultModel
	EntityType        EntityType `gorm:"index:collaboration_entity"`
	EntityID          uuid.UUID  `gorm:"index:collaboration_entity"`
	OwnerEmail        string
	CollaboratorEmail string `gorm:"index"`
	PermissionLevel   PermissionLevel
	Status            CollaborationStatus
	InvitedDate       types.Date
}

var (
	ErrCollaborationEntityTypeInvalid = errors.New("the entity type of a collaboration must be one of budget, goal, expense or income")
	ErrCollaborationPermissionInvalid = errors.New("the permission level of a collaboration must be one of view, edit or admin")
	ErrCollaborationStatusInvalid     = errors.New("the status of a collaboration must be one of pending, accepted or rejected")
	ErrCollaborationSelf              = errors.New("you can not invite yourself as a collaborator")
	ErrCollaborationExists            = errors.New("there already is a collaboration for this resource and collaborator")
	ErrCollaborationResolved          = errors.New("this invitation has already been answered")
)

func (c *Collaboration) BeforeSave(_ *gorm.DB) error {
	c.OwnerEmail = strings.ToLower(strings.TrimSpace(c.OwnerEmail))
	c.CollaboratorEmail = strings.ToLower(strings.TrimSpace(c.CollaboratorEmail))

	if !c.EntityType.Valid() {
		return ErrCollaborationEntityTypeInvalid
	}

	if !c.PermissionLevel.Valid() {
		return ErrCollaborationPermissionInvalid
	}

	if !c.Status.Valid() {
		return ErrCollaborationStatusInvalid
	}

	return nil
}

// BeforeCreate rejects duplicate invitations. Only one open or accepted
// grant per resource and collaborator may exist at a time, a rejected or
// revoked one does not block a new invitation.
func (c *Collaboration) BeforeCreate(tx *gorm.DB) error {
	err := c.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if c.OwnerEmail == strings.ToLower(strings.TrimSpace(c.CollaboratorEmail)) {
		return ErrCollaborationSelf
	}

	var count int64
	err = tx.Model(&Collaboration{}).
		Where("entity_type = ? AND entity_id = ? AND collaborator_email = ? AND status IN ?",
			c.EntityType, c.EntityID, strings.ToLower(strings.TrimSpace(c.CollaboratorEmail)),
			[]CollaborationStatus{CollaborationPending, CollaborationAccepted}).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCollaborationExists
	}

	return nil
}
