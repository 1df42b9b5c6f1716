// Package access is the authorization decision point for shared resources.
//
// A user may act on a resource if they own it or if the owner granted them
// a sufficient permission level through an accepted Collaboration. Lookup
// failures never grant access: any error while resolving the resource or
// its grants results in a denial, not in an error surfaced to the caller.
package access

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/planify/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

var (
	ErrPermissionDenied  = errors.New("you do not have permission for this operation")
	ErrUnknownEntityType = errors.New("unknown entity type")
)

// Store resolves resources of one entity type.
type Store interface {
	// Get returns the resource with the given ID.
	Get(id uuid.UUID) (models.OwnedResource, error)

	// ListOwned returns all resources owned by the user, in storage order.
	ListOwned(email string) ([]models.OwnedResource, error)
}

// store is the gorm-backed Store for one model type.
type store[T models.OwnedResource] struct{}

func (store[T]) Get(id uuid.UUID) (models.OwnedResource, error) {
	var resource T
	err := models.DB.Preload(clause.Associations).First(&resource, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (store[T]) ListOwned(email string) ([]models.OwnedResource, error) {
	var resources []T
	err := models.DB.Preload(clause.Associations).Where("created_by = ?", email).Find(&resources).Error
	if err != nil {
		return nil, err
	}

	list := make([]models.OwnedResource, 0, len(resources))
	for _, resource := range resources {
		list = append(list, resource)
	}

	return list, nil
}

// Registry maps entity type tags to their stores. It is resolved once at
// startup, dispatch at request time is a map lookup.
type Registry map[models.EntityType]Store

// NewRegistry returns a Registry covering all shareable entity types.
func NewRegistry() Registry {
	return Registry{
		models.EntityTypeBudget:  store[models.Budget]{},
		models.EntityTypeGoal:    store[models.Goal]{},
		models.EntityTypeExpense: store[models.Expense]{},
		models.EntityTypeIncome:  store[models.Income]{},
	}
}

// CanAccess decides whether the actor may act on the resource with the
// required permission level.
//
// The owner always may, with any level. Anyone else needs an accepted
// Collaboration whose level satisfies the required one. If more than one
// accepted grant exists, the oldest one is authoritative.
//
// An error is only returned for an unresolvable actor or an unknown
// entity type. "Not authorized" and lookup failures both return false,
// the underlying error of a failed lookup is logged.
func (r Registry) CanAccess(actor string, entityType models.EntityType, id uuid.UUID, required models.PermissionLevel) (bool, error) {
	if actor == "" {
		return false, models.ErrAuthentication
	}

	s, ok := r[entityType]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	resource, err := s.Get(id)
	if err != nil {
		// Fail closed, but keep the cause visible for operators
		log.Warn().Err(err).
			Str("entityType", string(entityType)).
			Str("entityId", id.String()).
			Msg("access check could not resolve resource, denying")
		return false, nil
	}

	if resource.Owner() == actor {
		return true, nil
	}

	var grants []models.Collaboration
	err = models.DB.
		Where(&models.Collaboration{
			EntityType:        entityType,
			EntityID:          id,
			CollaboratorEmail: actor,
			Status:            models.CollaborationAccepted,
		}).
		Order("created_at ASC").
		Find(&grants).Error
	if err != nil {
		log.Warn().Err(err).
			Str("entityType", string(entityType)).
			Str("entityId", id.String()).
			Msg("access check could not resolve grants, denying")
		return false, nil
	}

	if len(grants) == 0 {
		return false, nil
	}

	return grants[0].PermissionLevel.Allows(required), nil
}

// SecureOperation runs op if the actor has the required permission on the
// resource. A denial returns ErrPermissionDenied without invoking op.
// Errors of op itself are passed through unchanged.
func (r Registry) SecureOperation(actor string, entityType models.EntityType, id uuid.UUID, required models.PermissionLevel, op func() error) error {
	granted, err := r.CanAccess(actor, entityType, id, required)
	if err != nil {
		return err
	}

	if !granted {
		return ErrPermissionDenied
	}

	return op()
}

// Entry is one resource in a user's entity list.
type Entry struct {
	Resource models.OwnedResource

	// Shared is true when the resource is not owned by the user but
	// shared with them. Permission is only set for shared entries.
	Shared     bool
	Permission models.PermissionLevel
}

// ListUserEntities returns all resources of one entity type the actor can
// see: their own resources first, in storage order, then resources shared
// with them through accepted Collaborations, in invitation order.
//
// A shared resource that can no longer be resolved is dropped silently.
// No de-duplication is performed, a resource that is both owned and
// erroneously shared appears twice.
func (r Registry) ListUserEntities(actor string, entityType models.EntityType) ([]Entry, error) {
	if actor == "" {
		return nil, models.ErrAuthentication
	}

	s, ok := r[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	owned, err := s.ListOwned(actor)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(owned))
	for _, resource := range owned {
		entries = append(entries, Entry{Resource: resource})
	}

	var grants []models.Collaboration
	err = models.DB.
		Where(&models.Collaboration{
			EntityType:        entityType,
			CollaboratorEmail: actor,
			Status:            models.CollaborationAccepted,
		}).
		Order("created_at ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	for _, grant := range grants {
		resource, err := s.Get(grant.EntityID)
		if err != nil {
			// Best effort: the resource may have been deleted since
			log.Debug().Err(err).
				Str("entityType", string(entityType)).
				Str("entityId", grant.EntityID.String()).
				Msg("shared resource not resolvable, dropping from list")
			continue
		}

		entries = append(entries, Entry{
			Resource:   resource,
			Shared:     true,
			Permission: grant.PermissionLevel,
		})
	}

	return entries, nil
}
