// Package policy centralizes role-based authorization. Every route makes
// its allow/deny decision through Evaluate so the rules cannot drift
// between endpoints.
package policy

import (
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// Action is something a principal can attempt.
type Action string

const (
	ActionManageResources       Action = "resources:manage"
	ActionEditResource          Action = "resource:edit"
	ActionRate                  Action = "engagement:rate"
	ActionFavorite              Action = "engagement:favorite"
	ActionWriteReview           Action = "review:write"
	ActionTriageRecommendations Action = "recommendations:triage"
	ActionViewAnalytics         Action = "analytics:view"
	ActionBatchGeocode          Action = "geocode:batch"
	ActionManageUsers           Action = "users:manage"
)

// Principal is the authenticated subject extracted from the session.
type Principal struct {
	UserID            string
	Role              entities.Role
	ManagedResourceID string
}

// Evaluate returns nil when the principal may perform the action, an
// Unauthorized error when there is no principal, and a Forbidden error
// otherwise. targetResourceID is only consulted for ActionEditResource.
func Evaluate(p *Principal, action Action, targetResourceID string) error {
	if p == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}

	switch action {
	case ActionRate, ActionFavorite, ActionWriteReview:
		// Any authenticated account.
		return nil

	case ActionManageResources, ActionTriageRecommendations, ActionManageUsers:
		if p.Role == entities.RoleAdmin {
			return nil
		}

	case ActionViewAnalytics, ActionBatchGeocode:
		if p.Role == entities.RoleAdmin || p.Role == entities.RoleBusinessRep {
			return nil
		}

	case ActionEditResource:
		if p.Role == entities.RoleAdmin {
			return nil
		}
		if p.Role == entities.RoleBusinessRep && p.ManagedResourceID != "" && p.ManagedResourceID == targetResourceID {
			return nil
		}
	}

	return apperrors.NewForbiddenError("insufficient permissions")
}
