package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/dosada05/swiss-tournament-engine/models"
	"github.com/golang-jwt/jwt/v4"
)

// jwtClaimUserID/jwtClaimRole name the claims Authenticate requires.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// GetUserIDFromContext extracts the organizer id claim set by
// Authenticate.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	idClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}
	id, ok := idClaim.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid value for '%s' claim", jwtClaimUserID)
	}
	return id, nil
}

// GetUserRoleFromContext extracts and validates the role claim set by
// Authenticate.
func GetUserRoleFromContext(ctx context.Context) (models.Role, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.Role(roleStr)
	switch role {
	case models.RoleOrganizer, models.RoleSpectator:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
