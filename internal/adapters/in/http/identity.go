package http

import (
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Caller identity headers. The API sits behind a gateway that authenticates
// users and forwards their identity; the values are trusted as-is.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// caller is the authenticated identity of the requester.
type caller struct {
	ID   kernel.UUID
	Role order.ActorRole
}

// callerFromRequest reads the identity headers. Both must be present and
// well-formed; the role must be one of the known actor roles.
func callerFromRequest(ctx echo.Context) (caller, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return caller{}, err
	}

	role, err := order.ActorRoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return caller{}, err
	}

	return caller{ID: id, Role: role}, nil
}
