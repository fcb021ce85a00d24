package order

import (
	"fmt"

	"yumexpress/internal/pkg/errs"
)

// ActorRole identifies who initiated a status transition. Every lifecycle
// change is attributed to exactly one role, and authorization checks in the
// application layer are keyed on it.
type ActorRole int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown ActorRole = iota

	// RoleCustomer is the person who placed the order.
	RoleCustomer

	// RoleVendor is the restaurant preparing the order.
	RoleVendor

	// RoleDriver is the courier delivering the order.
	RoleDriver

	// RoleAdmin is an operator acting on behalf of the platform.
	RoleAdmin

	// RoleSystem marks transitions performed by background jobs,
	// such as stale order cancellation.
	RoleSystem
)

func getActorRoleStrings() map[ActorRole]string {
	return map[ActorRole]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

func getValidActorRoleStrings() map[ActorRole]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[ActorRole]string{
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

// ActorRoleFromString parses a role name, typically taken from a request
// header or a persisted history row.
func ActorRoleFromString(value string) (ActorRole, error) {
	for role, str := range getValidActorRoleStrings() {
		if str == value {
			return role, nil
		}
	}

	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("actor role",
		fmt.Errorf("%q is not a valid actor role", value))
}

// Validate checks if the ActorRole value is valid.
func (r ActorRole) Validate() error {
	if _, ok := getValidActorRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("actor role is invalid",
			fmt.Errorf("%d is not a valid actor role", r))
	}
	return nil
}

// String returns the lowercase name of the role.
// This method implements the fmt.Stringer interface.
func (r ActorRole) String() string {
	if str, ok := getActorRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
