package commands

import (
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/errs"
)

// authorizeVendorAction permits the order's own vendor and platform admins.
func authorizeVendorAction(o *order.Order, role order.ActorRole, actorID kernel.UUID, action string) error {
	switch role {
	case order.RoleAdmin:
		return nil
	case order.RoleVendor:
		if o.Vendor().IsEqual(actorID) {
			return nil
		}
	default:
	}

	return errs.NewForbiddenError(role.String(), action)
}

// authorizeCancelAction permits the order's customer, its vendor and
// platform admins.
func authorizeCancelAction(o *order.Order, role order.ActorRole, actorID kernel.UUID, action string) error {
	switch role {
	case order.RoleAdmin:
		return nil
	case order.RoleCustomer:
		if o.Customer().IsEqual(actorID) {
			return nil
		}
	case order.RoleVendor:
		if o.Vendor().IsEqual(actorID) {
			return nil
		}
	default:
	}

	return errs.NewForbiddenError(role.String(), action)
}

// authorizeAssignedDriver permits only the driver attached to the order.
func authorizeAssignedDriver(o *order.Order, role order.ActorRole, actorID kernel.UUID, action string) error {
	if role == order.RoleDriver && o.Driver() != nil && o.Driver().IsEqual(actorID) {
		return nil
	}

	return errs.NewForbiddenError(role.String(), action)
}
