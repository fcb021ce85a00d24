// Package driver provides domain entities and business logic for delivery
// driver management. It implements the Driver aggregate root with availability
// tracking and position updates.
//
// Key business rules:
//   - Drivers must have a valid unique identifier, name and phone number
//   - Only available drivers are notified when orders become ready
//   - Availability is toggled off while a driver is carrying an order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package driver
