// Package order provides domain entities and business logic for order
// lifecycle management in the food delivery system. It implements the Order
// aggregate root with a status state machine, transition auditing and
// transition events for notification fan-out.
//
// The package includes:
//   - Order: The aggregate root managing identity, pricing, parties and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - PaymentStatus: Payment state carried independently of delivery state
//   - ActorRole: Attribution of every transition to the role that caused it
//   - StatusHistory: The persisted audit record, one row per transition
//   - TransitionEvent: In-memory event drained after commit for notifications
//
// Key business rules:
//   - Orders walk pending -> confirmed -> preparing -> ready -> picked_up ->
//     in_transit -> delivered; pending orders may instead be cancelled
//   - Every transition is recorded exactly once in the status history
//   - The delivery estimate is fixed at confirmation and never recalculated
//   - A driver is attached exactly once, at pickup; the repository's
//     conditional update decides the winner among concurrent claims
//   - The first driver location update after pickup implicitly moves the
//     order to in_transit; later updates only refresh the position
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
