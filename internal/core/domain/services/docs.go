// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the delivery system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DeliveryPricer: Quotes delivery fee and estimated time from distance
//   - NotificationRouter: Decides who is told what on each status transition
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
