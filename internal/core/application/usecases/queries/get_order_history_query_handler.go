package queries

import (
	"context"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's status transition ledger from
// the database.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the order's transitions oldest first.
// Returns an error wrapping errs.ErrObjectNotFound when the order does not
// exist; an existing order with no recorded transitions yields an empty
// slice.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	trail := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			changed_by,
			changed_by_id,
			note,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry       GetOrderHistoryQueryResponse
			changedByID *uuid.UUID
			createdAt   time.Time
		)

		err = rows.Scan(
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&changedByID,
			&entry.Note,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if changedByID != nil {
			actorID, idErr := kernel.UUIDFromBytes(changedByID[:])
			if idErr != nil {
				return nil, idErr
			}
			entry.ChangedByID = &actorID
		}

		entry.CreatedAt = createdAt
		trail = append(trail, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trail, nil
}
