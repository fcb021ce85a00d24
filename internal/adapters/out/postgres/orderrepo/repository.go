package orderrepo

import (
	"context"
	"errors"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. Ledger entries accumulated by a
// freshly created aggregate are persisted separately via AppendHistory.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Only the order row is
// written; ledger rows are immutable and go through AppendHistory.
//
// The write is fenced on the status the aggregate transitioned from, so two
// callers racing on the same order cannot both commit: the slower one
// matches zero rows and is told which edge is no longer valid.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedStatus := dto.Status
	if pending := aggregate.PendingEvents(); len(pending) > 0 {
		expectedStatus = pending[0].From.String()
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current OrderDTO
		err := r.db.WithContext(ctx).
			Select("status").
			First(&current, "id = ?", dto.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("order", aggregate.ID().String())
			}
			return err
		}
		return errs.NewInvalidTransitionError(current.Status, dto.Status)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var historyDTOs []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&historyDTOs, "order_id = ?", id.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// GetAllReadyUnclaimed retrieves every ready order with no driver attached,
// oldest first. The aggregates are restored without their history trails.
func (r *GormOrderRepository) GetAllReadyUnclaimed(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ? AND driver_id IS NULL", order.Ready.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetAllStalePending retrieves pending orders created before the cutoff,
// oldest first. The aggregates are restored without their history trails.
func (r *GormOrderRepository) GetAllStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ? AND created_at < ?", order.Pending.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ClaimForDriver attaches a driver to a ready, unclaimed order with a single
// conditional update. The WHERE clause is the whole race arbiter: of any
// number of concurrent claimers exactly one matches the row, every other
// update affects zero rows and gets told why.
func (r *GormOrderRepository) ClaimForDriver(
	ctx context.Context,
	orderID kernel.UUID,
	driverID kernel.UUID,
	pickedUpAt time.Time,
) error {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID.Bytes(), order.Ready.String()).
		Updates(map[string]any{
			"driver_id":    driverID.Bytes(),
			"status":       order.PickedUp.String(),
			"picked_up_at": pickedUpAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	// Lost the race or wrong state; reread to report which.
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Select("status", "driver_id").
		First(&dto, "id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		return err
	}

	if dto.DriverID != nil {
		return errs.NewAlreadyClaimedError(orderID.String())
	}

	return errs.NewInvalidTransitionError(dto.Status, order.PickedUp.String())
}

// AppendHistory persists one ledger entry. Entries are insert-only.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, record order.StatusHistory) error {
	dto := historyFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHistory retrieves the ledger of an order, oldest first.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistory, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusHistory, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return history, nil
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto, nil)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
