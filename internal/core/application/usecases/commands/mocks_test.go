package commands_test

import (
	"context"
	"testing"
	"time"

	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/core/domain/model/driver"
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReadyUnclaimed(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ClaimForDriver(
	ctx context.Context,
	orderID, driverID kernel.UUID,
	pickedUpAt time.Time,
) error {
	args := m.Called(ctx, orderID, driverID, pickedUpAt)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendHistory(ctx context.Context, record order.StatusHistory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusHistory), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, event order.TransitionEvent) {
	m.Called(ctx, event)
}

// restoreOrder builds a paid order in the given status for handler tests.
// A driver is attached automatically for the statuses that require one.
func restoreOrder(t *testing.T, status order.Status, driverID *kernel.UUID) *order.Order {
	t.Helper()
	return restoreOrderWithPayment(t, status, driverID, order.PaymentPaid)
}

// restoreOrderWithPayment is restoreOrder with an explicit payment status,
// for the sweeps and gates that depend on unpaid orders.
func restoreOrderWithPayment(
	t *testing.T,
	status order.Status,
	driverID *kernel.UUID,
	paymentStatus order.PaymentStatus,
) *order.Order {
	t.Helper()

	subtotal, err := kernel.NewMoney(decimal.NewFromInt(15000), "TSH")
	require.NoError(t, err)
	fee, err := kernel.NewMoney(decimal.NewFromInt(5000), "TSH")
	require.NoError(t, err)
	vendorLocation, err := kernel.NewGeoPoint(-6.7924, 39.2083)
	require.NoError(t, err)
	deliveryLocation, err := kernel.NewGeoPoint(-6.8160, 39.2803)
	require.NoError(t, err)

	var pickedUpAt *time.Time
	if driverID != nil {
		at := time.Now().UTC().Add(-10 * time.Minute)
		pickedUpAt = &at
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(),
		"K7G2XQ9D",
		kernel.NewUUID(),
		kernel.NewUUID(),
		driverID,
		subtotal,
		fee,
		vendorLocation,
		deliveryLocation,
		"12 Uhuru Street, Dar es Salaam",
		nil,
		status,
		paymentStatus,
		paymentRef(paymentStatus),
		time.Now().UTC().Add(-time.Hour),
		nil,
		pickedUpAt,
		nil,
		nil,
	)
	require.NoError(t, err)
	return aggregate
}

func paymentRef(status order.PaymentStatus) string {
	if status == order.PaymentUnpaid {
		return ""
	}
	return "MPESA-1234"
}
