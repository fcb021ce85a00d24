package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/core/application/usecases/queries"
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAcceptOrderHandler struct{ mock.Mock }

func (m *MockAcceptOrderHandler) Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockRejectOrderHandler struct{ mock.Mock }

func (m *MockRejectOrderHandler) Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStartPreparingHandler struct{ mock.Mock }

func (m *MockStartPreparingHandler) Handle(ctx context.Context, cmd commands.StartPreparingCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockMarkReadyHandler struct{ mock.Mock }

func (m *MockMarkReadyHandler) Handle(ctx context.Context, cmd commands.MarkReadyCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockClaimOrderHandler struct{ mock.Mock }

func (m *MockClaimOrderHandler) Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUpdateLocationHandler struct{ mock.Mock }

func (m *MockUpdateLocationHandler) Handle(ctx context.Context, cmd commands.UpdateLocationCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockMarkDeliveredHandler struct{ mock.Mock }

func (m *MockMarkDeliveredHandler) Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetAvailableOrdersHandler struct{ mock.Mock }

func (m *MockGetAvailableOrdersHandler) Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAvailableOrdersQueryResponse), args.Error(1)
}

type MockGetOrderHistoryHandler struct{ mock.Mock }

func (m *MockGetOrderHistoryHandler) Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.GetOrderHistoryQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetOrderHistoryQueryResponse), args.Error(1)
}

type MockPreviewDeliveryFeeHandler struct{ mock.Mock }

func (m *MockPreviewDeliveryFeeHandler) Handle(ctx context.Context, query queries.PreviewDeliveryFeeQuery) (queries.PreviewDeliveryFeeQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.PreviewDeliveryFeeQueryResponse), args.Error(1)
}

type serverMocks struct {
	acceptOrder     *MockAcceptOrderHandler
	rejectOrder     *MockRejectOrderHandler
	startPreparing  *MockStartPreparingHandler
	markReady       *MockMarkReadyHandler
	claimOrder      *MockClaimOrderHandler
	updateLocation  *MockUpdateLocationHandler
	markDelivered   *MockMarkDeliveredHandler
	availableOrders *MockGetAvailableOrdersHandler
	orderHistory    *MockGetOrderHistoryHandler
	previewDelivery *MockPreviewDeliveryFeeHandler
}

func newTestServer() (*Server, *serverMocks) {
	mocks := &serverMocks{
		acceptOrder:     &MockAcceptOrderHandler{},
		rejectOrder:     &MockRejectOrderHandler{},
		startPreparing:  &MockStartPreparingHandler{},
		markReady:       &MockMarkReadyHandler{},
		claimOrder:      &MockClaimOrderHandler{},
		updateLocation:  &MockUpdateLocationHandler{},
		markDelivered:   &MockMarkDeliveredHandler{},
		availableOrders: &MockGetAvailableOrdersHandler{},
		orderHistory:    &MockGetOrderHistoryHandler{},
		previewDelivery: &MockPreviewDeliveryFeeHandler{},
	}

	server := NewServer(
		mocks.acceptOrder,
		mocks.rejectOrder,
		mocks.startPreparing,
		mocks.markReady,
		mocks.claimOrder,
		mocks.updateLocation,
		mocks.markDelivered,
		mocks.availableOrders,
		mocks.orderHistory,
		mocks.previewDelivery,
	)
	return server, mocks
}

func performRequest(server *Server, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func identityHeaders(id kernel.UUID, role string) map[string]string {
	return map[string]string{
		headerUserID:   id.String(),
		headerUserRole: role,
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	value, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	money, err := kernel.NewMoney(value, "TSH")
	require.NoError(t, err)
	return money
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) OrderStatusResponse {
	t.Helper()
	var body OrderStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// paidOrderFixture builds a paid pending order with the given identifiers.
func paidOrderFixture(t *testing.T, orderID, vendorID kernel.UUID) *order.Order {
	t.Helper()
	vendorLocation, err := kernel.NewGeoPoint(-6.8000, 39.2200)
	require.NoError(t, err)
	deliveryLocation, err := kernel.NewGeoPoint(-6.8160, 39.2803)
	require.NoError(t, err)

	o, err := order.NewOrder(orderID, "K7G2XQ9D", kernel.NewUUID(), vendorID,
		mustMoney(t, "12000"), vendorLocation, deliveryLocation, "14 Samora Ave, Dar es Salaam")
	require.NoError(t, err)
	require.NoError(t, o.UpdatePaymentStatus(order.PaymentPaid, "MPESA-1234"))
	return o
}

// readyOrderFixture walks a paid order to the claimable state.
func readyOrderFixture(t *testing.T, orderID, vendorID kernel.UUID) *order.Order {
	t.Helper()
	o := paidOrderFixture(t, orderID, vendorID)
	require.NoError(t, o.Confirm(order.RoleVendor, &vendorID))
	require.NoError(t, o.StartPreparing(order.RoleVendor, &vendorID))
	require.NoError(t, o.MarkReady(order.RoleVendor, &vendorID,
		mustMoney(t, "3500"), time.Now().UTC().Add(45*time.Minute)))
	return o
}

func Test_Health(t *testing.T) {
	server, _ := newTestServer()

	rec := performRequest(server, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func Test_AcceptOrder(t *testing.T) {
	t.Run("should return the confirmed order and pass caller identity", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		vendorID := kernel.NewUUID()
		confirmed := paidOrderFixture(t, orderID, vendorID)
		require.NoError(t, confirmed.Confirm(order.RoleVendor, &vendorID))
		mocks.acceptOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AcceptOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && cmd.ActorID().IsEqual(vendorID)
		})).Return(confirmed, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/accept", "",
			identityHeaders(vendorID, "vendor"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeOrder(t, rec)
		assert.Equal(t, "order confirmed", body.Message)
		assert.Equal(t, orderID.String(), body.Order.ID)
		assert.Equal(t, "confirmed", body.Order.Status)
		assert.Equal(t, "12000", body.Order.Subtotal)
		assert.Equal(t, "TSH", body.Order.Currency)
		mocks.acceptOrder.AssertExpectations(t)
	})

	t.Run("should return 400 when identity headers are missing", func(t *testing.T) {
		server, mocks := newTestServer()

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeValidation, decodeError(t, rec).Code)
		mocks.acceptOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should return 400 for a malformed order id", func(t *testing.T) {
		server, _ := newTestServer()

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/not-a-uuid/accept", "",
			identityHeaders(kernel.NewUUID(), "vendor"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeValidation, decodeError(t, rec).Code)
	})

	t.Run("should return 403 when the use case forbids the actor", func(t *testing.T) {
		server, mocks := newTestServer()
		mocks.acceptOrder.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewForbiddenError("customer", "accept order"))

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept", "",
			identityHeaders(kernel.NewUUID(), "customer"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, codeForbidden, decodeError(t, rec).Code)
	})

	t.Run("should return 404 when the order does not exist", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		mocks.acceptOrder.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/accept", "",
			identityHeaders(kernel.NewUUID(), "vendor"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, codeNotFound, decodeError(t, rec).Code)
	})

	t.Run("should return 409 for an invalid transition", func(t *testing.T) {
		server, mocks := newTestServer()
		mocks.acceptOrder.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewInvalidTransitionError("delivered", "confirmed"))

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept", "",
			identityHeaders(kernel.NewUUID(), "vendor"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, codeConflict, decodeError(t, rec).Code)
	})
}

func Test_RejectOrder(t *testing.T) {
	t.Run("should return the cancelled order and pass the reason through", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		vendorID := kernel.NewUUID()
		cancelled := paidOrderFixture(t, orderID, vendorID)
		require.NoError(t, cancelled.Cancel(order.RoleVendor, &vendorID, "out of stock"))
		mocks.rejectOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RejectOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && cmd.Reason() == "out of stock"
		})).Return(cancelled, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/reject",
			`{"reason": "out of stock"}`, identityHeaders(vendorID, "vendor"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeOrder(t, rec)
		assert.Equal(t, "order rejected", body.Message)
		assert.Equal(t, "cancelled", body.Order.Status)
		mocks.rejectOrder.AssertExpectations(t)
	})

	t.Run("should accept an empty reason", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		vendorID := kernel.NewUUID()
		cancelled := paidOrderFixture(t, orderID, vendorID)
		require.NoError(t, cancelled.Cancel(order.RoleVendor, &vendorID, ""))
		mocks.rejectOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RejectOrderCommand) bool {
			return cmd.Reason() == ""
		})).Return(cancelled, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/reject",
			`{}`, identityHeaders(vendorID, "vendor"))

		assert.Equal(t, http.StatusOK, rec.Code)
		mocks.rejectOrder.AssertExpectations(t)
	})
}

func Test_ClaimOrder(t *testing.T) {
	t.Run("should return the claimed order when the driver wins", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		claimed := readyOrderFixture(t, orderID, kernel.NewUUID())
		require.NoError(t, claimed.Claim(driverID))
		mocks.claimOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ClaimOrderCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && cmd.DriverID().IsEqual(driverID)
		})).Return(claimed, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/claim", "",
			identityHeaders(driverID, "driver"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeOrder(t, rec)
		assert.Equal(t, "order claimed for pickup", body.Message)
		assert.Equal(t, "picked_up", body.Order.Status)
		require.NotNil(t, body.Order.DriverID)
		assert.Equal(t, driverID.String(), *body.Order.DriverID)
		assert.NotNil(t, body.Order.PickedUpAt)
		mocks.claimOrder.AssertExpectations(t)
	})

	t.Run("should return 409 when the order is already claimed", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		mocks.claimOrder.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewAlreadyClaimedError(orderID.String()))

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/claim", "",
			identityHeaders(kernel.NewUUID(), "driver"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, codeConflict, decodeError(t, rec).Code)
	})

	t.Run("should return 403 for a non-driver caller", func(t *testing.T) {
		server, mocks := newTestServer()

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/claim", "",
			identityHeaders(kernel.NewUUID(), "vendor"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		mocks.claimOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func Test_UpdateLocation(t *testing.T) {
	t.Run("should echo the reported position on the updated order", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		inTransit := readyOrderFixture(t, orderID, kernel.NewUUID())
		require.NoError(t, inTransit.Claim(driverID))
		position, err := kernel.NewGeoPoint(-6.8160, 39.2803)
		require.NoError(t, err)
		require.NoError(t, inTransit.UpdateDriverLocation(position))
		mocks.updateLocation.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateLocationCommand) bool {
			location := cmd.Location()
			return cmd.OrderID().IsEqual(orderID) && cmd.DriverID().IsEqual(driverID) &&
				location.Latitude() == -6.8160 && location.Longitude() == 39.2803
		})).Return(inTransit, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/location",
			`{"latitude": -6.8160, "longitude": 39.2803}`, identityHeaders(driverID, "driver"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeOrder(t, rec)
		assert.Equal(t, "driver location updated", body.Message)
		assert.Equal(t, "in_transit", body.Order.Status)
		require.NotNil(t, body.Order.DriverLocation)
		assert.Equal(t, -6.8160, body.Order.DriverLocation.Latitude)
		assert.Equal(t, 39.2803, body.Order.DriverLocation.Longitude)
		mocks.updateLocation.AssertExpectations(t)
	})

	t.Run("should return 400 for out of range coordinates", func(t *testing.T) {
		server, mocks := newTestServer()

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/location",
			`{"latitude": 120.0, "longitude": 39.2803}`, identityHeaders(kernel.NewUUID(), "driver"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.updateLocation.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func Test_MarkDelivered(t *testing.T) {
	t.Run("should return the delivered order on success", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		delivered := readyOrderFixture(t, orderID, kernel.NewUUID())
		require.NoError(t, delivered.Claim(driverID))
		require.NoError(t, delivered.Deliver(order.RoleDriver, &driverID))
		mocks.markDelivered.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkDeliveredCommand) bool {
			return cmd.OrderID().IsEqual(orderID) && cmd.DriverID().IsEqual(driverID)
		})).Return(delivered, nil)

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/delivered", "",
			identityHeaders(driverID, "driver"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeOrder(t, rec)
		assert.Equal(t, "order delivered", body.Message)
		assert.Equal(t, "delivered", body.Order.Status)
		assert.NotNil(t, body.Order.DeliveredAt)
		mocks.markDelivered.AssertExpectations(t)
	})

	t.Run("should return 403 when another driver holds the order", func(t *testing.T) {
		server, mocks := newTestServer()
		mocks.markDelivered.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewForbiddenError("driver", "complete delivery"))

		rec := performRequest(server, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/delivered", "",
			identityHeaders(kernel.NewUUID(), "driver"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func Test_GetAvailableOrders(t *testing.T) {
	t.Run("should return the feed as JSON", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		vendorID := kernel.NewUUID()
		vendorLocation, err := kernel.NewGeoPoint(-6.8000, 39.2200)
		require.NoError(t, err)
		deliveryLocation, err := kernel.NewGeoPoint(-6.8160, 39.2803)
		require.NoError(t, err)
		mocks.availableOrders.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.GetAvailableOrdersQueryResponse{
				{
					ID:               orderID,
					OrderNumber:      "K7G2XQ9D",
					VendorID:         vendorID,
					VendorLocation:   vendorLocation,
					DeliveryLocation: deliveryLocation,
					DeliveryAddress:  "14 Samora Ave, Dar es Salaam",
					Subtotal:         mustMoney(t, "12000"),
					DeliveryFee:      mustMoney(t, "3500"),
					CreatedAt:        time.Now().UTC(),
				},
			}, nil)

		rec := performRequest(server, http.MethodGet, "/api/v1/orders/available", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body []AvailableOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, orderID.String(), body[0].ID)
		assert.Equal(t, "K7G2XQ9D", body[0].OrderNumber)
		assert.Equal(t, "12000", body[0].Subtotal)
		assert.Equal(t, "3500", body[0].DeliveryFee)
		assert.Equal(t, "TSH", body[0].Currency)
		assert.Nil(t, body[0].DistanceKm)
	})

	t.Run("should forward the driver location from query parameters", func(t *testing.T) {
		server, mocks := newTestServer()
		mocks.availableOrders.On("Handle", mock.Anything, mock.MatchedBy(func(query queries.GetAvailableOrdersQuery) bool {
			location := query.DriverLocation()
			return location != nil && location.Latitude() == -6.8160 && location.Longitude() == 39.2803
		})).Return([]queries.GetAvailableOrdersQueryResponse{}, nil)

		rec := performRequest(server, http.MethodGet, "/api/v1/orders/available?lat=-6.8160&lng=39.2803", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		mocks.availableOrders.AssertExpectations(t)
	})

	t.Run("should return 400 when only one coordinate is supplied", func(t *testing.T) {
		server, mocks := newTestServer()

		rec := performRequest(server, http.MethodGet, "/api/v1/orders/available?lat=-6.8160", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.availableOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func Test_GetOrderHistory(t *testing.T) {
	t.Run("should return the ledger oldest first", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		vendorID := kernel.NewUUID()
		mocks.orderHistory.On("Handle", mock.Anything, mock.MatchedBy(func(query queries.GetOrderHistoryQuery) bool {
			return query.OrderID().IsEqual(orderID)
		})).Return([]queries.GetOrderHistoryQueryResponse{
			{FromStatus: "pending", ToStatus: "confirmed", ChangedBy: "vendor", ChangedByID: &vendorID, CreatedAt: time.Now().UTC()},
			{FromStatus: "confirmed", ToStatus: "preparing", ChangedBy: "vendor", ChangedByID: &vendorID, CreatedAt: time.Now().UTC()},
		}, nil)

		rec := performRequest(server, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/history", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body []HistoryEntryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "confirmed", body[0].ToStatus)
		assert.Equal(t, "preparing", body[1].ToStatus)
		require.NotNil(t, body[0].ChangedByID)
		assert.Equal(t, vendorID.String(), *body[0].ChangedByID)
	})

	t.Run("should return 404 for an unknown order", func(t *testing.T) {
		server, mocks := newTestServer()
		orderID := kernel.NewUUID()
		mocks.orderHistory.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))

		rec := performRequest(server, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/history", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_PreviewDeliveryFee(t *testing.T) {
	t.Run("should return the quote", func(t *testing.T) {
		server, mocks := newTestServer()
		mocks.previewDelivery.On("Handle", mock.Anything, mock.Anything).
			Return(queries.PreviewDeliveryFeeQueryResponse{
				DistanceKm: 7.3,
				Fee:        mustMoney(t, "4150"),
				EtaMinutes: 52,
			}, nil)

		rec := performRequest(server, http.MethodGet,
			"/api/v1/delivery/preview?vendor_lat=-6.8000&vendor_lng=39.2200&delivery_lat=-6.8160&delivery_lng=39.2803", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body DeliveryPreviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 7.3, body.DistanceKm)
		assert.Equal(t, "4150", body.Fee)
		assert.Equal(t, "TSH", body.Currency)
		assert.Equal(t, 52, body.EtaMinutes)
	})

	t.Run("should return 400 for missing coordinates", func(t *testing.T) {
		server, mocks := newTestServer()

		rec := performRequest(server, http.MethodGet, "/api/v1/delivery/preview?vendor_lat=-6.8000", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mocks.previewDelivery.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}
