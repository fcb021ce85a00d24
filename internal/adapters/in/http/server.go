// Package http exposes the order lifecycle over an echo HTTP API.
// All routes live under /api/v1; caller identity arrives in trusted headers
// set by the authenticating gateway.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/core/application/usecases/queries"
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/metrics"
	"yumexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Use-case contracts consumed by the server. Narrow interfaces keep the
// HTTP layer testable without a database behind it.
type (
	AcceptOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error)
	}
	RejectOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*order.Order, error)
	}
	StartPreparingHandler interface {
		Handle(ctx context.Context, cmd commands.StartPreparingCommand) (*order.Order, error)
	}
	MarkReadyHandler interface {
		Handle(ctx context.Context, cmd commands.MarkReadyCommand) (*order.Order, error)
	}
	ClaimOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (*order.Order, error)
	}
	UpdateLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateLocationCommand) (*order.Order, error)
	}
	MarkDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) (*order.Order, error)
	}
	GetAvailableOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error)
	}
	GetOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.GetOrderHistoryQueryResponse, error)
	}
	PreviewDeliveryFeeHandler interface {
		Handle(ctx context.Context, query queries.PreviewDeliveryFeeQuery) (queries.PreviewDeliveryFeeQueryResponse, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	acceptOrderHandler    AcceptOrderHandler
	rejectOrderHandler    RejectOrderHandler
	startPreparingHandler StartPreparingHandler
	markReadyHandler      MarkReadyHandler
	claimOrderHandler     ClaimOrderHandler
	updateLocationHandler UpdateLocationHandler
	markDeliveredHandler  MarkDeliveredHandler

	getAvailableOrdersHandler GetAvailableOrdersHandler
	getOrderHistoryHandler    GetOrderHistoryHandler
	previewDeliveryHandler    PreviewDeliveryFeeHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	acceptOrderHandler AcceptOrderHandler,
	rejectOrderHandler RejectOrderHandler,
	startPreparingHandler StartPreparingHandler,
	markReadyHandler MarkReadyHandler,
	claimOrderHandler ClaimOrderHandler,
	updateLocationHandler UpdateLocationHandler,
	markDeliveredHandler MarkDeliveredHandler,
	getAvailableOrdersHandler GetAvailableOrdersHandler,
	getOrderHistoryHandler GetOrderHistoryHandler,
	previewDeliveryHandler PreviewDeliveryFeeHandler,
) *Server {
	return &Server{
		acceptOrderHandler:        acceptOrderHandler,
		rejectOrderHandler:        rejectOrderHandler,
		startPreparingHandler:     startPreparingHandler,
		markReadyHandler:          markReadyHandler,
		claimOrderHandler:         claimOrderHandler,
		updateLocationHandler:     updateLocationHandler,
		markDeliveredHandler:      markDeliveredHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getOrderHistoryHandler:    getOrderHistoryHandler,
		previewDeliveryHandler:    previewDeliveryHandler,
	}
}

// RegisterRoutes mounts every API route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders/:id/accept", s.AcceptOrder)
	v1.POST("/orders/:id/reject", s.RejectOrder)
	v1.POST("/orders/:id/preparing", s.StartPreparing)
	v1.POST("/orders/:id/ready", s.MarkReady)
	v1.POST("/orders/:id/claim", s.ClaimOrder)
	v1.POST("/orders/:id/location", s.UpdateLocation)
	v1.POST("/orders/:id/delivered", s.MarkDelivered)
	v1.GET("/orders/available", s.GetAvailableOrders)
	v1.GET("/orders/:id/history", s.GetOrderHistory)
	v1.GET("/delivery/preview", s.PreviewDeliveryFee)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - vendor confirms an
// order.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, requester.ID, requester.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	metrics.OrdersAcceptedTotal.Inc()
	return writeOrder(ctx, updated, "order confirmed")
}

// RejectOrder handles POST /api/v1/orders/:id/reject - cancels a pending
// order with a reason.
func (s *Server) RejectOrder(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	var req RejectOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeValidationError(ctx, "invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, requester.ID, requester.Role, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeOrder(ctx, updated, "order rejected")
}

// StartPreparing handles POST /api/v1/orders/:id/preparing.
func (s *Server) StartPreparing(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	cmd, err := commands.NewStartPreparingCommand(orderID, requester.ID, requester.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.startPreparingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeOrder(ctx, updated, "order preparation started")
}

// MarkReady handles POST /api/v1/orders/:id/ready - fixes the delivery fee
// and estimated delivery time, makes the order claimable, and notifies
// available drivers.
func (s *Server) MarkReady(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkReadyCommand(orderID, requester.ID, requester.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.markReadyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeOrder(ctx, updated, "order is ready for pickup")
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - the calling driver
// attempts to claim a ready order. Exactly one concurrent claimer wins;
// the rest receive a conflict.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}
	if requester.Role != order.RoleDriver {
		return writeError(ctx, errs.NewForbiddenError(requester.Role.String(), "claim order"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, requester.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyClaimed) {
			metrics.ClaimConflictsTotal.Inc()
		}
		return writeError(ctx, err)
	}

	return writeOrder(ctx, updated, "order claimed for pickup")
}

// UpdateLocation handles POST /api/v1/orders/:id/location - the assigned
// driver reports a position. The first report moves the order in transit.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}
	if requester.Role != order.RoleDriver {
		return writeError(ctx, errs.NewForbiddenError(requester.Role.String(), "update order location"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	var req UpdateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeValidationError(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(orderID, requester.ID, location)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return writeOrder(ctx, updated, "driver location updated")
}

// MarkDelivered handles POST /api/v1/orders/:id/delivered - the assigned
// driver completes the delivery.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	requester, err := callerFromRequest(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid caller identity")
	}
	if requester.Role != order.RoleDriver {
		return writeError(ctx, errs.NewForbiddenError(requester.Role.String(), "mark order delivered"))
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, requester.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	metrics.OrdersDeliveredTotal.Inc()
	return writeOrder(ctx, updated, "order delivered")
}

// GetAvailableOrders handles GET /api/v1/orders/available - the claimable
// order feed. Optional lat/lng query parameters sort the feed nearest
// vendor first.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	var driverLocation *kernel.GeoPoint

	latParam := ctx.QueryParam("lat")
	lngParam := ctx.QueryParam("lng")
	if latParam != "" || lngParam != "" {
		lat, err := strconv.ParseFloat(latParam, 64)
		if err != nil {
			return writeValidationError(ctx, "invalid lat parameter")
		}

		lng, err := strconv.ParseFloat(lngParam, 64)
		if err != nil {
			return writeValidationError(ctx, "invalid lng parameter")
		}

		location, err := kernel.NewGeoPoint(lat, lng)
		if err != nil {
			return writeError(ctx, err)
		}
		driverLocation = &location
	}

	query, err := queries.NewGetAvailableOrdersQuery(driverLocation)
	if err != nil {
		return writeError(ctx, err)
	}

	available, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AvailableOrderResponse, len(available))
	for i, entry := range available {
		response[i] = AvailableOrderResponse{
			ID:          entry.ID.String(),
			OrderNumber: entry.OrderNumber,
			VendorID:    entry.VendorID.String(),
			VendorLocation: GeoPointResponse{
				Latitude:  entry.VendorLocation.Latitude(),
				Longitude: entry.VendorLocation.Longitude(),
			},
			DeliveryLocation: GeoPointResponse{
				Latitude:  entry.DeliveryLocation.Latitude(),
				Longitude: entry.DeliveryLocation.Longitude(),
			},
			DeliveryAddress: entry.DeliveryAddress,
			Subtotal:        entry.Subtotal.Amount().String(),
			DeliveryFee:     entry.DeliveryFee.Amount().String(),
			Currency:        entry.Subtotal.Currency(),
			DistanceKm:      entry.DistanceKm,
			CreatedAt:       entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - the append-only
// transition ledger of one order, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return writeValidationError(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	trail, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(trail))
	for i, entry := range trail {
		var changedByID *string
		if entry.ChangedByID != nil {
			id := entry.ChangedByID.String()
			changedByID = &id
		}

		response[i] = HistoryEntryResponse{
			FromStatus:  entry.FromStatus,
			ToStatus:    entry.ToStatus,
			ChangedBy:   entry.ChangedBy,
			ChangedByID: changedByID,
			Note:        entry.Note,
			CreatedAt:   entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PreviewDeliveryFee handles GET /api/v1/delivery/preview - quotes the fee
// and ETA between vendor and delivery coordinates before an order is placed.
func (s *Server) PreviewDeliveryFee(ctx echo.Context) error {
	vendorLocation, err := geoPointFromParams(ctx, "vendor_lat", "vendor_lng")
	if err != nil {
		return writeValidationError(ctx, "invalid vendor coordinates")
	}

	deliveryLocation, err := geoPointFromParams(ctx, "delivery_lat", "delivery_lng")
	if err != nil {
		return writeValidationError(ctx, "invalid delivery coordinates")
	}

	query, err := queries.NewPreviewDeliveryFeeQuery(vendorLocation, deliveryLocation)
	if err != nil {
		return writeError(ctx, err)
	}

	preview, err := s.previewDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryPreviewResponse{
		DistanceKm: preview.DistanceKm,
		Fee:        preview.Fee.Amount().String(),
		Currency:   preview.Fee.Currency(),
		EtaMinutes: preview.EtaMinutes,
	})
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// writeOrder renders the updated order with a status message for the caller.
func writeOrder(ctx echo.Context, updated *order.Order, message string) error {
	response, err := orderToResponse(updated)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatusResponse{
		Message: message,
		Order:   response,
	})
}

func orderToResponse(o *order.Order) (OrderResponse, error) {
	total, err := o.Total()
	if err != nil {
		return OrderResponse{}, err
	}

	var driverID *string
	if o.Driver() != nil {
		id := o.Driver().String()
		driverID = &id
	}

	var driverLocation *GeoPointResponse
	if o.DriverLocation() != nil {
		driverLocation = &GeoPointResponse{
			Latitude:  o.DriverLocation().Latitude(),
			Longitude: o.DriverLocation().Longitude(),
		}
	}

	return OrderResponse{
		ID:            o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.Customer().String(),
		VendorID:      o.Vendor().String(),
		DriverID:      driverID,
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Subtotal:      o.Subtotal().Amount().String(),
		DeliveryFee:   o.DeliveryFee().Amount().String(),
		Total:         total.Amount().String(),
		Currency:      o.Subtotal().Currency(),
		VendorLocation: GeoPointResponse{
			Latitude:  o.VendorLocation().Latitude(),
			Longitude: o.VendorLocation().Longitude(),
		},
		DeliveryLocation: GeoPointResponse{
			Latitude:  o.DeliveryLocation().Latitude(),
			Longitude: o.DeliveryLocation().Longitude(),
		},
		DeliveryAddress:     o.DeliveryAddress(),
		DriverLocation:      driverLocation,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		PickedUpAt:          o.PickedUpAt(),
		DeliveredAt:         o.DeliveredAt(),
		CreatedAt:           o.CreatedAt(),
	}, nil
}

func geoPointFromParams(ctx echo.Context, latName, lngName string) (kernel.GeoPoint, error) {
	lat, err := strconv.ParseFloat(ctx.QueryParam(latName), 64)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	lng, err := strconv.ParseFloat(ctx.QueryParam(lngName), 64)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(lat, lng)
}
