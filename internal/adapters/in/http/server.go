// Package http exposes the application over a REST API plus one Server-Sent
// Events endpoint for real-time order notifications.
package http

import (
	"errors"
	"net/http"

	"lastbite/internal/core/application/notifier"
	"lastbite/internal/core/application/usecases/commands"
	"lastbite/internal/core/application/usecases/queries"
	"lastbite/internal/core/domain/model/kernel"
	"lastbite/internal/core/domain/model/order"
	"lastbite/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RequesterHeader carries the authenticated party's id. Authentication itself
// happens upstream; the API trusts the header and authorization is enforced
// per operation against the order and store aggregates.
//
// Which id belongs in the header depends on the operation. Order placement
// and status changes identify the acting account: the customer id, or the
// operator id for store-side changes. Subscribing to and listing
// notifications identify the notification recipient instead: customers send
// their customer id, store-side clients send the store id, because
// store-facing notifications are addressed to the store, not its operator.
const RequesterHeader = "X-Requester-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getStoreOrdersHandler   queries.GetStoreOrdersQueryHandler
	getNotificationsHandler queries.GetNotificationsQueryHandler

	streams *notifier.StreamService
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getStoreOrdersHandler queries.GetStoreOrdersQueryHandler,
	getNotificationsHandler queries.GetNotificationsQueryHandler,
	streams *notifier.StreamService,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getStoreOrdersHandler:    getStoreOrdersHandler,
		getNotificationsHandler:  getNotificationsHandler,
		streams:                  streams,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)
	api.GET("/stores/:storeId/orders", s.GetStoreOrders)
	api.GET("/notifications", s.GetNotifications)
	api.GET("/notifications/subscribe", s.Subscribe)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := requesterID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+RequesterHeader+" header")
	}

	var req NewOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, reqLine := range req.Lines {
		itemID, lineErr := kernel.UUIDFromString(reqLine.ItemID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid item id")
		}
		line, lineErr := order.NewLine(itemID, reqLine.Quantity, reqLine.UnitPrice)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, storeID, lines, req.ArrivalTime, req.Demand)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderId/status - applies a
// status transition on behalf of the requesting party.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	requester, err := requesterID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+RequesterHeader+" header")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status value")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, requester, target)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStoreOrders handles GET /api/v1/stores/:storeId/orders - lists a store's
// orders for its operator.
func (s *Server) GetStoreOrders(ctx echo.Context) error {
	requester, err := requesterID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+RequesterHeader+" header")
	}

	storeID, err := kernel.UUIDFromString(ctx.Param("storeId"))
	if err != nil {
		return badRequest(ctx, "Invalid store id")
	}

	query, err := queries.NewGetStoreOrdersQuery(storeID, requester)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getStoreOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderResponse{
			ID:          o.ID.String(),
			CustomerID:  o.CustomerID.String(),
			TotalPrice:  o.TotalPrice,
			ArrivalTime: o.ArrivalTime,
			Demand:      o.Demand,
			Status:      o.Status.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications?role=... - returns the
// requester's persisted notification log.
func (s *Server) GetNotifications(ctx echo.Context) error {
	requester, err := requesterID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+RequesterHeader+" header")
	}

	role, err := order.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return badRequest(ctx, "Invalid role")
	}

	query, err := queries.NewGetNotificationsQuery(requester, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	notifications, err := s.getNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = NotificationResponse{
			ID:        n.ID.String(),
			OrderID:   n.OrderID.String(),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func requesterID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(RequesterHeader))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application error kinds to HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
