// Package http exposes the REST surface: checkout, lifecycle transitions and
// the read-side endpoints. Handlers translate transport concerns and map
// domain errors onto status codes; all business logic stays in the use cases.
package http

import (
	"errors"
	"net/http"
	"time"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/cart"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler   commands.CheckoutCommandHandler
	transitionHandler commands.TransitionOrderCommandHandler

	// Query handlers
	analyticsHandler    queries.GetAnalyticsQueryHandler
	kitchenQueueHandler queries.GetKitchenQueueQueryHandler
	userOrdersHandler   queries.GetUserOrdersQueryHandler

	// Order lookups by identifier bypass the query handlers and read the
	// aggregate directly.
	orders ports.OrderRepository
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	analyticsHandler queries.GetAnalyticsQueryHandler,
	kitchenQueueHandler queries.GetKitchenQueueQueryHandler,
	userOrdersHandler queries.GetUserOrdersQueryHandler,
	orders ports.OrderRepository,
) *Server {
	return &Server{
		checkoutHandler:     checkoutHandler,
		transitionHandler:   transitionHandler,
		analyticsHandler:    analyticsHandler,
		kitchenQueueHandler: kitchenQueueHandler,
		userOrdersHandler:   userOrdersHandler,
		orders:              orders,
	}
}

// RegisterRoutes mounts all REST endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/checkout", s.Checkout)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.GET("/orders", s.ListOrdersByStatus)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/ref/:refCode", s.GetOrderByRefCode)
	api.GET("/kitchen/queue", s.GetKitchenQueue)
	api.GET("/analytics", s.GetAnalytics)
	api.GET("/users/:id/orders", s.GetUserOrders)
}

// Checkout handles POST /api/v1/checkout - converts the customer's cart into an order.
func (s *Server) Checkout(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCheckoutCommand(req.UserID, req.UserName)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid checkout data: "+err.Error())
	}

	created, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFrom(created))
}

// TransitionOrder handles POST /api/v1/orders/:id/status - advances an order
// one step along its lifecycle.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	var orderID int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &orderID).BindError(); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var req TransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Status)
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			return writeError(ctx, http.StatusBadRequest, "Unknown status: "+req.Status)
		}
		return writeError(ctx, http.StatusBadRequest, "Invalid transition data: "+err.Error())
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(updated))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context) error {
	var orderID int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &orderID).BindError(); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	found, err := s.orders.GetByID(ctx.Request().Context(), orderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(found))
}

// GetOrderByRefCode handles GET /api/v1/orders/ref/:refCode - retrieves a
// single order by its reference code.
func (s *Server) GetOrderByRefCode(ctx echo.Context) error {
	refCode, err := kernel.RefCodeFromString(ctx.Param("refCode"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid reference code")
	}

	found, err := s.orders.GetByRefCode(ctx.Request().Context(), refCode)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(found))
}

// ListOrdersByStatus handles GET /api/v1/orders?status=... - retrieves every
// order in the given lifecycle stage, oldest first. Staff surface.
func (s *Server) ListOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Unknown status: "+ctx.QueryParam("status"))
	}

	orders, err := s.orders.ListByStatus(ctx.Request().Context(), status)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to list orders")
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, entry := range orders {
		response = append(response, orderResponseFrom(entry))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetKitchenQueue handles GET /api/v1/kitchen/queue - retrieves all active
// orders grouped by stage.
func (s *Server) GetKitchenQueue(ctx echo.Context) error {
	queue, err := s.kitchenQueueHandler.Handle(ctx.Request().Context(), queries.NewGetKitchenQueueQuery())
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve kitchen queue")
	}

	return ctx.JSON(http.StatusOK, KitchenQueueResponse{
		PendingOrders:   orderCardsFrom(queue.PendingOrders),
		PreparingOrders: orderCardsFrom(queue.PreparingOrders),
		ReadyOrders:     orderCardsFrom(queue.ReadyOrders),
	})
}

// GetAnalytics handles GET /api/v1/analytics - retrieves the order rollup.
func (s *Server) GetAnalytics(ctx echo.Context) error {
	rollup, err := s.analyticsHandler.Handle(ctx.Request().Context(), queries.NewGetAnalyticsQuery())
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to compute analytics")
	}

	return ctx.JSON(http.StatusOK, analyticsResponseFrom(rollup))
}

// GetUserOrders handles GET /api/v1/users/:id/orders - retrieves a customer's
// recent orders, newest first.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	var customerID int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &customerID).BindError(); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid customer id")
	}

	var limit int
	_ = echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError()

	query, err := queries.NewGetUserOrdersQuery(customerID, limit)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	orders, err := s.userOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]UserOrderResponse, 0, len(orders))
	for _, entry := range orders {
		response = append(response, UserOrderResponse{
			ID:            entry.ID,
			RefCode:       entry.RefCode,
			DisplayNumber: entry.DisplayNumber,
			Status:        entry.Status,
			TotalValue:    entry.TotalValue,
			ItemsSummary:  entry.ItemsSummary,
			DateOrdered:   entry.DateOrdered.UTC().Format(time.RFC3339),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// writeDomainError maps use case failures onto transport status codes.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		return writeError(ctx, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, order.ErrIllegalTransition):
		return writeError(ctx, http.StatusConflict, "Illegal status transition: "+err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, ports.ErrStoreConflict):
		return writeError(ctx, http.StatusConflict, "Concurrent update, please retry")
	case errors.Is(err, services.ErrAllocationExhausted):
		return writeError(ctx, http.StatusServiceUnavailable, "All display numbers are in use")
	default:
		return writeError(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
