// Package http exposes the dispatch operations over REST. The routes
// are the poll path of the synchronization layer; the push path is the
// RabbitMQ changes exchange.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and the application use
// cases.
type Server struct {
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	claimSlotHandler         commands.ClaimSlotCommandHandler
	releaseSlotHandler       commands.ReleaseSlotCommandHandler
	claimRouteHandler        commands.ClaimRouteCommandHandler
	completeRouteHandler     commands.CompleteRouteCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	attachReviewHandler      commands.AttachReviewCommandHandler
	setCapacityHandler       commands.SetCapacityCommandHandler

	getOrdersHandler        queries.GetOrdersQueryHandler
	getOrderHandler         queries.GetOrderQueryHandler
	getReadyBatchesHandler  queries.GetReadyBatchesQueryHandler
	getRouteHandler         queries.GetRouteQueryHandler
	getActiveDriversHandler queries.GetActiveDriversQueryHandler
	getDriverHistoryHandler queries.GetDriverHistoryQueryHandler
	getSectorsHandler       queries.GetSectorsQueryHandler
	getCapacityHandler      queries.GetCapacityQueryHandler
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	UpdateOrderStatus commands.UpdateOrderStatusCommandHandler
	ClaimSlot         commands.ClaimSlotCommandHandler
	ReleaseSlot       commands.ReleaseSlotCommandHandler
	ClaimRoute        commands.ClaimRouteCommandHandler
	CompleteRoute     commands.CompleteRouteCommandHandler
	CompleteOrder     commands.CompleteOrderCommandHandler
	AttachReview      commands.AttachReviewCommandHandler
	SetCapacity       commands.SetCapacityCommandHandler

	GetOrders        queries.GetOrdersQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetReadyBatches  queries.GetReadyBatchesQueryHandler
	GetRoute         queries.GetRouteQueryHandler
	GetActiveDrivers queries.GetActiveDriversQueryHandler
	GetDriverHistory queries.GetDriverHistoryQueryHandler
	GetSectors       queries.GetSectorsQueryHandler
	GetCapacity      queries.GetCapacityQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{
		updateOrderStatusHandler: handlers.UpdateOrderStatus,
		claimSlotHandler:         handlers.ClaimSlot,
		releaseSlotHandler:       handlers.ReleaseSlot,
		claimRouteHandler:        handlers.ClaimRoute,
		completeRouteHandler:     handlers.CompleteRoute,
		completeOrderHandler:     handlers.CompleteOrder,
		attachReviewHandler:      handlers.AttachReview,
		setCapacityHandler:       handlers.SetCapacity,
		getOrdersHandler:         handlers.GetOrders,
		getOrderHandler:          handlers.GetOrder,
		getReadyBatchesHandler:   handlers.GetReadyBatches,
		getRouteHandler:          handlers.GetRoute,
		getActiveDriversHandler:  handlers.GetActiveDrivers,
		getDriverHistoryHandler:  handlers.GetDriverHistory,
		getSectorsHandler:        handlers.GetSectors,
		getCapacityHandler:       handlers.GetCapacity,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.GET("/orders", s.GetOrders)
	api.GET("/orders/ready", s.GetReadyBatches)
	api.GET("/orders/:code", s.GetOrder)
	api.PUT("/orders/:code/status", s.UpdateOrderStatus)
	api.POST("/orders/:code/review", s.AttachReview)

	api.GET("/sectors", s.GetSectors)

	api.GET("/capacity", s.GetCapacity)
	api.PUT("/capacity", s.SetCapacity)

	api.GET("/drivers", s.GetActiveDrivers)
	api.POST("/drivers/login", s.Login)
	api.POST("/drivers/logout", s.Logout)
	api.POST("/drivers/:phone/logout", s.ForceLogout)
	api.GET("/drivers/:phone/history", s.GetDriverHistory)

	api.POST("/route/claim", s.ClaimRoute)
	api.GET("/route", s.GetRoute)
	api.POST("/route/complete", s.CompleteRoute)
	api.POST("/route/complete/:code", s.CompleteOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetOrders handles GET /api/v1/orders with an optional status filter.
func (s *Server) GetOrders(ctx echo.Context) error {
	status := order.StatusUnknown
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return errorResponse(ctx, err)
		}
		status = parsed
	}

	query, err := queries.NewGetOrdersQuery(status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:code, the customer tracking
// read.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("code"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// UpdateOrderStatus handles PUT /api/v1/orders/:code/status. Covers
// the kitchen transitions and the admin cancel.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(ctx.Param("code"), status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachReview handles POST /api/v1/orders/:code/review.
func (s *Server) AttachReview(ctx echo.Context) error {
	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttachReviewCommand(ctx.Param("code"), body.Rating, body.Comment)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.attachReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReadyBatches handles GET /api/v1/orders/ready, the claimable
// board.
func (s *Server) GetReadyBatches(ctx echo.Context) error {
	batches, err := s.getReadyBatchesHandler.Handle(
		ctx.Request().Context(), queries.NewGetReadyBatchesQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, batches)
}

// GetSectors handles GET /api/v1/sectors.
func (s *Server) GetSectors(ctx echo.Context) error {
	sectors, err := s.getSectorsHandler.Handle(
		ctx.Request().Context(), queries.NewGetSectorsQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sectors)
}

// GetCapacity handles GET /api/v1/capacity.
func (s *Server) GetCapacity(ctx echo.Context) error {
	colors, err := s.getCapacityHandler.Handle(
		ctx.Request().Context(), queries.NewGetCapacityQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string][]string{"colors": colors})
}

// SetCapacity handles PUT /api/v1/capacity, the admin seat
// configuration.
func (s *Server) SetCapacity(ctx echo.Context) error {
	var body struct {
		Colors []string `json:"colors"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCapacityCommand(body.Colors)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.setCapacityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveDrivers handles GET /api/v1/drivers, the live session
// listing.
func (s *Server) GetActiveDrivers(ctx echo.Context) error {
	drivers, err := s.getActiveDriversHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveDriversQuery())
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, drivers)
}

// Login handles POST /api/v1/drivers/login, the color slot claim.
func (s *Server) Login(ctx echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Color string `json:"color"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewClaimSlotCommand(body.Name, body.Phone, body.Color)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.claimSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Logout handles POST /api/v1/drivers/logout, the agent-initiated
// release.
func (s *Server) Logout(ctx echo.Context) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReleaseSlotCommand(body.Phone)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.releaseSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ForceLogout handles POST /api/v1/drivers/:phone/logout, the admin
// release. The freed color is claimable immediately.
func (s *Server) ForceLogout(ctx echo.Context) error {
	cmd, err := commands.NewForceReleaseSlotCommand(ctx.Param("phone"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.releaseSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverHistory handles GET /api/v1/drivers/:phone/history.
func (s *Server) GetDriverHistory(ctx echo.Context) error {
	query, err := queries.NewGetDriverHistoryQuery(ctx.Param("phone"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getDriverHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ClaimRoute handles POST /api/v1/route/claim.
func (s *Server) ClaimRoute(ctx echo.Context) error {
	var body struct {
		Phone     string   `json:"phone"`
		SectorIDs []string `json:"sector_ids"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewClaimRouteCommand(body.Phone, body.SectorIDs)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.claimRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrNothingToClaim) {
			return ctx.JSON(http.StatusConflict, map[string]any{
				"message": "No orders available to claim",
				"lost":    result.Lost,
			})
		}
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"claimed": result.Claimed,
		"lost":    result.Lost,
	})
}

// GetRoute handles GET /api/v1/route?phone=...
func (s *Server) GetRoute(ctx echo.Context) error {
	query, err := queries.NewGetRouteQuery(ctx.QueryParam("phone"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	route, err := s.getRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, route)
}

// CompleteRoute handles POST /api/v1/route/complete. Always returns
// per-member outcomes; partial failure is a 200 with failure counts,
// not an error status.
func (s *Server) CompleteRoute(ctx echo.Context) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteRouteCommand(body.Phone)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.completeRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, batchResultResponse(result))
}

// CompleteOrder handles POST /api/v1/route/complete/:code.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteOrderCommand(body.Phone, ctx.Param("code"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func batchResultResponse(result commands.BatchResult) map[string]any {
	members := make([]map[string]any, 0, len(result.Results))
	for _, r := range result.Results {
		member := map[string]any{
			"code":    r.OrderCode,
			"outcome": outcomeLabel(r.Outcome),
		}
		if r.Err != nil {
			member["error"] = r.Err.Error()
		}
		members = append(members, member)
	}

	return map[string]any{
		"completed":          result.Succeeded(),
		"business_failures":  result.BusinessFailures(),
		"transport_failures": result.TransportFailures(),
		"members":            members,
	}
}

func outcomeLabel(outcome commands.CompletionOutcome) string {
	switch outcome {
	case commands.OutcomeCompleted:
		return "completed"
	case commands.OutcomeBusinessFailure:
		return "business_failure"
	case commands.OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// errorResponse maps domain errors onto HTTP statuses.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrSlotUnavailable):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrOrderCodeIsRequired),
		errors.Is(err, commands.ErrDriverNameIsRequired),
		errors.Is(err, commands.ErrColorIsRequired),
		errors.Is(err, commands.ErrSectorsAreRequired),
		errors.Is(err, queries.ErrOrderCodeIsRequired):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, map[string]any{
		"code":    status,
		"message": err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, map[string]any{
		"code":    http.StatusBadRequest,
		"message": message,
	})
}
