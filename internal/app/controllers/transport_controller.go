package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univera/univera/internal/app/models"
	"github.com/univera/univera/internal/app/models/dto"
	"github.com/univera/univera/internal/app/services"
	"github.com/univera/univera/internal/middleware"
)

// TransportController handles routes, stops and subscriptions
type TransportController struct {
	transportService *services.TransportService
}

// NewTransportController creates a new TransportController
func NewTransportController(transportService *services.TransportService) *TransportController {
	return &TransportController{transportService: transportService}
}

// CreateRoute registers a bus route
// @Summary Create a transport route
// @Tags transport
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransportRouteRequest true "Route with stops"
// @Success 201 {object} dto.APIResponse{data=models.TransportRoute} "Created"
// @Router /transport-routes [post]
func (c *TransportController) CreateRoute(ctx *gin.Context) {
	var req dto.CreateTransportRouteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	route, err := c.transportService.CreateRoute(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(route, "Route created"))
}

// GetRoute retrieves a route with its stops
// @Summary Get a transport route
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Param id path int true "Route ID"
// @Success 200 {object} dto.APIResponse{data=models.TransportRoute}
// @Failure 404 {object} dto.ErrorResponse "Route not found"
// @Router /transport-routes/{id} [get]
func (c *TransportController) GetRoute(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	route, err := c.transportService.GetRoute(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(route, ""))
}

// ListRoutes lists all routes
// @Summary List transport routes
// @Tags transport
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.TransportRoute}
// @Router /transport-routes [get]
func (c *TransportController) ListRoutes(ctx *gin.Context) {
	routes, err := c.transportService.ListRoutes(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(routes, ""))
}

// Subscribe enrolls a student on a route
// @Summary Subscribe to transport
// @Description Enrolls a student on a route at a stop; rejected when the route is at capacity
// @Tags transport
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubscribeTransportRequest true "Subscription"
// @Success 201 {object} dto.APIResponse{data=models.TransportSubscription} "Subscribed"
// @Failure 409 {object} dto.ErrorResponse "Route at capacity or already subscribed"
// @Router /transport-subscriptions [post]
func (c *TransportController) Subscribe(ctx *gin.Context) {
	var req dto.SubscribeTransportRequest
	if !bindJSON(ctx, &req) {
		return
	}

	subscription, err := c.transportService.Subscribe(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subscription, "Subscribed"))
}

// ChangeSubscriptionStatus moves a subscription through its lifecycle
// @Summary Change subscription status
// @Tags transport
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Illegal state change"
// @Router /transport-subscriptions/{id}/status [patch]
func (c *TransportController) ChangeSubscriptionStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.transportService.ChangeSubscriptionStatus(ctx, id, models.Status(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status changed"))
}
