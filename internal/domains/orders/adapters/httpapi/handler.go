// Package httpapi exposes the orders bounded context over HTTP.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-orders/internal/domains/orders/application"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/ports"
	sharederrors "github.com/Apurer/go-commerce-orders/internal/shared/errors"
)

// Handler adapts the orders service to gin routes. Placement goes through the
// orchestrator so deployments can route it to the durable workflow; reads hit
// the service directly.
type Handler struct {
	service      ports.Service
	orchestrator ports.WorkflowOrchestrator
	responder    *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service, orchestrator ports.WorkflowOrchestrator, responder *sharederrors.ChainedResponder) *Handler {
	return &Handler{service: service, orchestrator: orchestrator, responder: responder}
}

// RegisterRoutes mounts the order endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.createOrder)
	rg.GET("/orders", h.listOrders)
	rg.GET("/orders/:id", h.getOrder)
}

type createOrderRequest struct {
	CustomerID string              `json:"customer_id" binding:"required"`
	Products   []orderProductInput `json:"products"`
}

type orderProductInput struct {
	ID       string `json:"id"`
	Quantity int32  `json:"quantity"`
}

type orderProductResponse struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
}

type orderResponse struct {
	ID            string                 `json:"id"`
	CustomerID    string                 `json:"customer_id"`
	OrderProducts []orderProductResponse `json:"order_products"`
	Total         decimal.Decimal        `json:"total"`
	CreatedAt     time.Time              `json:"created_at"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	items := make([]domain.ItemRequest, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, domain.ItemRequest{ProductID: p.ID, Quantity: p.Quantity})
	}
	order, err := h.orchestrator.PlaceOrder(c.Request.Context(), req.CustomerID, items)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(order))
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, fromDomain(order))
	}
	c.JSON(http.StatusOK, out)
}

func fromDomain(order *domain.Order) orderResponse {
	if order == nil {
		return orderResponse{}
	}
	products := make([]orderProductResponse, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, orderProductResponse{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return orderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		OrderProducts: products,
		Total:         order.Total(),
		CreatedAt:     order.CreatedAt,
	}
}

// ProblemFromError maps order placement errors to problem responses. A
// partial product resolution reads as a lookup miss, so it maps to 404;
// the other validation failures are 400s.
func ProblemFromError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrProductMismatch):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrCustomerNotFound),
		errors.Is(err, application.ErrNoProducts),
		errors.Is(err, application.ErrInsufficientStock):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrStockUpdateFailed):
		return sharederrors.ErrInternal.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
