// Package httpapi exposes the products bounded context over HTTP.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-orders/internal/domains/products/application"
	"github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/products/ports"
	sharederrors "github.com/Apurer/go-commerce-orders/internal/shared/errors"
)

// Handler adapts the products service to gin routes.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service, responder *sharederrors.ChainedResponder) *Handler {
	return &Handler{service: service, responder: responder}
}

// RegisterRoutes mounts the product endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.createProduct)
	rg.GET("/products", h.listProducts)
}

type createProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

type productResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, fromDomain(product))
	}
	c.JSON(http.StatusOK, out)
}

func fromDomain(product *domain.Product) productResponse {
	if product == nil {
		return productResponse{}
	}
	return productResponse{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

// ProblemFromError maps product application errors to problem responses.
func ProblemFromError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrAlreadyExists):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}
