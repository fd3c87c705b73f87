// Package httpapi exposes the customers bounded context over HTTP.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-commerce-orders/internal/domains/customers/application"
	"github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/customers/ports"
	sharederrors "github.com/Apurer/go-commerce-orders/internal/shared/errors"
)

// Handler adapts the customers service to gin routes.
type Handler struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service, responder *sharederrors.ChainedResponder) *Handler {
	return &Handler{service: service, responder: responder}
}

// RegisterRoutes mounts the customer endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/customers", h.createCustomer)
	rg.GET("/customers", h.listCustomers)
	rg.GET("/customers/:id", h.getCustomer)
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	customer, err := h.service.CreateCustomer(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(customer))
}

func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.service.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(customer))
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, fromDomain(customer))
	}
	c.JSON(http.StatusOK, out)
}

func fromDomain(customer *domain.Customer) customerResponse {
	if customer == nil {
		return customerResponse{}
	}
	return customerResponse{ID: customer.ID, Name: customer.Name, Email: customer.Email}
}

// ProblemFromError maps customer application errors to problem responses.
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
