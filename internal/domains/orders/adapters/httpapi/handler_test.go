package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	customersmemory "github.com/Apurer/go-commerce-orders/internal/domains/customers/adapters/memory"
	customersdomain "github.com/Apurer/go-commerce-orders/internal/domains/customers/domain"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-commerce-orders/internal/domains/orders/application"
	productsmemory "github.com/Apurer/go-commerce-orders/internal/domains/products/adapters/memory"
	productsdomain "github.com/Apurer/go-commerce-orders/internal/domains/products/domain"
	sharederrors "github.com/Apurer/go-commerce-orders/internal/shared/errors"
)

func newTestRouter(t *testing.T) (*gin.Engine, *customersmemory.Repository, *productsmemory.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orders := memory.NewRepository()
	products := productsmemory.NewRepository()
	customers := customersmemory.NewRepository()
	svc := application.NewService(orders, products, customers)
	responder := sharederrors.NewChainedResponder("", ProblemFromError)

	router := gin.New()
	// Inline placement: the service itself satisfies the orchestrator shape.
	NewHandler(svc, svc, responder).RegisterRoutes(router.Group("/"))
	return router, customers, products
}

func seed(t *testing.T, customers *customersmemory.Repository, products *productsmemory.Repository) {
	t.Helper()
	_, err := customers.Save(context.Background(), &customersdomain.Customer{ID: "11111111-1111-1111-1111-111111111111", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = products.Save(context.Background(), &productsdomain.Product{
		ID:       "22222222-2222-2222-2222-222222222222",
		Name:     "Keyboard",
		Price:    decimal.NewFromFloat(10.0),
		Quantity: 5,
	})
	require.NoError(t, err)
}

func TestCreateOrder(t *testing.T) {
	router, customers, products := newTestRouter(t)
	seed(t, customers, products)

	body := `{"customer_id":"11111111-1111-1111-1111-111111111111","products":[{"id":"22222222-2222-2222-2222-222222222222","quantity":2}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"customer_id":"11111111-1111-1111-1111-111111111111"`)
	require.Contains(t, rec.Body.String(), `"product_id":"22222222-2222-2222-2222-222222222222"`)
	require.Contains(t, rec.Body.String(), `"quantity":2`)
	require.Contains(t, rec.Body.String(), `"total":"20"`)
}

func TestCreateOrder_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{
			name: "unknown customer",
			body: `{"customer_id":"99999999-9999-9999-9999-999999999999","products":[{"id":"22222222-2222-2222-2222-222222222222","quantity":1}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "no products resolved",
			body: `{"customer_id":"11111111-1111-1111-1111-111111111111","products":[{"id":"99999999-9999-9999-9999-999999999999","quantity":1}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "partial resolution",
			body: `{"customer_id":"11111111-1111-1111-1111-111111111111","products":[{"id":"22222222-2222-2222-2222-222222222222","quantity":1},{"id":"99999999-9999-9999-9999-999999999999","quantity":1}]}`,
			want: http.StatusNotFound,
		},
		{
			name: "insufficient stock",
			body: `{"customer_id":"11111111-1111-1111-1111-111111111111","products":[{"id":"22222222-2222-2222-2222-222222222222","quantity":6}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "zero quantity",
			body: `{"customer_id":"11111111-1111-1111-1111-111111111111","products":[{"id":"22222222-2222-2222-2222-222222222222","quantity":0}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed body",
			body: `{"products":`,
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, customers, products := newTestRouter(t)
			seed(t, customers, products)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
			require.Equal(t, sharederrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
		})
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
