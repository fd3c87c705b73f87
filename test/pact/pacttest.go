//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "commerce-orders-api"
	ConsumerName = "storefront"

	StateCommerceBaseline = "customer and product baseline"
	StateCustomerMissing  = "no customer with the ghost id"
	StateOrderExists      = "an order exists for the baseline customer"
)

const (
	ExistingCustomerID = "11111111-1111-1111-1111-111111111111"
	MissingCustomerID  = "99999999-9999-9999-9999-999999999999"
	ExistingProductID  = "22222222-2222-2222-2222-222222222222"
	ExistingOrderID    = "33333333-3333-3333-3333-333333333333"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest provides stable test data for placement interactions.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"customer_id": ExistingCustomerID,
		"products": []map[string]any{
			{"id": ExistingProductID, "quantity": 2},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
