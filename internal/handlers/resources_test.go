package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestResource(t *testing.T, r http.Handler, name string, quantity int) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/resources", "", map[string]any{
		"type":               "equipment",
		"name":               name,
		"quantity_available": quantity,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return uint(decodeObject(t, w)["id"].(float64))
}

func TestResourceRequestQuantityCheck(t *testing.T) {
	r := setupTest(t)

	startup := createTestStartup(t, "CleanWave", nil)
	resourceID := createTestResource(t, r, "Laptop", 10)

	w := doRequest(t, r, http.MethodPost, "/api/resource-requests", "", map[string]any{
		"startup_id":         startup.ID,
		"resource_id":        resourceID,
		"quantity_requested": 15,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "insufficient_resource", decodeObject(t, w)["code"])

	w = doRequest(t, r, http.MethodPost, "/api/resource-requests", "", map[string]any{
		"startup_id":         startup.ID,
		"resource_id":        resourceID,
		"quantity_requested": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pending", decodeObject(t, w)["status"])
}

func TestResourceRequestStatusUpdateRequiresAdmin(t *testing.T) {
	r := setupTest(t)

	startup := createTestStartup(t, "CleanWave", nil)
	resourceID := createTestResource(t, r, "Desk", 4)

	w := doRequest(t, r, http.MethodPost, "/api/resource-requests", "", map[string]any{
		"startup_id":         startup.ID,
		"resource_id":        resourceID,
		"quantity_requested": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := decodeObject(t, w)["id"].(float64)

	path := fmt.Sprintf("/api/resource-requests/%d/status", int(requestID))

	w = doRequest(t, r, http.MethodPut, path, "", map[string]any{"status": "approved"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	admin := createTestUser(t, "Admin One", "admin@example.com", "admin")

	w = doRequest(t, r, http.MethodPut, path, tokenFor(t, admin), map[string]any{"status": "granted"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", decodeObject(t, w)["code"])

	w = doRequest(t, r, http.MethodPut, path, tokenFor(t, admin), map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", decodeObject(t, w)["status"])
}

func TestCreateResourceRejectsNegativeQuantity(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/api/resources", "", map[string]any{
		"type":               "equipment",
		"name":               "Monitor",
		"quantity_available": -3,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceAllocation(t *testing.T) {
	r := setupTest(t)

	startup := createTestStartup(t, "CleanWave", nil)
	resourceID := createTestResource(t, r, "Laptop", 10)

	w := doRequest(t, r, http.MethodPost, "/api/resource-requests", "", map[string]any{
		"startup_id":         startup.ID,
		"resource_id":        resourceID,
		"quantity_requested": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := decodeObject(t, w)["id"].(float64)

	w = doRequest(t, r, http.MethodPost, "/api/resource-allocations", "", map[string]any{
		"request_id":         int(requestID),
		"allocated_quantity": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/resource-allocations", "", map[string]any{
		"request_id":         9999,
		"allocated_quantity": 1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/resource-allocations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeArray(t, w), 1)
}
