package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotification(t *testing.T, userID uint, message string) models.Notification {
	t.Helper()

	notification := models.Notification{Type: "info", Message: message, UserID: userID}
	require.NoError(t, db.DB.Create(&notification).Error)
	return notification
}

func TestListNotificationsScopedToCaller(t *testing.T) {
	r := setupTest(t)

	alice := createTestUser(t, "Alice", "alice@example.com", "student")
	bob := createTestUser(t, "Bob", "bob@example.com", "student")

	createTestNotification(t, alice.ID, "for alice")
	createTestNotification(t, bob.ID, "for bob")

	w := doRequest(t, r, http.MethodGet, "/api/notifications", tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	notifications := decodeArray(t, w)
	require.Len(t, notifications, 1)
	assert.Equal(t, "for alice", notifications[0]["message"])
}

func TestMarkNotificationRead(t *testing.T) {
	r := setupTest(t)

	alice := createTestUser(t, "Alice", "alice@example.com", "student")
	notification := createTestNotification(t, alice.ID, "deadline soon")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notification.ID),
		tokenFor(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Notification
	require.NoError(t, db.DB.First(&reloaded, notification.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestNotificationOwnershipEnforced(t *testing.T) {
	r := setupTest(t)

	alice := createTestUser(t, "Alice", "alice@example.com", "student")
	bob := createTestUser(t, "Bob", "bob@example.com", "student")
	notification := createTestNotification(t, alice.ID, "private")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notification.ID),
		tokenFor(t, bob), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "permission_denied", decodeObject(t, w)["code"])

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID),
		tokenFor(t, bob), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admins may act on any notification.
	admin := createTestUser(t, "Admin", "admin@example.com", "admin")
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID),
		tokenFor(t, admin), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestNotificationsRequireAuth(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/notifications", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
