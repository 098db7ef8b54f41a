package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginMe(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"full_name": "Lina Haddad",
		"email":     "lina@example.com",
		"password":  "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeObject(t, w)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "student", user["role_name"])
	assert.Equal(t, "lina@example.com", user["email"])

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "Lina@Example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeObject(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	me, ok := decodeObject(t, w)["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "lina@example.com", me["email"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := setupTest(t)

	payload := map[string]any{
		"full_name": "Sami Ben Ali",
		"email":     "sami@example.com",
		"password":  "password123",
	}

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decodeObject(t, w)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTest(t)
	createTestUser(t, "Nora Kassab", "nora@example.com", "student")

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nora@example.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email or password", decodeObject(t, w)["error"])
}

func TestMeRequiresToken(t *testing.T) {
	r := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication_required", decodeObject(t, w)["code"])
}
