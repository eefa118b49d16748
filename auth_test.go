package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAndProtectedRoute(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user AdminUser
	decodeBody(t, rec, &user)
	assert.Equal(t, testAdminEmail, user.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h := setupTest(t)

	wrongPassword := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "nope",
	})
	unknownEmail := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "stranger@example.com",
		"password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	h := setupTest(t)

	rec := doJSON(t, h, http.MethodPost, "/projects", "", map[string]string{"title": "X", "description": "Y"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/projects", "not-a-jwt", map[string]string{"title": "X", "description": "Y"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := doJSON(t, h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, req.Code)
}

func TestUpdatePassword(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPut, "/auth/updatepassword", token, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "a brand new password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/auth/updatepassword", token, map[string]string{
		"currentPassword": testAdminPassword,
		"newPassword":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/auth/updatepassword", token, map[string]string{
		"currentPassword": testAdminPassword,
		"newPassword":     "a brand new password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password no longer works, new one does.
	old := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "a brand new password",
	})
	assert.Equal(t, http.StatusOK, fresh.Code)

	// Tokens issued before the change stay valid until expiry.
	me := doJSON(t, h, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
}
