package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsDefaultsBeforeFirstWrite(t *testing.T) {
	h := setupTest(t)

	rec := doJSON(t, h, http.MethodGet, "/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var settings Settings
	decodeBody(t, rec, &settings)
	assert.Empty(t, settings.Name)
	assert.NotNil(t, settings.SocialLinks)
	assert.False(t, settings.IsAvailableForHire)
}

func TestUpdateSettingsUpserts(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPut, "/settings", token, map[string]interface{}{
		"name":               "Ada",
		"isAvailableForHire": true,
		"socialLinks":        map[string]string{"github": "https://github.com/ada"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Second write patches the same row.
	rec = doJSON(t, h, http.MethodPut, "/settings", token, map[string]interface{}{
		"tagline": "building things",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	get := doJSON(t, h, http.MethodGet, "/settings", "", nil)
	var settings Settings
	decodeBody(t, get, &settings)
	assert.Equal(t, "Ada", settings.Name)
	assert.Equal(t, "building things", settings.Tagline)
	assert.Equal(t, "https://github.com/ada", settings.SocialLinks["github"])

	var count int64
	require.NoError(t, db.Model(&Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSettingsRejectsUnknownProvider(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPut, "/settings", token, map[string]interface{}{
		"socialLinks": map[string]string{"myspace": "https://example.com"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadProfileImage(t *testing.T) {
	h := setupTest(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPut, "/settings/profile-image", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	up := doMultipart(t, h, http.MethodPut, "/settings/profile-image", token,
		nil, map[string][]byte{"profileImage": []byte("avatar-bytes")})
	require.Equal(t, http.StatusOK, up.Code, up.Body.String())

	var resp map[string]string
	decodeBody(t, up, &resp)
	require.True(t, strings.HasPrefix(resp["profileImage"], "/uploads/"))

	get := doJSON(t, h, http.MethodGet, "/settings", "", nil)
	var settings Settings
	decodeBody(t, get, &settings)
	assert.Equal(t, resp["profileImage"], settings.ProfileImage)
}
