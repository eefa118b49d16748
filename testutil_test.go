package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery staple"
)

// setupTest swaps the package-level database for an in-memory sqlite with a
// seeded admin and returns the full router.
func setupTest(t *testing.T) http.Handler {
	t.Helper()
	logger = zerolog.Nop()
	t.Setenv("UPLOAD_DIR", t.TempDir())

	var err error
	db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one shared in-memory database

	require.NoError(t, db.AutoMigrate(
		&AdminUser{}, &Category{}, &Settings{},
		&Project{}, &Skill{}, &Research{}, &Achievement{},
		&Blog{}, &Interest{}, &CurrentWork{},
	))

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&AdminUser{
		Email:        testAdminEmail,
		PasswordHash: string(hash),
		Name:         "Test Admin",
	}).Error)

	c.Flush()
	require.NoError(t, ensureUploadDir())
	return newRouter()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, h http.Handler, method, path, token string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func adminToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
