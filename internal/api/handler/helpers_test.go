package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resihub/backend/internal/api"
	"resihub/backend/internal/models"
	"resihub/backend/internal/upload"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testResident() *models.User {
	return &models.User{
		ID:         "resident-a",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Role:       models.RoleResident,
		FlatNumber: "A-101",
	}
}

func testResidentB() *models.User {
	return &models.User{
		ID:    "resident-b",
		Name:  "Boris Ivanov",
		Email: "boris@example.com",
		Role:  models.RoleResident,
	}
}

func testAdmin() *models.User {
	return &models.User{
		ID:    "admin-1",
		Name:  "Site Manager",
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
}

func newTestRouter(t *testing.T, store *MockStorage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.RegisterRoutes(r, store, upload.NewStore(t.TempDir()), []byte(testSecret))
	return r
}

// expectPrincipal wires the auth middleware's user lookup for the given user.
func expectPrincipal(store *MockStorage, user *models.User) {
	store.On("GetUserByID", user.ID).Return(user, nil)
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	return doRequest(r, method, path, token, strings.NewReader(body), "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireFailure(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	require.Equal(t, status, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["success"])
	return body
}
