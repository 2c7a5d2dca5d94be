package handler_test

import (
	"net/http"
	"testing"

	"resihub/backend/internal/models"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"email":"a@example.com","password":"secret"}`},
		{"no email", `{"name":"Asha","password":"secret"}`},
		{"no password", `{"name":"Asha","email":"a@example.com"}`},
		{"not json", `title=x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStorage)
			r := newTestRouter(t, store)

			w := doJSON(r, http.MethodPost, "/api/auth/register", "", tt.body)

			requireFailure(t, w, http.StatusBadRequest)
			store.AssertNotCalled(t, "CreateUser", mock.Anything)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	store := new(MockStorage)
	store.On("GetUserByEmail", "asha@example.com").Return(nil, nil)

	var created *models.User
	store.On("CreateUser", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.User)
			created.ID = "user-1"
		}).Return(nil)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		`{"name":"Asha Rao","email":"Asha@Example.com","password":"secret123","flatNumber":"A-101"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	require.NotNil(t, created)
	assert.Equal(t, models.RoleResident, created.Role, "registration always produces a resident")
	assert.Equal(t, "asha@example.com", created.Email, "email is normalized")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))

	// the returned token must encode the new user's ID
	tokenString := body["token"].(string)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["id"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := new(MockStorage)
	store.On("GetUserByEmail", "asha@example.com").Return(testResident(), nil)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodPost, "/api/auth/register", "",
		`{"name":"Asha Rao","email":"asha@example.com","password":"secret123"}`)

	body := requireFailure(t, w, http.StatusBadRequest)
	assert.Equal(t, "Email is already registered", body["message"])
	store.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := testResident()
	user.PasswordHash = string(hash)

	store := new(MockStorage)
	store.On("GetUserByEmail", user.Email).Return(user, nil)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodPost, "/api/auth/login", "",
		`{"email":"asha@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	returned := body["user"].(map[string]interface{})
	assert.Equal(t, user.Email, returned["email"])
	assert.NotContains(t, returned, "PasswordHash")
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := testResident()
	user.PasswordHash = string(hash)

	store := new(MockStorage)
	store.On("GetUserByEmail", user.Email).Return(user, nil)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodPost, "/api/auth/login", "",
		`{"email":"asha@example.com","password":"wrong"}`)

	body := requireFailure(t, w, http.StatusUnauthorized)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	store := new(MockStorage)
	store.On("GetUserByEmail", "ghost@example.com").Return(nil, nil)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodPost, "/api/auth/login", "",
		`{"email":"ghost@example.com","password":"whatever"}`)

	requireFailure(t, w, http.StatusUnauthorized)
}

func TestMe_ReturnsProfile(t *testing.T) {
	resident := testResident()
	store := new(MockStorage)
	expectPrincipal(store, resident)

	r := newTestRouter(t, store)
	w := doJSON(r, http.MethodGet, "/api/auth/me", tokenFor(t, resident.ID), "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, resident.Email, user["email"])
	assert.Equal(t, resident.FlatNumber, user["flatNumber"])
}
