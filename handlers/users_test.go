package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopkart-io/shopkart-backend-go/models"
)

func seedUser(t *testing.T, users *fakeUserStore, email, password string, isAdmin bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Asha",
		Email:     email,
		Password:  string(hashed),
		IsAdmin:   isAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, users.Create(nil, user))
	return user
}

func TestRegisterCreatesUserWithToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newTestEcho()
	users := newFakeUserStore()
	h := NewUserHandler(users)

	body := `{"name": "Asha", "email": "asha@example.com", "password": "supersecret"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/users", body)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "asha@example.com", resp.Email)
	assert.False(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.Token)

	stored, err := users.GetByEmail(nil, "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.Password, "password must be stored hashed")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e := newTestEcho()
	users := newFakeUserStore()
	h := NewUserHandler(users)
	seedUser(t, users, "asha@example.com", "supersecret", false)

	body := `{"name": "Asha", "email": "asha@example.com", "password": "supersecret"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/users", body)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(newFakeUserStore())

	body := `{"name": "Asha", "email": "asha@example.com", "password": "short"}`
	c, _ := newTestContext(e, http.MethodPost, "/api/users", body)

	err := h.Register(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := newTestEcho()
	users := newFakeUserStore()
	h := NewUserHandler(users)
	seedUser(t, users, "asha@example.com", "supersecret", true)

	t.Run("valid credentials", func(t *testing.T) {
		body := `{"email": "asha@example.com", "password": "supersecret"}`
		c, rec := newTestContext(e, http.MethodPost, "/api/users/login", body)

		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp authResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsAdmin)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"email": "asha@example.com", "password": "wrongpassword"}`
		c, rec := newTestContext(e, http.MethodPost, "/api/users/login", body)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		body := `{"email": "nobody@example.com", "password": "supersecret"}`
		c, rec := newTestContext(e, http.MethodPost, "/api/users/login", body)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateProfileChangesOnlyProvidedFields(t *testing.T) {
	e := newTestEcho()
	users := newFakeUserStore()
	h := NewUserHandler(users)
	user := seedUser(t, users, "asha@example.com", "supersecret", false)

	body := `{"name": "Asha K"}`
	c, rec := newTestContext(e, http.MethodPut, "/api/users/profile", body)
	c.Set("userID", user.ID)

	require.NoError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := users.GetByID(nil, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", stored.Name)
	assert.Equal(t, "asha@example.com", stored.Email)
	assert.Equal(t, user.Password, stored.Password)
}
