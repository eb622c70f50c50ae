package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/models"
	"campusd/internal/services"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

func newAuthControllerFixture(t *testing.T) (*AuthController, services.AuthServiceInterface) {
	t.Helper()
	conf := &structures.Config{}
	conf.Auth.SigningKey = "unit-test-signing-key"
	conf.Auth.Issuer = "campusd"
	conf.Auth.TokenExpiry = time.Hour
	svc := services.NewAuthService(testutil.NewMockStore(), conf, &testutil.MockLogger{})
	return NewAuthController(&testutil.MockLogger{}, svc), svc
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	controller, _ := newAuthControllerFixture(t)

	rec := postJSON(controller.Register, `{"email":"ada@campus.edu","password":"lovelace","name":"Ada","role":"student","department":"CS"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeResponse(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@campus.edu", user["email"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}

func TestRegisterConflict(t *testing.T) {
	controller, _ := newAuthControllerFixture(t)

	rec := postJSON(controller.Register, `{"email":"ada@campus.edu","password":"lovelace","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(controller.Register, `{"email":"ada@campus.edu","password":"lovelace","name":"Ada"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	controller, svc := newAuthControllerFixture(t)
	_, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	rec := postJSON(controller.Login, `{"email":"ada@campus.edu","password":"lovelace"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	token, _ := user["token"].(string)
	assert.NotEmpty(t, token)

	identity, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@campus.edu", identity.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	controller, svc := newAuthControllerFixture(t)
	_, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	rec := postJSON(controller.Login, `{"email":"ada@campus.edu","password":"wrong"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(controller.Login, `{"email`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout(t *testing.T) {
	controller, _ := newAuthControllerFixture(t)
	rec := postJSON(controller.Logout, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
