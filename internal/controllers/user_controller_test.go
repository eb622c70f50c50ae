package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

type userFixture struct {
	controller *UserController
	store      *testutil.MockStore
	verifier   *stubVerifier
}

func newUserControllerFixture(t *testing.T) *userFixture {
	t.Helper()
	store := testutil.NewMockStore()
	store.Seed("users",
		storage.Record{"id": "stu-1", "name": "Ada Lovelace", "email": "ada@campus.edu", "role": "student", "department": "CS", "password_hash": "$2a$10$secret", "created_at": "2026-01-01T00:00:00Z"},
		storage.Record{"id": "fac-1", "name": "Grace Hopper", "email": "grace@campus.edu", "role": "faculty", "department": "CS", "password_hash": "$2a$10$secret"},
	)
	verifier := &stubVerifier{identities: map[string]structures.Identity{
		"stu-token": {ID: "stu-1", Role: models.RoleStudent},
		"adm-token": {ID: "adm-1", Role: models.RoleAdmin},
	}}
	return &userFixture{
		controller: NewUserController(&testutil.MockLogger{}, store),
		store:      store,
		verifier:   verifier,
	}
}

func (f *userFixture) do(t *testing.T, handler http.HandlerFunc, token, target, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	if id != "" {
		req.SetPathValue("id", id)
	}
	rec := httptest.NewRecorder()
	providers.AuthMiddleware(f.verifier, handler).ServeHTTP(rec, req)
	return rec
}

func TestDirectorySearch(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Directory, "stu-token", "/?q=GRACE", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	users := decodeResponse(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	entry := users[0].(map[string]any)
	assert.Equal(t, "Grace Hopper", entry["name"])
	_, leaked := entry["password_hash"]
	assert.False(t, leaked, "directory entries carry only public fields")
}

func TestDirectoryUnfiltered(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Directory, "stu-token", "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResponse(t, rec)["users"].([]any), 2)
}

func TestGetOwnProfile(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Get, "stu-token", "/", "stu-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	user := decodeResponse(t, rec)["user"].(map[string]any)
	assert.Equal(t, "ada@campus.edu", user["email"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)
}

func TestGetOtherProfileForbidden(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Get, "stu-token", "/", "fac-1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetAnyProfileAsAdmin(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Get, "adm-token", "/", "fac-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStripsProtectedFields(t *testing.T) {
	f := newUserControllerFixture(t)

	body := `{"name":"Ada L.","role":"admin","email":"evil@campus.edu","password_hash":"x","id":"other","created_at":"1999-01-01"}`
	rec := f.do(t, f.controller.Update, "stu-token", "/", "stu-1", body)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok := f.store.GetByID("users", "stu-1")
	require.True(t, ok)
	assert.Equal(t, "Ada L.", stored.GetString("name", ""))
	assert.Equal(t, "student", stored.GetString("role", ""), "non-admins cannot change roles")
	assert.Equal(t, "ada@campus.edu", stored.GetString("email", ""))
	assert.Equal(t, "$2a$10$secret", stored.GetString("password_hash", ""))
	assert.Equal(t, "2026-01-01T00:00:00Z", stored.GetString("created_at", ""))
}

func TestUpdateRoleAsAdmin(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Update, "adm-token", "/", "stu-1", `{"role":"faculty"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := f.store.GetByID("users", "stu-1")
	assert.Equal(t, "faculty", stored.GetString("role", ""))
}

func TestUpdateOtherProfileForbidden(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Update, "stu-token", "/", "fac-1", `{"name":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored, _ := f.store.GetByID("users", "fac-1")
	assert.Equal(t, "Grace Hopper", stored.GetString("name", ""))
}

func TestUpdateMissingUser(t *testing.T) {
	f := newUserControllerFixture(t)

	rec := f.do(t, f.controller.Update, "adm-token", "/", "ghost", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNoEffectiveFields(t *testing.T) {
	f := newUserControllerFixture(t)

	// Only protected fields in the body leaves nothing to apply.
	rec := f.do(t, f.controller.Update, "stu-token", "/", "stu-1", `{"email":"evil@campus.edu"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
