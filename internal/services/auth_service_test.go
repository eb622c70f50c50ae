package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/apperr"
	"campusd/internal/models"
	"campusd/internal/structures"
	"campusd/internal/testutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *testutil.MockStore) {
	t.Helper()
	store := testutil.NewMockStore()
	conf := &structures.Config{}
	conf.Auth.SigningKey = "unit-test-signing-key"
	conf.Auth.Issuer = "campusd"
	conf.Auth.TokenExpiry = time.Hour
	svc := NewAuthService(store, conf, &testutil.MockLogger{}).(*AuthService)
	return svc, store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store := newAuthFixture(t)

	user, err := svc.Register("ada@campus.edu", "lovelace", "Ada Lovelace", models.RoleStudent, "CS")
	require.NoError(t, err)
	assert.NotEmpty(t, user.StudentID)
	assert.Equal(t, 1, store.Count("users", nil))

	// The stored hash never equals the plaintext.
	rec, ok := store.GetByID("users", user.ID)
	require.True(t, ok)
	assert.NotEqual(t, "lovelace", rec.GetString("password_hash", ""))

	got, token, err := svc.Login("ada@campus.edu", "lovelace")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)
	assert.False(t, got.LastLogin.IsZero())
}

func TestLoginDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	_, _, badEmail := svc.Login("nobody@campus.edu", "lovelace")
	_, _, badPassword := svc.Login("ada@campus.edu", "wrong")

	assert.ErrorIs(t, badEmail, apperr.ErrNotFound)
	assert.ErrorIs(t, badPassword, apperr.ErrNotFound)
	assert.Equal(t, badEmail.Error(), badPassword.Error())
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, store := newAuthFixture(t)
	user, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	_, _, err = store.Update("users", user.ID, map[string]any{"is_active": false})
	require.NoError(t, err)

	_, _, err = svc.Login("ada@campus.edu", "lovelace")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register("", "lovelace", "Ada", models.RoleStudent, "CS")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Register("ada@campus.edu", "short", "Ada", models.RoleStudent, "CS")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Register("ada@campus.edu", "lovelace", "Ada", "superuser", "CS")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Register("ada@campus.edu", "lovelace", "Ada", "", "CS")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	_, err = svc.Register("ada@campus.edu", "different", "Imposter", models.RoleStudent, "CS")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	user, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleFaculty, "CS")
	require.NoError(t, err)
	_, token, err := svc.Login("ada@campus.edu", "lovelace")
	require.NoError(t, err)

	identity, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, structures.Identity{ID: user.ID, Email: user.Email, Role: models.RoleFaculty}, identity)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, token, err := svc.Login("ada@campus.edu", "lovelace")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	svc, _ := newAuthFixture(t)
	other, _ := newAuthFixture(t)
	other.conf.Auth.SigningKey = "a-completely-different-key"

	_, err := other.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)
	_, token, err := other.Login("ada@campus.edu", "lovelace")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	user, err := svc.Register("ada@campus.edu", "lovelace", "Ada", models.RoleStudent, "CS")
	require.NoError(t, err)

	got, err := svc.CurrentUser(structures.Identity{ID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.CurrentUser(structures.Identity{ID: "ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
