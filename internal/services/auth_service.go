package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"campusd/internal/apperr"
	"campusd/internal/models"
	"campusd/internal/providers"
	"campusd/internal/storage"
	"campusd/internal/structures"
)

const minPasswordLen = 6

type AuthServiceInterface interface {
	Login(email, password string) (models.User, string, error)
	Register(email, password, name, role, department string) (models.User, error)
	VerifyToken(token string) (structures.Identity, error)
	CurrentUser(identity structures.Identity) (models.User, error)
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	store  storage.StoreInterface
	conf   *structures.Config
	logger providers.Logger
	now    func() time.Time
}

func NewAuthService(store storage.StoreInterface, conf *structures.Config, logger providers.Logger) AuthServiceInterface {
	return &AuthService{
		store:  store,
		conf:   conf,
		logger: logger,
		now:    time.Now,
	}
}

// Login verifies the password, stamps last_login and returns the user with
// a signed bearer token. Unknown email and bad password both come back as
// NotFound so the response does not leak which one was wrong.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	matches := s.store.GetByField("users", "email", email)
	if len(matches) == 0 {
		return models.User{}, "", apperr.NotFound("user")
	}

	user := models.UserFromRecord(matches[0])
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", apperr.NotFound("user")
	}
	if !user.IsActive {
		return models.User{}, "", apperr.Conflict("account is deactivated")
	}

	now := s.now()
	if _, _, err := s.store.Update("users", user.ID, map[string]any{"last_login": now.Format(time.RFC3339Nano)}); err != nil {
		s.logger.Warnf(providers.TypeApp, "Failed to stamp last_login for %s: %s", user.ID, err)
	}
	user.LastLogin = now

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Register(email, password, name, role, department string) (models.User, error) {
	if email == "" || name == "" {
		return models.User{}, apperr.Validation("email and name required")
	}
	if len(password) < minPasswordLen {
		return models.User{}, apperr.Validation("password must be at least 6 characters")
	}
	switch role {
	case models.RoleStudent, models.RoleFaculty, models.RoleAdmin:
	case "":
		role = models.RoleStudent
	default:
		return models.User{}, apperr.Validation("unknown role")
	}
	if len(s.store.GetByField("users", "email", email)) > 0 {
		return models.User{}, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.NewUser(email, name, role, department, s.now())
	user.PasswordHash = string(hash)
	if _, err := s.store.Create("users", user.ToRecord()); err != nil {
		return models.User{}, err
	}

	s.logger.Infof(providers.TypeApp, "Registered %s user %s", role, user.ID)
	return user, nil
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.conf.Auth.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.conf.Auth.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.conf.Auth.SigningKey))
}

// VerifyToken parses and validates a bearer token, returning the embedded
// identity. Implements the providers.IdentityVerifier boundary.
func (s *AuthService) VerifyToken(token string) (structures.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.conf.Auth.SigningKey), nil
	})
	if err != nil {
		return structures.Identity{}, apperr.Validation("invalid token")
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return structures.Identity{}, apperr.Validation("invalid token")
	}
	if s.conf.Auth.Issuer != "" && claims.Issuer != s.conf.Auth.Issuer {
		return structures.Identity{}, apperr.Validation("issuer mismatch")
	}
	return structures.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func (s *AuthService) CurrentUser(identity structures.Identity) (models.User, error) {
	rec, ok := s.store.GetByID("users", identity.ID)
	if !ok {
		return models.User{}, apperr.NotFound("user")
	}
	return models.UserFromRecord(rec), nil
}
