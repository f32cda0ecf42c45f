package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notesai/internal/auth/model"
	"notesai/internal/common"
	"notesai/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const TokenType = "bearer"

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*model.UserEntity, error)
	GetByEmail(ctx context.Context, email string) (*model.UserEntity, error)
}

// AuthService hashes passwords, mints HS256 access tokens carrying the user's
// email as subject, and resolves tokens back to users.
type AuthService struct {
	Repo      UserStore
	secret    []byte
	ttl       time.Duration
	cost      int
	now       func() time.Time
	dummyHash []byte
}

func NewAuthService(repo UserStore, secret []byte, ttl time.Duration) *AuthService {
	return newAuthService(repo, secret, ttl, bcrypt.DefaultCost)
}

func newAuthService(repo UserStore, secret []byte, ttl time.Duration, cost int) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &AuthService{
		Repo:      repo,
		secret:    secret,
		ttl:       ttl,
		cost:      cost,
		now:       time.Now,
		dummyHash: dummy,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is longer than 72 bytes", common.ErrValidation)
		}
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) CreateToken(email string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	return token.SignedString(s.secret)
}

// ResolveCurrentUser verifies the token and loads its subject. Every failure,
// including a subject that no longer exists, is ErrUnauthenticated.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, tokenString string) (*model.UserEntity, error) {
	if tokenString == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		logger.Sugar.Debugf("Invalid token: %v", err)
		return nil, common.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.Repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Signup registers the user and logs them in.
func (s *AuthService) Signup(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", common.ErrConflict
	case !errors.Is(err, common.ErrNotFound):
		return "", err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}
	user, err := s.Repo.Create(ctx, email, hash)
	if err != nil {
		return "", err
	}
	logger.Sugar.Infow("User signed up", "user_id", user.ID)
	return s.CreateToken(user.Email)
}

// Login returns the same error whether the email is unknown or the password
// is wrong, and spends a bcrypt comparison in both cases.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", common.ErrUnauthenticated
		}
		return "", err
	}
	if !s.VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrUnauthenticated
	}
	return s.CreateToken(user.Email)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	return nil
}
