package services

import (
	"context"
	"errors"
	"time"

	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid login credentials")

type AuthService struct {
	admins repository.AdminRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(admins repository.AdminRepository, secret string) *AuthService {
	return &AuthService{
		admins: admins,
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// Login checks admin credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID.String(),
		"username": admin.Username,
		"role":     "admin",
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadCredentials
	}
	return claims, nil
}

// Bootstrap creates the initial admin account when none exists yet.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.admins.FindByUsername(ctx, username)
	if err == nil {
		return nil // already provisioned
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.admins.Create(ctx, &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
}
