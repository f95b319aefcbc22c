package service

import (
	"context"
	"errors"

	"github.com/ngandu/cimentmart/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates users and issues tokens
type AuthService struct {
	repo  UserRepository
	token TokenService
}

// NewAuthService creates new AuthService instance
func NewAuthService(repo UserRepository, token TokenService) *AuthService {
	return &AuthService{repo: repo, token: token}
}

// Login checks credentials and returns signed token with the user
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := as.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := as.token.CreateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
