package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ngandu/cimentmart/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsers returns all users
	GetUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser updates user profile fields
	UpdateUser(ctx context.Context, user models.User) error
}

// UserService implements UserService interface
type UserService struct {
	repo UserRepository
}

// NewUserService creates new UserService instance
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates new user with hashed password. Empty role defaults to
// the regular user role.
func (us *UserService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.NewString()
	user.PasswordHash = string(hash)
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	return us.repo.CreateUser(ctx, user)
}

// GetUser returns user by id
func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return us.repo.GetUserByID(ctx, id)
}

// ListUsers returns all users
func (us *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return us.repo.GetUsers(ctx)
}

// UpdateProfile updates user name and address fields
func (us *UserService) UpdateProfile(ctx context.Context, user models.User) error {
	return us.repo.UpdateUser(ctx, user)
}
