package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertUserQuery = `
						INSERT INTO users (id, name, email, password_hash, role, address, city)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING id, name, email, password_hash, role, address, city, created_at
`
	selectUserByEmailQuery = `
						SELECT id, name, email, password_hash, role, address, city, created_at FROM users
						WHERE email = $1
`
	selectUserByIDQuery = `
						SELECT id, name, email, password_hash, role, address, city, created_at FROM users
						WHERE id = $1
`
	selectUsersQuery = `
						SELECT id, name, email, password_hash, role, address, city, created_at FROM users
						ORDER BY created_at DESC
`
	updateUserQuery = `
						UPDATE users
						SET name = $1, address = $2, city = $3
						WHERE id = $4
`
)

// UserRepository implements UserRepository interface
type UserRepository struct {
	db *postgres.DB
}

// NewUserRepository creates new UserRepository instance
func NewUserRepository(db *postgres.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts new user to database
func (ur *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := ur.db.QueryRow(ctx, insertUserQuery, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Address, user.City).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Address, &user.City, &user.CreatedAt)
	if err != nil {
		if errCode := ur.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail returns user by email
func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	err := ur.db.QueryRow(ctx, selectUserByEmailQuery, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Address, &user.City, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns user by id
func (ur *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := models.User{}
	err := ur.db.QueryRow(ctx, selectUserByIDQuery, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Address, &user.City, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUsers returns all users
func (ur *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := ur.db.Query(ctx, selectUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}

	for rows.Next() {
		user := models.User{}
		err = rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Address, &user.City, &user.CreatedAt)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser updates user profile fields
func (ur *UserRepository) UpdateUser(ctx context.Context, user models.User) error {
	cmd, err := ur.db.Exec(ctx, updateUserQuery, user.Name, user.Address, user.City, user.ID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
