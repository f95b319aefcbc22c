package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
	"github.com/ngandu/cimentmart/internal/service"
)

// UserService is interface for user registration and profile management
type UserService interface {
	// Register creates new user with hashed password
	Register(ctx context.Context, user *models.User, password string) (*models.User, error)
	// GetUser returns user by id
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateProfile updates user name and address fields
	UpdateProfile(ctx context.Context, user models.User) error
}

// UserHandler represents HTTP handler for user-related requests
type UserHandler struct {
	svc   UserService
	token service.TokenService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(svc UserService, token service.TokenService) *UserHandler {
	return &UserHandler{svc: svc, token: token}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Address:   user.Address,
		City:      user.City,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterUser registers new user and signs them in
// 200 — пользователь успешно зарегистрирован и аутентифицирован;
// 400 — неверный формат запроса;
// 409 — адрес электронной почты уже занят;
// 500 — внутренняя ошибка сервера.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := registerRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Name == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, err := uh.svc.Register(r.Context(), &models.User{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			City:    req.City,
		}, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "email already in use", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		token, err := uh.token.CreateToken(user)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		setAuthCookie(w, token)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// GetUserProfile returns the authenticated user's profile
// 200 — успешная обработка запроса;
// 401 — пользователь не аутентифицирован;
// 404 — пользователь не найден;
// 500 — внутренняя ошибка сервера.
func (uh *UserHandler) GetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := uh.svc.GetUser(r.Context(), payload.UserID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}

// UpdateUserProfile updates the authenticated user's name and address
// 200 — профиль успешно обновлён;
// 400 — неверный формат запроса;
// 401 — пользователь не аутентифицирован;
// 404 — пользователь не найден;
// 500 — внутренняя ошибка сервера.
func (uh *UserHandler) UpdateUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := updateProfileRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Name == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		err := uh.svc.UpdateProfile(r.Context(), models.User{
			ID:      payload.UserID,
			Name:    req.Name,
			Address: req.Address,
			City:    req.City,
		})
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := uh.svc.GetUser(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
