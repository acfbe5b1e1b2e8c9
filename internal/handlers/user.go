package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/auth"
	"github.com/edutrack/apiserver/internal/services"
	"github.com/edutrack/apiserver/internal/store"
	"github.com/edutrack/apiserver/types"
)

// UserHandler provides HTTP handlers for user management.
type UserHandler struct {
	userService *services.UserService
	hasher      *auth.Hasher
	log         *logrus.Logger
}

// NewUserHandler constructs a handler with the provided dependencies.
func NewUserHandler(userService *services.UserService, hasher *auth.Hasher, log *logrus.Logger) *UserHandler {
	return &UserHandler{userService: userService, hasher: hasher, log: log}
}

// UserRouter registers user routes on the given router. Every route
// requires authentication; update and delete additionally require the
// superadmin role.
func UserRouter(
	r chi.Router,
	userService *services.UserService,
	hasher *auth.Hasher,
	authMiddleware func(http.Handler) http.Handler,
	log *logrus.Logger,
) {
	handler := NewUserHandler(userService, hasher, log)
	superadminOnly := RequireRoles(log, types.RoleSuperadmin)

	r.Use(authMiddleware)
	r.Post("/", handler.CreateUser)
	r.Get("/", handler.ListUsers)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.With(superadminOnly).Put("/", handler.UpdateUser)
		r.With(superadminOnly).Delete("/", handler.DeleteUser)
	})
}

type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Mobile      string `json:"mobile"`
	InstituteID *int   `json:"institute_id"`
	BatchID     string `json:"batch_id"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	Mobile      *string `json:"mobile"`
	InstituteID *int    `json:"institute_id"`
	BatchID     *string `json:"batch_id"`
	IsActive    *bool   `json:"is_active"`
}

// UserListResponse is the paginated list response payload.
type UserListResponse struct {
	Items []types.User `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	role, err := types.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.WithError(err).Error("hash password")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := h.userService.Create(r.Context(), types.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Mobile:       strings.TrimSpace(req.Mobile),
		InstituteID:  req.InstituteID,
		BatchID:      strings.TrimSpace(req.BatchID),
		IsActive:     true,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		h.log.WithError(err).Error("create user")
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.userService.List(r.Context(), offset, limit)
	if err != nil {
		h.log.WithError(err).Error("list users")
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, UserListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.WithError(err).Error("fetch user")
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.WithError(err).Error("fetch user")
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		role, err := types.ParseRole(strings.TrimSpace(*req.Role))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid role")
			return
		}
		user.Role = role
	}
	if req.Mobile != nil {
		user.Mobile = strings.TrimSpace(*req.Mobile)
	}
	if req.InstituteID != nil {
		user.InstituteID = req.InstituteID
	}
	if req.BatchID != nil {
		user.BatchID = strings.TrimSpace(*req.BatchID)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := h.hasher.Hash(*req.Password)
		if err != nil {
			h.log.WithError(err).Error("hash password")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		user.PasswordHash = hash
	}

	updated, err := h.userService.Update(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.WithError(err).Error("update user")
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.log.WithError(err).Error("delete user")
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}
