package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/doughlab/authd/internal/authd/domain"
	"github.com/doughlab/authd/internal/authd/service"
	"github.com/doughlab/authd/internal/authd/store"
	"github.com/doughlab/authd/pkg/httpx"
	"github.com/doughlab/authd/pkg/slogx"
)

// UsersHandler is the admin surface for user management.
type UsersHandler struct {
	Users *service.UserService
}

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=customer admin manager"`
	TenantID  *int64 `json:"tenantId" validate:"omitempty,gt=0"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=customer admin manager"`
	TenantID  *int64 `json:"tenantId" validate:"omitempty,gt=0"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TenantID  *int64    `json:"tenantId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func userResponse(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		TenantID:  u.TenantID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type listResponse[T any] struct {
	Data    []T `json:"data"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Users.CreateUser(ctx, service.CreateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		TenantID:  req.TenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusBadRequest, "email_taken", "an account with this email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "unknown role")
		default:
			log.Error("create user failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "create user failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]int64{"id": user.ID})
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	filter := store.UserFilter{
		Query:   r.URL.Query().Get("q"),
		Role:    r.URL.Query().Get("role"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 20),
	}

	users, total, err := h.Users.ListUsers(ctx, filter)
	if err != nil {
		log.Error("list users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "list users failed")
		return
	}

	data := make([]userDTO, 0, len(users))
	for _, u := range users {
		data = append(data, userResponse(u))
	}

	httpx.WriteJSON(w, http.StatusOK, listResponse[userDTO]{
		Data:    data,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "user does not exist")
			return
		}
		log.Error("get user failed", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "get user failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Users.UpdateUser(ctx, id, service.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		TenantID:  req.TenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "user does not exist")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusBadRequest, "email_taken", "an account with this email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "unknown role")
		default:
			log.Error("update user failed", "user_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "update user failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "user does not exist")
			return
		}
		log.Error("delete user failed", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "delete user failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// pathID parses the {id} path segment; writes a 400 and returns false when it
// is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
