package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ballknowledge/ballknowledge-go/internal/api/request"
	"github.com/ballknowledge/ballknowledge-go/internal/api/response"
	"github.com/ballknowledge/ballknowledge-go/internal/services/users"
)

// UserHandler handles user endpoints
type UserHandler struct {
	users users.ServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(users users.ServiceInterface) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	user, err := h.users.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}
