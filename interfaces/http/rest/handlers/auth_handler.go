package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Emmrex1/MusicApp/application/services"
	"github.com/Emmrex1/MusicApp/domain/identity"
	"github.com/Emmrex1/MusicApp/pkg/auth"
	"github.com/Emmrex1/MusicApp/pkg/common"
	"github.com/Emmrex1/MusicApp/pkg/utils"
)

// AuthHandler serves account registration, login, and profile.
type AuthHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the body of register, login, and profile responses.
type UserResponse struct {
	common.Envelope
	User  *identity.User `json:"user"`
	Token string         `json:"token,omitempty"`
}

// Register handles POST /users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, UserResponse{
		Envelope: common.Envelope{Success: true, Message: "User registered successfully"},
		User:     user,
		Token:    token,
	})
}

// Login handles POST /users/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, UserResponse{
		Envelope: common.Envelope{Success: true, Message: "Login successful"},
		User:     user,
		Token:    token,
	})
}

// Profile handles GET /users/me
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Failed to load profile",
			zap.String("userID", claims.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, UserResponse{
		Envelope: common.Envelope{Success: true, Message: "Profile"},
		User:     user,
	})
}
