package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizpos/internal/dto"
	"bizpos/internal/middleware"
	"bizpos/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login godoc
// @Summary Authenticate and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.auth.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── User management (owner) ─────────────────────────────────────────────────

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.auth.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.auth.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.auth.DeactivateUser(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ReactivateUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.auth.ReactivateUser(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
