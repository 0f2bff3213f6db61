package handler

import (
	"net/http"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/apierror"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/middleware"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary  Register a user
// @Tags     auth
// @Accept   x-www-form-urlencoded,json
// @Produce  json
// @Param    username formData string true "Username"
// @Param    password formData string true "Password"
// @Success  200 {object} apierror.Message
// @Failure  400 {object} apierror.APIError
// @Failure  422 {object} apierror.ValidationError
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindAnyAndValidate(c, &req) {
		return
	}
	if err := h.svc.Register(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.NewMessage("User registered successfully"))
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   x-www-form-urlencoded,json
// @Produce  json
// @Param    username formData string true "Username"
// @Param    password formData string true "Password"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apierror.APIError
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindAnyAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary   Current user
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} dto.UserResponse
// @Failure   401 {object} apierror.APIError
// @Router    /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
