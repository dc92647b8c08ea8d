package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary  Inicia sesión del operador
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    request body dto.LoginRequest true "Credenciales"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apierror.APIError
// @Router   /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
