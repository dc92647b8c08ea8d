package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotasHandler struct{ svc service.NotaService }

func NewNotasHandler(svc service.NotaService) *NotasHandler {
	return &NotasHandler{svc: svc}
}

// Crear godoc
// @Summary  Crea una nota del día
// @Tags     notas
// @Accept   json
// @Produce  json
// @Param    request body dto.CrearNotaRequest true "Nota"
// @Success  201 {object} dto.NotaResponse
// @Router   /v1/notas [post]
func (h *NotasHandler) Crear(c *gin.Context) {
	var req dto.CrearNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Lista notas: pendientes | resueltas | hoy | todas
// @Tags     notas
// @Produce  json
// @Param    filtro query string false "por defecto pendientes"
// @Success  200 {array} dto.NotaResponse
// @Router   /v1/notas [get]
func (h *NotasHandler) Listar(c *gin.Context) {
	var filter dto.NotaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar notas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasHandler) Resolver(c *gin.Context) {
	h.setResuelta(c, true)
}

func (h *NotasHandler) Reabrir(c *gin.Context) {
	h.setResuelta(c, false)
}

func (h *NotasHandler) setResuelta(c *gin.Context, resuelta bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.SetResuelta(c.Request.Context(), id, resuelta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
