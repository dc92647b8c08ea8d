package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Listar godoc
// @Summary  Lista el stock del día, una fila por producto activo
// @Tags     stock
// @Produce  json
// @Param    fecha query string false "YYYY-MM-DD; por defecto hoy"
// @Success  200 {array} dto.StockResponse
// @Router   /v1/stock [get]
func (h *StockHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarStock(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar el stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Iniciar godoc
// @Summary  Fija el stock del día de un producto (inicial = disponible)
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    producto_id path string true "ID del producto"
// @Param    request body dto.IniciarStockRequest true "Cantidad"
// @Success  200 {object} dto.StockResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/stock/{producto_id} [put]
func (h *StockHandler) Iniciar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.IniciarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.IniciarStock(c.Request.Context(), id, c.Query("fecha"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Toggle godoc
// @Summary  Invierte el interruptor de disponibilidad del día
// @Tags     stock
// @Produce  json
// @Param    producto_id path string true "ID del producto"
// @Success  200 {object} dto.StockResponse
// @Router   /v1/stock/{producto_id}/disponible [patch]
func (h *StockHandler) Toggle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ToggleDisponible(c.Request.Context(), id, c.Query("fecha"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ajustar godoc
// @Summary  Ajusta la cantidad disponible (pasos o valor absoluto)
// @Tags     stock
// @Accept   json
// @Produce  json
// @Param    producto_id path string true "ID del producto"
// @Param    request body dto.AjustarCantidadRequest true "Ajuste"
// @Success  200 {object} dto.StockResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/stock/{producto_id}/cantidad [patch]
func (h *StockHandler) Ajustar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarCantidad(c.Request.Context(), id, c.Query("fecha"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
