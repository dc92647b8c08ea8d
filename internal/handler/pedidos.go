package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Disponibilidad godoc
// @Summary  Evalúa el borrador: disponibilidad por línea y totales
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    request body dto.BorradorRequest true "Borrador completo"
// @Success  200 {object} dto.DisponibilidadResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/pedidos/disponibilidad [post]
func (h *PedidosHandler) Disponibilidad(c *gin.Context) {
	var req dto.BorradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Disponibilidad(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary  Confirma el borrador como pedido del día
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    request body dto.BorradorRequest true "Borrador completo"
// @Success  201 {object} dto.PedidoResponse
// @Failure  400 {object} apierror.APIError
// @Failure  409 {object} apierror.APIError "Stock insuficiente"
// @Router   /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.BorradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPedido(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Lista los pedidos del día con filtro por estado visual
// @Tags     pedidos
// @Produce  json
// @Param    fecha query string false "YYYY-MM-DD; por defecto hoy"
// @Param    vista query string false "todos | preparando | sin_pagar | no_pagado | completado"
// @Success  200 {array} dto.PedidoResponse
// @Router   /v1/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListPedidos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Detalle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Detalle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary  Avanza el pedido a despachado (domicilio) o entregado (local)
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    id path string true "ID del pedido"
// @Param    request body dto.CambiarEstadoRequest true "Estado destino"
// @Success  200 {object} dto.PedidoResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/pedidos/{id}/estado [patch]
func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EditarTotal godoc
// @Summary  Corrige el total de un pedido confirmado; nunca toca stock
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    id path string true "ID del pedido"
// @Param    request body dto.EditarTotalRequest true "Total nuevo"
// @Success  200 {object} dto.PedidoResponse
// @Router   /v1/pedidos/{id}/total [patch]
func (h *PedidosHandler) EditarTotal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EditarTotalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarTotal(c.Request.Context(), id, req.Total)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary  Registra el único pago del pedido con el total vigente
// @Tags     pedidos
// @Accept   json
// @Produce  json
// @Param    id path string true "ID del pedido"
// @Param    request body dto.RegistrarPagoRequest true "Método de pago"
// @Success  200 {object} dto.PedidoResponse
// @Failure  400 {object} apierror.APIError
// @Router   /v1/pedidos/{id}/pago [post]
func (h *PedidosHandler) RegistrarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary  Borra el pedido sin reponer stock
// @Tags     pedidos
// @Param    id path string true "ID del pedido"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/pedidos/{id} [delete]
func (h *PedidosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.EliminarPedido(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clientes godoc
// @Summary  Lista los clientes conocidos para el autocompletado
// @Tags     pedidos
// @Produce  json
// @Success  200 {array} dto.ClienteResponse
// @Router   /v1/clientes [get]
func (h *PedidosHandler) Clientes(c *gin.Context) {
	resp, err := h.svc.ListClientes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
