package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AlertasHandler expone el slot de alarma del poller: la pantalla
// consulta la alarma actual y la marca como atendida.
type AlertasHandler struct{ poller *worker.AlertaPoller }

func NewAlertasHandler(poller *worker.AlertaPoller) *AlertasHandler {
	return &AlertasHandler{poller: poller}
}

// Actual godoc
// @Summary  Devuelve la alarma que está sonando, si hay
// @Tags     alertas
// @Produce  json
// @Success  200 {object} dto.AlertaResponse
// @Success  204 "Sin alarma activa"
// @Router   /v1/alertas/actual [get]
func (h *AlertasHandler) Actual(c *gin.Context) {
	alerta := h.poller.Actual()
	if alerta == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, alerta)
}

// Atender godoc
// @Summary  Marca la alarma como atendida y libera el slot
// @Tags     alertas
// @Param    id path string true "ID del recordatorio"
// @Success  204
// @Failure  400 {object} apierror.APIError
// @Router   /v1/alertas/{id}/atender [post]
func (h *AlertasHandler) Atender(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.poller.Atender(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
