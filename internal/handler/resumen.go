package handler

import (
	"net/http"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumenHandler struct{ svc service.ResumenService }

func NewResumenHandler(svc service.ResumenService) *ResumenHandler {
	return &ResumenHandler{svc: svc}
}

// Resumen godoc
// @Summary  Cierre del día: ventas, cobros, stock restante y notas
// @Tags     resumen
// @Produce  json
// @Param    fecha query string false "YYYY-MM-DD; por defecto hoy"
// @Success  200 {object} dto.ResumenResponse
// @Router   /v1/resumen [get]
func (h *ResumenHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al armar el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
