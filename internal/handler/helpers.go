package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/tatanjbr/gestion-almuerzos/internal/apierror"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError traduce los errores de los servicios a HTTP: los
// rechazos de stock son 409 (el borrador quedó viejo, la pantalla debe
// refrescar disponibilidad), lo no encontrado es 404 y el resto 400.
func respondServiceError(c *gin.Context, err error) {
	var insuficiente *service.StockInsuficienteError
	var noDisponible *service.ProductoNoDisponibleError
	switch {
	case errors.As(err, &insuficiente), errors.As(err, &noDisponible):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case strings.Contains(err.Error(), "no encontrad"):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
