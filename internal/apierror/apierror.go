// Package apierror define el sobre de error que viaja en toda respuesta
// 4xx/5xx. Los handlers solo devuelven errores por acá, con mensajes
// pensados para la pantalla del operador y sin detalles internos.
package apierror

// APIError lleva un único mensaje legible en el campo detail.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrega al sobre el detalle campo a campo de un
// request que no pasó validación.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
