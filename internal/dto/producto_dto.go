package dto

import "github.com/shopspring/decimal"

type VarianteRequest struct {
	Nombre     string          `json:"nombre"      validate:"required"`
	Precio     decimal.Decimal `json:"precio"      validate:"required"`
	PesoGramos int             `json:"peso_gramos" validate:"min=0"`
}

// GuardarProductoRequest crea o actualiza un producto del menú. Al
// actualizar, las variantes reemplazan el juego anterior completo.
type GuardarProductoRequest struct {
	Nombre      string            `json:"nombre"      validate:"required"`
	Descripcion *string           `json:"descripcion"`
	Precio      decimal.Decimal   `json:"precio"`
	TipoMedida  string            `json:"tipo_medida" validate:"omitempty,oneof=unidad peso"`
	Activo      *bool             `json:"activo"`
	Variantes   []VarianteRequest `json:"variantes"   validate:"dive"`
}

type VarianteResponse struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	PesoGramos int             `json:"peso_gramos"`
}

type ProductoResponse struct {
	ID          string             `json:"id"`
	Nombre      string             `json:"nombre"`
	Descripcion *string            `json:"descripcion"`
	Precio      decimal.Decimal    `json:"precio"`
	TipoMedida  string             `json:"tipo_medida"`
	Activo      bool               `json:"activo"`
	Variantes   []VarianteResponse `json:"variantes"`
}

type ProductoFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
}
