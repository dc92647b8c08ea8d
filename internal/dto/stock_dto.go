package dto

import "github.com/shopspring/decimal"

// IniciarStockRequest fija el stock del día: inicial = disponible = cantidad.
type IniciarStockRequest struct {
	Cantidad decimal.Decimal `json:"cantidad" validate:"required"`
}

// AjustarCantidadRequest mueve la cantidad disponible: Pasos aplica el paso
// del producto (±1 unidad, ±0.5 kg) y Cantidad fija un valor absoluto.
// Exactamente uno de los dos debe venir.
type AjustarCantidadRequest struct {
	Pasos    *int             `json:"pasos"`
	Cantidad *decimal.Decimal `json:"cantidad"`
}

type StockResponse struct {
	ProductoID         string          `json:"producto_id"`
	Producto           string          `json:"producto"`
	TipoMedida         string          `json:"tipo_medida"`
	Fecha              string          `json:"fecha"`
	CantidadInicial    decimal.Decimal `json:"cantidad_inicial"`
	CantidadDisponible decimal.Decimal `json:"cantidad_disponible"`
	Disponible         bool            `json:"disponible"`
}
