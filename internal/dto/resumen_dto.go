package dto

import "github.com/shopspring/decimal"

// ResumenResponse es el cierre visual del día: todo se agrega en memoria a
// partir de las colecciones del día con mapas indexados por id.
type ResumenResponse struct {
	Fecha        string          `json:"fecha"`
	TotalVentas  decimal.Decimal `json:"total_ventas"`
	TotalCobrado decimal.Decimal `json:"total_cobrado"`
	Pendiente    decimal.Decimal `json:"pendiente"`

	PedidosPorEstado   map[string]int             `json:"pedidos_por_estado"`
	VentasPorProducto  []VentaProducto            `json:"ventas_por_producto"`
	PagosPorMetodo     map[string]decimal.Decimal `json:"pagos_por_metodo"`
	PedidosSinPagar    []PedidoSinPagar           `json:"pedidos_sin_pagar"`
	StockRestante      []StockResponse            `json:"stock_restante"`
	NotasPendientes    []string                   `json:"notas_pendientes"`
}

type VentaProducto struct {
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
	Porcentaje int             `json:"porcentaje"`
}

type PedidoSinPagar struct {
	PedidoID string          `json:"pedido_id"`
	Cliente  string          `json:"cliente"`
	Total    decimal.Decimal `json:"total"`
}
