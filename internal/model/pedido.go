package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados persistidos de un pedido. No hay camino de vuelta a en_proceso:
// despachado aplica solo a domicilios y entregado solo a pedidos en local.
const (
	EstadoEnProceso  = "en_proceso"
	EstadoDespachado = "despachado"
	EstadoEntregado  = "entregado"
)

// Tipos de entrega.
const (
	EntregaDomicilio = "domicilio"
	EntregaLocal     = "local"
)

// Pedido es un pedido confirmado del día. Total queda congelado al crear
// (total manual si el operador lo ajustó, calculado si no) y puede
// corregirse después sin tocar stock.
type Pedido struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha       string    `gorm:"type:varchar(10);not null;index"`
	TipoEntrega string    `gorm:"not null"` // "domicilio" | "local"
	Estado      string    `gorm:"not null;default:'en_proceso'"`
	HoraEntrega *time.Time
	Total       decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Notas       *string
	CreatedAt   time.Time

	Cliente       *Cliente       `gorm:"foreignKey:ClienteID"`
	Items         []PedidoItem   `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	Pago          *Pago          `gorm:"foreignKey:PedidoID"`
	Recordatorios []Recordatorio `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

// PedidoItem es una línea del pedido con precio unitario y subtotal
// congelados al momento del commit. Cuando la línea llevaba variante, Notas
// guarda "<variante> - <nota de línea>" (o solo el nombre de la variante).
type PedidoItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Notas          *string

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
