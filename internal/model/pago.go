package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo = "efectivo"
	PagoNequi    = "nequi"
)

// Pago es el cobro de un pedido. Un pedido tiene a lo sumo un pago; el
// monto se congela con el total vigente del pedido al registrarlo. No se
// modelan pagos parciales.
type Pago struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	Metodo     string          `gorm:"not null"` // "efectivo" | "nequi"
	Referencia *string
	CreatedAt  time.Time
}

func (Pago) TableName() string { return "pagos" }
