package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockDiario es el contador de inventario de un producto para un día.
// Se crea de forma perezosa con la primera edición de stock del día
// (upsert por producto+fecha), nunca se borra.
//
// CantidadDisponible nunca baja de 0 y es independiente de Disponible:
// (inicial=0, disponible=true) significa "disponible sin control de
// cantidad", es decir stock ilimitado para efectos de pedidos.
type StockDiario struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_producto_fecha"`
	// Fecha en formato YYYY-MM-DD (día calendario local).
	Fecha              string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_stock_producto_fecha"`
	CantidadInicial    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CantidadDisponible decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Disponible         bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (StockDiario) TableName() string { return "stock_diario" }

// Rastreado indica si este registro controla cantidad (inicial > 0).
func (s *StockDiario) Rastreado() bool { return s.CantidadInicial.IsPositive() }
