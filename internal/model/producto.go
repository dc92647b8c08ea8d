package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de medida de stock de un producto.
const (
	MedidaUnidad = "unidad" // se cuenta por unidades (ej: pedazos de pollo)
	MedidaPeso   = "peso"   // se cuenta por kilos; las variantes llevan peso_gramos
)

// Producto es un item del menú. Precio es el precio base en COP y se ignora
// por completo cuando el producto tiene variantes (el precio base se guarda
// en 0 en ese caso).
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(12,0);not null;default:0"`
	TipoMedida  string          `gorm:"not null;default:'unidad'"` // "unidad" | "peso"
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variantes []Variante `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (p *Producto) EsPeso() bool { return p.TipoMedida == MedidaPeso }

// Variante es una sub-opción con precio propio (tamaño o porción de peso).
// Cuando existe al menos una, las variantes reemplazan el precio base.
type Variante struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre     string          `gorm:"not null"`
	Precio     decimal.Decimal `gorm:"type:decimal(12,0);not null"`
	// PesoGramos es 0 para variantes de productos medidos por unidad.
	PesoGramos int `gorm:"not null;default:0"`
}
