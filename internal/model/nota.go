package model

import (
	"time"

	"github.com/google/uuid"
)

// NotaDiaria es un apunte del día (deudas, imprevistos). Las notas sin
// resolver aparecen en el resumen del día.
type NotaDiaria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     string    `gorm:"type:varchar(10);not null;index"`
	Contenido string    `gorm:"not null"`
	Resuelta  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (NotaDiaria) TableName() string { return "notas_diarias" }
