package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente se identifica por un texto libre ("Portal D4", "Casa I1"...).
// Se resuelve por coincidencia exacta sin distinguir mayúsculas al crear
// un pedido, y se crea sobre la marcha si no existe.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identificador string    `gorm:"index;not null"`
	CreatedAt     time.Time
}
