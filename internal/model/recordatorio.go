package model

import (
	"time"

	"github.com/google/uuid"
)

// Recordatorio es la alerta programada de un pedido con hora de entrega:
// suena 10 minutos antes. Entrega al menos una vez: si el proceso no
// corría a la hora de alerta, se dispara en el siguiente ciclo del poller.
type Recordatorio struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	HoraAlerta time.Time `gorm:"not null;index"`
	Mensaje    string    `gorm:"not null"`
	Completado bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (Recordatorio) TableName() string { return "recordatorios" }
