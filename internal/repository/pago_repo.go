package repository

import (
	"context"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).Where("pedido_id = ?", pedidoID).First(&p).Error
	return &p, err
}
