package repository

import (
	"context"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	// Create inserta el pedido con sus items dentro de la transacción del
	// commit; tx es obligatorio.
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	ListByFecha(ctx context.Context, fecha string) ([]model.Pedido, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Items.Producto").Preload("Pago").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) ListByFecha(ctx context.Context, fecha string) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Items.Producto").Preload("Pago").
		Where("fecha = ?", fecha).
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *pedidoRepo) UpdateTotal(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).
		Update("total", total).Error
}

func (r *pedidoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items", "Pago").Delete(&model.Pedido{ID: id}).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
