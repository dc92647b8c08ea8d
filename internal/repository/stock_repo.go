package repository

import (
	"context"
	"errors"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRepository maneja el libro de stock diario. La llave lógica es
// (producto_id, fecha): Upsert crea el registro del día si no existe y
// devuelve la fila resultante en ambos casos.
type StockRepository interface {
	FindByProductoFecha(ctx context.Context, productoID uuid.UUID, fecha string) (*model.StockDiario, error)
	ListByFecha(ctx context.Context, fecha string) ([]model.StockDiario, error)
	Upsert(ctx context.Context, s *model.StockDiario) (*model.StockDiario, error)

	// UpdateCantidadTx escribe la cantidad disponible dentro de una
	// transacción de commit de pedido.
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error

	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) FindByProductoFecha(ctx context.Context, productoID uuid.UUID, fecha string) (*model.StockDiario, error) {
	var s model.StockDiario
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND fecha = ?", productoID, fecha).
		First(&s).Error
	return &s, err
}

func (r *stockRepo) ListByFecha(ctx context.Context, fecha string) ([]model.StockDiario, error) {
	var registros []model.StockDiario
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("fecha = ?", fecha).Find(&registros).Error
	return registros, err
}

func (r *stockRepo) Upsert(ctx context.Context, s *model.StockDiario) (*model.StockDiario, error) {
	existente, err := r.FindByProductoFecha(ctx, s.ProductoID, s.Fecha)
	switch {
	case err == nil:
		s.ID = existente.ID
		s.CreatedAt = existente.CreatedAt
		if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
			return nil, err
		}
		return s, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, err
	}
}

func (r *stockRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.StockDiario{}).Where("id = ?", id).
		Update("cantidad_disponible", cantidad).Error
}

func (r *stockRepo) DB() *gorm.DB { return r.db }
