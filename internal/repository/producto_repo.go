package repository

import (
	"context"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository define el acceso a datos del menú. Los servicios
// dependen de esta interfaz, no de la implementación GORM, para poder
// probarse con stubs en memoria.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error

	// ReplaceVariantes borra el juego de variantes del producto y escribe
	// el nuevo, como hace la pantalla de menú al guardar.
	ReplaceVariantes(ctx context.Context, productoID uuid.UUID, variantes []model.Variante) error

	// DB expone el *gorm.DB para que los servicios abran transacciones.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Variantes").First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{}).Preload("Variantes")

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// sin filtro
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	var productos []model.Producto
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).
		Update("activo", activo).Error
}

func (r *productoRepo) ReplaceVariantes(ctx context.Context, productoID uuid.UUID, variantes []model.Variante) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("producto_id = ?", productoID).Delete(&model.Variante{}).Error; err != nil {
			return err
		}
		if len(variantes) == 0 {
			return nil
		}
		return tx.Create(&variantes).Error
	})
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
