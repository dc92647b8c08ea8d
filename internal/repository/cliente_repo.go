package repository

import (
	"context"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"gorm.io/gorm"
)

type ClienteRepository interface {
	// FindByIdentificador busca por coincidencia exacta sin distinguir
	// mayúsculas/minúsculas.
	FindByIdentificador(ctx context.Context, identificador string) (*model.Cliente, error)
	Create(ctx context.Context, c *model.Cliente) error
	List(ctx context.Context) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByIdentificador(ctx context.Context, identificador string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("LOWER(identificador) = LOWER(?)", identificador).
		First(&c).Error
	return &c, err
}

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("identificador ASC").Find(&clientes).Error
	return clientes, err
}
