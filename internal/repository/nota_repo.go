package repository

import (
	"context"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotaRepository interface {
	Create(ctx context.Context, n *model.NotaDiaria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NotaDiaria, error)
	List(ctx context.Context) ([]model.NotaDiaria, error)
	ListByResuelta(ctx context.Context, resuelta bool) ([]model.NotaDiaria, error)
	ListByFecha(ctx context.Context, fecha string) ([]model.NotaDiaria, error)
	ListPendientesByFecha(ctx context.Context, fecha string) ([]model.NotaDiaria, error)
	SetResuelta(ctx context.Context, id uuid.UUID, resuelta bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type notaRepo struct{ db *gorm.DB }

func NewNotaRepository(db *gorm.DB) NotaRepository { return &notaRepo{db: db} }

func (r *notaRepo) Create(ctx context.Context, n *model.NotaDiaria) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NotaDiaria, error) {
	var n model.NotaDiaria
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *notaRepo) List(ctx context.Context) ([]model.NotaDiaria, error) {
	var notas []model.NotaDiaria
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&notas).Error
	return notas, err
}

func (r *notaRepo) ListByResuelta(ctx context.Context, resuelta bool) ([]model.NotaDiaria, error) {
	var notas []model.NotaDiaria
	err := r.db.WithContext(ctx).
		Where("resuelta = ?", resuelta).
		Order("created_at DESC").
		Find(&notas).Error
	return notas, err
}

func (r *notaRepo) ListByFecha(ctx context.Context, fecha string) ([]model.NotaDiaria, error) {
	var notas []model.NotaDiaria
	err := r.db.WithContext(ctx).
		Where("fecha = ?", fecha).
		Order("created_at DESC").
		Find(&notas).Error
	return notas, err
}

func (r *notaRepo) ListPendientesByFecha(ctx context.Context, fecha string) ([]model.NotaDiaria, error) {
	var notas []model.NotaDiaria
	err := r.db.WithContext(ctx).
		Where("fecha = ? AND resuelta = false", fecha).
		Order("created_at DESC").
		Find(&notas).Error
	return notas, err
}

func (r *notaRepo) SetResuelta(ctx context.Context, id uuid.UUID, resuelta bool) error {
	return r.db.WithContext(ctx).Model(&model.NotaDiaria{}).Where("id = ?", id).
		Update("resuelta", resuelta).Error
}

func (r *notaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NotaDiaria{}, id).Error
}
