package repository

import (
	"context"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordatorioRepository interface {
	Create(ctx context.Context, rec *model.Recordatorio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recordatorio, error)
	// ListVencidos devuelve recordatorios sin atender con hora de alerta
	// en el pasado, del más antiguo al más reciente.
	ListVencidos(ctx context.Context, ahora time.Time, limit int) ([]model.Recordatorio, error)
	MarcarCompletado(ctx context.Context, id uuid.UUID) error
	DeleteByPedidoID(ctx context.Context, pedidoID uuid.UUID) error
}

type recordatorioRepo struct{ db *gorm.DB }

func NewRecordatorioRepository(db *gorm.DB) RecordatorioRepository {
	return &recordatorioRepo{db: db}
}

func (r *recordatorioRepo) Create(ctx context.Context, rec *model.Recordatorio) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordatorioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recordatorio, error) {
	var rec model.Recordatorio
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *recordatorioRepo) ListVencidos(ctx context.Context, ahora time.Time, limit int) ([]model.Recordatorio, error) {
	var recs []model.Recordatorio
	err := r.db.WithContext(ctx).
		Where("completado = false AND hora_alerta <= ?", ahora).
		Order("hora_alerta ASC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

func (r *recordatorioRepo) MarcarCompletado(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Recordatorio{}).Where("id = ?", id).
		Update("completado", true).Error
}

func (r *recordatorioRepo) DeleteByPedidoID(ctx context.Context, pedidoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Delete(&model.Recordatorio{}).Error
}
