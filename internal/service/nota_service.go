package service

import (
	"context"
	"errors"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
)

type NotaService interface {
	Crear(ctx context.Context, req dto.CrearNotaRequest) (*dto.NotaResponse, error)
	List(ctx context.Context, filter dto.NotaFilter) ([]dto.NotaResponse, error)
	SetResuelta(ctx context.Context, id uuid.UUID, resuelta bool) (*dto.NotaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type notaService struct {
	repo  repository.NotaRepository
	ahora func() time.Time
}

func NewNotaService(repo repository.NotaRepository) NotaService {
	return &notaService{repo: repo, ahora: time.Now}
}

func (s *notaService) Crear(ctx context.Context, req dto.CrearNotaRequest) (*dto.NotaResponse, error) {
	n := &model.NotaDiaria{Fecha: fechaDe(s.ahora()), Contenido: req.Contenido}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return notaToResponse(n), nil
}

func (s *notaService) List(ctx context.Context, filter dto.NotaFilter) ([]dto.NotaResponse, error) {
	var (
		notas []model.NotaDiaria
		err   error
	)
	switch filter.Filtro {
	case "todas":
		notas, err = s.repo.List(ctx)
	case "resueltas":
		notas, err = s.repo.ListByResuelta(ctx, true)
	case "hoy":
		notas, err = s.repo.ListByFecha(ctx, fechaDe(s.ahora()))
	default:
		notas, err = s.repo.ListByResuelta(ctx, false)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotaResponse, 0, len(notas))
	for i := range notas {
		out = append(out, *notaToResponse(&notas[i]))
	}
	return out, nil
}

func (s *notaService) SetResuelta(ctx context.Context, id uuid.UUID, resuelta bool) (*dto.NotaResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("nota no encontrada")
	}
	if err := s.repo.SetResuelta(ctx, id, resuelta); err != nil {
		return nil, err
	}
	n.Resuelta = resuelta
	return notaToResponse(n), nil
}

func (s *notaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("nota no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func notaToResponse(n *model.NotaDiaria) *dto.NotaResponse {
	return &dto.NotaResponse{
		ID:        n.ID.String(),
		Fecha:     n.Fecha,
		Contenido: n.Contenido,
		Resuelta:  n.Resuelta,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
