package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	Detalle(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

// catalogoCacheKey guarda en Redis la lista de productos activos sin
// filtro de nombre, que es la consulta que la pantalla de pedidos hace
// todo el tiempo. Cualquier escritura del menú la invalida.
const (
	catalogoCacheKey = "catalogo:activos"
	catalogoCacheTTL = 5 * time.Minute
)

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

// NewProductoService arma el servicio de menú. rdb puede ser nil; en ese
// caso se trabaja sin caché.
func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarProducto(req); err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		TipoMedida:  model.MedidaUnidad,
		Activo:      true,
	}
	if req.TipoMedida != "" {
		p.TipoMedida = req.TipoMedida
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	for _, v := range req.Variantes {
		p.Variantes = append(p.Variantes, model.Variante{
			Nombre:     v.Nombre,
			Precio:     v.Precio,
			PesoGramos: v.PesoGramos,
		})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCatalogo(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarProducto(req); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Precio = req.Precio
	if req.TipoMedida != "" {
		p.TipoMedida = req.TipoMedida
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}

	// Las variantes se reemplazan como juego completo, igual que hace
	// la pantalla de menú al guardar.
	variantes := make([]model.Variante, 0, len(req.Variantes))
	for _, v := range req.Variantes {
		variantes = append(variantes, model.Variante{
			ProductoID: p.ID,
			Nombre:     v.Nombre,
			Precio:     v.Precio,
			PesoGramos: v.PesoGramos,
		})
	}

	p.Variantes = nil
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceVariantes(ctx, p.ID, variantes); err != nil {
		return nil, err
	}
	p.Variantes = variantes

	s.invalidarCatalogo(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) Detalle(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) List(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	cacheable := filter.Nombre == "" && filter.Activo == ""

	if cacheable && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, catalogoCacheKey).Bytes(); err == nil {
			var cached []dto.ProductoResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}

	if cacheable && s.rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, catalogoCacheKey, raw, catalogoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear el catálogo")
			}
		}
	}
	return out, nil
}

func (s *productoService) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.SetActivo(ctx, id, activo); err != nil {
		return err
	}
	s.invalidarCatalogo(ctx)
	return nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCatalogo(ctx)
	return nil
}

func (s *productoService) invalidarCatalogo(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogoCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché del catálogo")
	}
}

// validarProducto exige un precio cobrable: precio base positivo cuando
// no hay variantes, y precio positivo en cada variante cuando las hay.
func validarProducto(req dto.GuardarProductoRequest) error {
	if len(req.Variantes) == 0 {
		if !req.Precio.IsPositive() {
			return errors.New("el producto necesita un precio mayor a cero")
		}
		return nil
	}
	for _, v := range req.Variantes {
		if !v.Precio.IsPositive() {
			return errors.New("cada variante necesita un precio mayor a cero")
		}
	}
	return nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	variantes := make([]dto.VarianteResponse, 0, len(p.Variantes))
	for _, v := range p.Variantes {
		variantes = append(variantes, dto.VarianteResponse{
			ID:         v.ID.String(),
			Nombre:     v.Nombre,
			Precio:     v.Precio,
			PesoGramos: v.PesoGramos,
		})
	}
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		TipoMedida:  p.TipoMedida,
		Activo:      p.Activo,
		Variantes:   variantes,
	}
}
