package service

import (
	"context"
	"errors"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockService interface {
	// ListarStock cruza el menú activo con los registros del día: los
	// productos sin registro salen con los valores por defecto (sin
	// control de cantidad, disponibles) sin persistir nada.
	ListarStock(ctx context.Context, fecha string) ([]dto.StockResponse, error)
	// IniciarStock fija el stock del día: inicial = disponible = cantidad.
	IniciarStock(ctx context.Context, productoID uuid.UUID, fecha string, req dto.IniciarStockRequest) (*dto.StockResponse, error)
	// ToggleDisponible invierte el interruptor de disponibilidad, creando
	// el registro del día si aún no existe.
	ToggleDisponible(ctx context.Context, productoID uuid.UUID, fecha string) (*dto.StockResponse, error)
	AjustarCantidad(ctx context.Context, productoID uuid.UUID, fecha string, req dto.AjustarCantidadRequest) (*dto.StockResponse, error)
}

type stockService struct {
	repo         repository.StockRepository
	productoRepo repository.ProductoRepository
	ahora        func() time.Time
}

func NewStockService(repo repository.StockRepository, productoRepo repository.ProductoRepository) StockService {
	return &stockService{repo: repo, productoRepo: productoRepo, ahora: time.Now}
}

func (s *stockService) fechaODefault(fecha string) string {
	if fecha == "" {
		return fechaDe(s.ahora())
	}
	return fecha
}

func (s *stockService) ListarStock(ctx context.Context, fecha string) ([]dto.StockResponse, error) {
	fecha = s.fechaODefault(fecha)

	productos, err := s.productoRepo.List(ctx, dto.ProductoFilter{})
	if err != nil {
		return nil, err
	}
	registros, err := s.repo.ListByFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	porProducto := make(map[uuid.UUID]*model.StockDiario, len(registros))
	for i := range registros {
		porProducto[registros[i].ProductoID] = &registros[i]
	}

	out := make([]dto.StockResponse, 0, len(productos))
	for i := range productos {
		p := &productos[i]
		if st, ok := porProducto[p.ID]; ok {
			out = append(out, *stockToResponse(st, p))
			continue
		}
		// Sin registro: fila virtual con los valores por defecto.
		out = append(out, dto.StockResponse{
			ProductoID: p.ID.String(),
			Producto:   p.Nombre,
			TipoMedida: p.TipoMedida,
			Fecha:      fecha,
			Disponible: true,
		})
	}
	return out, nil
}

func (s *stockService) IniciarStock(ctx context.Context, productoID uuid.UUID, fecha string, req dto.IniciarStockRequest) (*dto.StockResponse, error) {
	if req.Cantidad.IsNegative() {
		return nil, errors.New("la cantidad no puede ser negativa")
	}
	fecha = s.fechaODefault(fecha)

	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	cantidad := req.Cantidad.Round(2)
	st, err := s.repo.Upsert(ctx, &model.StockDiario{
		ProductoID:         productoID,
		Fecha:              fecha,
		CantidadInicial:    cantidad,
		CantidadDisponible: cantidad,
		Disponible:         true,
	})
	if err != nil {
		return nil, err
	}
	return stockToResponse(st, p), nil
}

func (s *stockService) ToggleDisponible(ctx context.Context, productoID uuid.UUID, fecha string) (*dto.StockResponse, error) {
	fecha = s.fechaODefault(fecha)

	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}

	actual, err := s.repo.FindByProductoFecha(ctx, productoID, fecha)
	switch {
	case err == nil:
		actual.Disponible = !actual.Disponible
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Primer toque del día: nace apagado porque el defecto es
		// disponible.
		actual = &model.StockDiario{
			ProductoID: productoID,
			Fecha:      fecha,
			Disponible: false,
		}
	default:
		return nil, err
	}

	st, err := s.repo.Upsert(ctx, actual)
	if err != nil {
		return nil, err
	}
	return stockToResponse(st, p), nil
}

func (s *stockService) AjustarCantidad(ctx context.Context, productoID uuid.UUID, fecha string, req dto.AjustarCantidadRequest) (*dto.StockResponse, error) {
	if (req.Pasos == nil) == (req.Cantidad == nil) {
		return nil, errors.New("enviar pasos o cantidad, exactamente uno")
	}
	fecha = s.fechaODefault(fecha)

	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	actual, err := s.repo.FindByProductoFecha(ctx, productoID, fecha)
	if err != nil {
		return nil, errors.New("el producto no tiene stock iniciado hoy")
	}

	var nueva decimal.Decimal
	if req.Cantidad != nil {
		nueva = *req.Cantidad
	} else {
		paso := decimal.NewFromInt(1)
		if p.EsPeso() {
			paso = decimal.NewFromFloat(0.5)
		}
		nueva = actual.CantidadDisponible.Add(paso.Mul(decimal.NewFromInt(int64(*req.Pasos))))
	}
	if nueva.IsNegative() {
		nueva = decimal.Zero
	}
	actual.CantidadDisponible = nueva.Round(2)

	st, err := s.repo.Upsert(ctx, actual)
	if err != nil {
		return nil, err
	}
	return stockToResponse(st, p), nil
}

func stockToResponse(st *model.StockDiario, p *model.Producto) *dto.StockResponse {
	nombre := ""
	tipo := ""
	if p != nil {
		nombre = p.Nombre
		tipo = p.TipoMedida
	} else if st.Producto != nil {
		nombre = st.Producto.Nombre
		tipo = st.Producto.TipoMedida
	}
	return &dto.StockResponse{
		ProductoID:         st.ProductoID.String(),
		Producto:           nombre,
		TipoMedida:         tipo,
		Fecha:              st.Fecha,
		CantidadInicial:    st.CantidadInicial,
		CantidadDisponible: st.CantidadDisponible,
		Disponible:         st.Disponible,
	}
}
